// Package events publishes authentication and account lifecycle events
// for downstream consumers. Publishing is strictly best-effort: a broker
// outage must never fail a login or an account operation.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"passwordless-auth/internal/client"
)

type Type string

const (
	TypeAccountCreated     Type = "account.created"
	TypeAccountUpdated     Type = "account.updated"
	TypeLoginSucceeded     Type = "login.succeeded"
	TypeLoginFailed        Type = "login.failed"
	TypeChallengeDelivered Type = "challenge.delivered"
)

// Event is the wire format written to the event topic.
type Event struct {
	ID        string            `json:"id"`
	Type      Type              `json:"type"`
	Subject   string            `json:"subject"`
	Timestamp time.Time         `json:"timestamp"`
	Detail    map[string]string `json:"detail,omitempty"`
}

// Publisher emits events to Kafka. A nil Publisher is valid and drops
// everything, so call sites don't need to branch on whether eventing is
// configured.
type Publisher struct {
	producer *client.KafkaProducer
	logger   *zap.Logger
}

func NewPublisher(producer *client.KafkaProducer, logger *zap.Logger) *Publisher {
	return &Publisher{producer: producer, logger: logger}
}

// Publish emits one event keyed by subject. Errors are logged, not returned.
func (p *Publisher) Publish(ctx context.Context, typ Type, subject string, detail map[string]string) {
	if p == nil || p.producer == nil {
		return
	}

	ev := Event{
		ID:        uuid.NewString(),
		Type:      typ,
		Subject:   subject,
		Timestamp: time.Now().UTC(),
		Detail:    detail,
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		p.logger.Error("failed to marshal event", zap.String("type", string(typ)), zap.Error(err))
		return
	}
	if err := p.producer.WriteMessage(ctx, []byte(subject), payload); err != nil {
		p.logger.Error("failed to publish event",
			zap.String("type", string(typ)),
			zap.String("subject", subject),
			zap.Error(err),
		)
	}
}
