package challenge

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const codeSubject = "One-time authentication code"

// Sender delivers a one-time code message to a recipient. Delivery
// guarantees and retries are the implementation's concern; the stage
// surfaces a failed send as an error and never retries itself.
type Sender interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// Stages implements the create and verify steps of the challenge loop.
type Stages struct {
	generator *Generator
	sender    Sender
	codeTTL   time.Duration
	logger    *zap.Logger
}

func NewStages(generator *Generator, sender Sender, codeTTL time.Duration, logger *zap.Logger) *Stages {
	return &Stages{
		generator: generator,
		sender:    sender,
		codeTTL:   codeTTL,
		logger:    logger,
	}
}

// CreateResult carries the outputs of the create stage. Code goes into the
// round's private parameters for later verification and must never reach
// the client; Metadata is the opaque string the backend stores for us.
type CreateResult struct {
	Code     string
	Metadata string
}

// Create runs the create-challenge stage. On the first round of a session
// it mints a fresh code and delivers it to the recipient; on a retry round
// it recovers the code already sent from the previous round's metadata, so
// the user can answer with the one email they received. Exactly one
// delivery happens per session.
func (s *Stages) Create(ctx context.Context, recipient string, session Session) (CreateResult, error) {
	last, retry := session.Last()
	if !retry {
		code, err := s.generator.Generate()
		if err != nil {
			return CreateResult{}, fmt.Errorf("generate one-time code: %w", err)
		}
		body := fmt.Sprintf(
			"This is your one-time authentication code: %s. It will expire in %d minutes.",
			code, int(s.codeTTL.Minutes()),
		)
		if err := s.sender.Send(ctx, recipient, codeSubject, body); err != nil {
			return CreateResult{}, fmt.Errorf("deliver one-time code: %w", err)
		}
		s.logger.Info("one-time code delivered",
			zap.String("recipient", recipient),
			zap.Duration("ttl", s.codeTTL),
		)
		return CreateResult{Code: code, Metadata: EncodeMetadata(code)}, nil
	}

	// Regenerating here would desynchronize the code the user already
	// holds, so a bad metadata string is fatal for the session.
	code, err := DecodeMetadata(last.Metadata)
	if err != nil {
		return CreateResult{}, fmt.Errorf("recover code from previous round: %w", err)
	}
	s.logger.Debug("reusing code from previous round",
		zap.String("recipient", recipient),
		zap.Int("round", len(session)+1),
	)
	return CreateResult{Code: code, Metadata: EncodeMetadata(code)}, nil
}

// Verify runs the verify-challenge stage: an exact comparison of the
// submitted answer against the code placed in the round's private
// parameters. Codes are digit-only, so no normalization is applied.
func Verify(answer, expected string) bool {
	return answer == expected
}
