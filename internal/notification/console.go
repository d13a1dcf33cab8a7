package notification

import (
	"context"

	"go.uber.org/zap"
)

// ConsoleSender writes messages to the log instead of delivering them.
// Used in development so the flow can be exercised without SES access.
type ConsoleSender struct {
	logger *zap.Logger
}

func NewConsoleSender(logger *zap.Logger) *ConsoleSender {
	return &ConsoleSender{logger: logger}
}

func (c *ConsoleSender) Send(ctx context.Context, recipient, subject, body string) error {
	c.logger.Info("notification (console delivery)",
		zap.String("recipient", recipient),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}
