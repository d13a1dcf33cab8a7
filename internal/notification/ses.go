package notification

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"
)

const charsetUTF8 = "UTF-8"

// SESSender sends email through AWS SES from a fixed verified address.
type SESSender struct {
	client *ses.Client
	sender string
	logger *zap.Logger
}

func NewSESSender(client *ses.Client, senderAddress string, logger *zap.Logger) *SESSender {
	return &SESSender{
		client: client,
		sender: senderAddress,
		logger: logger,
	}
}

func (s *SESSender) Send(ctx context.Context, recipient, subject, body string) error {
	input := &ses.SendEmailInput{
		Source: aws.String(s.sender),
		Destination: &types.Destination{
			ToAddresses: []string{recipient},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(subject),
				Charset: aws.String(charsetUTF8),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data:    aws.String(body),
					Charset: aws.String(charsetUTF8),
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("send email to %s: %w", recipient, err)
	}
	s.logger.Debug("email sent via SES",
		zap.String("recipient", recipient),
		zap.String("subject", subject),
	)
	return nil
}
