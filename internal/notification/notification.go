// Package notification delivers one-time code messages to users.
package notification

import "context"

// Sender delivers a plain-text message to a single recipient.
type Sender interface {
	Send(ctx context.Context, recipient, subject, body string) error
}
