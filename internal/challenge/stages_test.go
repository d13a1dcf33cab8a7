package challenge

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSender struct {
	sends     int
	recipient string
	subject   string
	body      string
	err       error
}

func (f *fakeSender) Send(ctx context.Context, recipient, subject, body string) error {
	f.sends++
	f.recipient = recipient
	f.subject = subject
	f.body = body
	return f.err
}

func newTestStages(sender Sender) *Stages {
	return NewStages(NewGenerator(), sender, 3*time.Minute, zap.NewNop())
}

func TestCreateFirstRoundDeliversCode(t *testing.T) {
	sender := &fakeSender{}
	s := newTestStages(sender)

	res, err := s.Create(context.Background(), "user@example.com", nil)
	require.NoError(t, err)

	assert.Len(t, res.Code, CodeLength)
	assert.Equal(t, EncodeMetadata(res.Code), res.Metadata)

	assert.Equal(t, 1, sender.sends)
	assert.Equal(t, "user@example.com", sender.recipient)
	assert.Equal(t, "One-time authentication code", sender.subject)
	assert.Contains(t, sender.body, res.Code)
	assert.Contains(t, sender.body, "3 minutes")
}

func TestCreateRetryRoundReusesCodeWithoutDelivery(t *testing.T) {
	sender := &fakeSender{}
	s := newTestStages(sender)

	first, err := s.Create(context.Background(), "user@example.com", nil)
	require.NoError(t, err)
	require.Equal(t, 1, sender.sends)

	session := Session{{
		Kind:     KindCustomChallenge,
		Outcome:  OutcomeIncorrect,
		Metadata: first.Metadata,
	}}
	second, err := s.Create(context.Background(), "user@example.com", session)
	require.NoError(t, err)

	assert.Equal(t, first.Code, second.Code)
	assert.Equal(t, first.Metadata, second.Metadata)
	assert.Equal(t, 1, sender.sends, "retry rounds must not send another email")
}

func TestCreateRetryUsesMostRecentRound(t *testing.T) {
	sender := &fakeSender{}
	s := newTestStages(sender)

	session := Session{
		{Kind: KindCustomChallenge, Outcome: OutcomeIncorrect, Metadata: "AUTHCODE-111111"},
		{Kind: KindCustomChallenge, Outcome: OutcomeIncorrect, Metadata: "AUTHCODE-222222"},
	}
	res, err := s.Create(context.Background(), "user@example.com", session)
	require.NoError(t, err)
	assert.Equal(t, "222222", res.Code)
	assert.Zero(t, sender.sends)
}

func TestCreatePropagatesDeliveryFailure(t *testing.T) {
	sendErr := errors.New("smtp unreachable")
	sender := &fakeSender{err: sendErr}
	s := newTestStages(sender)

	_, err := s.Create(context.Background(), "user@example.com", nil)
	assert.ErrorIs(t, err, sendErr)
}

func TestCreateFailsOnCorruptMetadata(t *testing.T) {
	sender := &fakeSender{}
	s := newTestStages(sender)

	session := Session{{
		Kind:     KindCustomChallenge,
		Outcome:  OutcomeIncorrect,
		Metadata: "garbage",
	}}
	_, err := s.Create(context.Background(), "user@example.com", session)
	assert.ErrorIs(t, err, ErrCorruptMetadata)
	assert.Zero(t, sender.sends, "a corrupt retry must not mint a fresh code")
}

func TestVerify(t *testing.T) {
	assert.True(t, Verify("123456", "123456"))
	assert.False(t, Verify("000000", "123456"))
	assert.False(t, Verify("", "123456"))
	assert.False(t, Verify(" 123456", "123456"))
}
