package challenge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func round(outcome Outcome) Round {
	return Round{Kind: KindCustomChallenge, Outcome: outcome, Metadata: "AUTHCODE-123456"}
}

func TestDecideEmptySessionPresentsChallenge(t *testing.T) {
	d := NewDecider(3)
	assert.Equal(t, PresentChallenge, d.Decide(nil))
	assert.Equal(t, PresentChallenge, d.Decide(Session{}))
}

func TestDecide(t *testing.T) {
	d := NewDecider(3)

	tests := []struct {
		name    string
		session Session
		want    Decision
	}{
		{
			name:    "first wrong answer retries",
			session: Session{round(OutcomeIncorrect)},
			want:    PresentChallenge,
		},
		{
			name:    "second wrong answer retries",
			session: Session{round(OutcomeIncorrect), round(OutcomeIncorrect)},
			want:    PresentChallenge,
		},
		{
			name:    "third wrong answer fails",
			session: Session{round(OutcomeIncorrect), round(OutcomeIncorrect), round(OutcomeIncorrect)},
			want:    FailAuthentication,
		},
		{
			name:    "correct first answer issues tokens",
			session: Session{round(OutcomeCorrect)},
			want:    IssueTokens,
		},
		{
			name:    "correct answer after a miss issues tokens",
			session: Session{round(OutcomeIncorrect), round(OutcomeCorrect)},
			want:    IssueTokens,
		},
		{
			name:    "correct answer on the last attempt issues tokens",
			session: Session{round(OutcomeIncorrect), round(OutcomeIncorrect), round(OutcomeCorrect)},
			want:    IssueTokens,
		},
		{
			name:    "pending round keeps the session going",
			session: Session{round(OutcomePending)},
			want:    PresentChallenge,
		},
		{
			name: "non-custom final round never fails the session",
			session: Session{
				round(OutcomeIncorrect),
				round(OutcomeIncorrect),
				{Kind: Kind("SRP_A"), Outcome: OutcomeIncorrect},
			},
			want: PresentChallenge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Decide(tt.session))
		})
	}
}

func TestDecideFailureTakesPriorityOverStaleSuccess(t *testing.T) {
	// A failing final attempt must never be misread as a pass even though
	// an earlier round was answered correctly.
	d := NewDecider(3)
	session := Session{round(OutcomeCorrect), round(OutcomeIncorrect), round(OutcomeIncorrect)}
	assert.Equal(t, FailAuthentication, d.Decide(session))
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "issue_tokens", IssueTokens.String())
	assert.Equal(t, "fail_authentication", FailAuthentication.String())
	assert.Equal(t, "present_challenge", PresentChallenge.String())
}
