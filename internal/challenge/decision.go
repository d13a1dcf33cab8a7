package challenge

// Decision is the terminal-or-continue verdict for a session.
type Decision int

const (
	// PresentChallenge asks the backend to run another round.
	PresentChallenge Decision = iota
	// IssueTokens ends the session successfully.
	IssueTokens
	// FailAuthentication ends the session with a permanent failure.
	FailAuthentication
)

func (d Decision) String() string {
	switch d {
	case IssueTokens:
		return "issue_tokens"
	case FailAuthentication:
		return "fail_authentication"
	default:
		return "present_challenge"
	}
}

// Decider applies the round-counting rules that turn a session history
// into a Decision.
type Decider struct {
	maxAttempts int
}

func NewDecider(maxAttempts int) Decider {
	return Decider{maxAttempts: maxAttempts}
}

// Decide evaluates the session history. Failure is checked before success
// so a wrong answer on the final attempt is never misread as a pass; both
// are checked before falling through to another round.
func (d Decider) Decide(session Session) Decision {
	switch {
	case d.hasFailedAuthentication(session):
		return FailAuthentication
	case d.hasPassedAuthentication(session):
		return IssueTokens
	default:
		return PresentChallenge
	}
}

// hasFailedAuthentication reports whether the user has exhausted the
// retry budget with a wrong answer.
func (d Decider) hasFailedAuthentication(session Session) bool {
	last, ok := session.Last()
	return ok &&
		len(session) >= d.maxAttempts &&
		last.Kind == KindCustomChallenge &&
		last.Outcome == OutcomeIncorrect
}

// hasPassedAuthentication reports whether the user answered the latest
// round correctly within the retry budget.
func (d Decider) hasPassedAuthentication(session Session) bool {
	last, ok := session.Last()
	return ok &&
		len(session) <= d.maxAttempts &&
		last.Kind == KindCustomChallenge &&
		last.Outcome == OutcomeCorrect
}
