// Package challenge implements the custom-authentication challenge flow:
// one-time code generation, the per-session metadata codec, and the
// decision protocol that drives a passwordless login round by round.
//
// The package holds no state between invocations. The identity backend
// supplies the full session history on every call, so each stage is a
// single-shot computation and concurrent sessions never share anything.
package challenge

// Kind identifies the kind of challenge presented in a round.
type Kind string

// KindCustomChallenge is the only kind this flow presents. The type is a
// string so further kinds can be added without a wire format change.
const KindCustomChallenge Kind = "CUSTOM_CHALLENGE"

// Outcome is the recorded result of one challenge round.
type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomeCorrect
	OutcomeIncorrect
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCorrect:
		return "correct"
	case OutcomeIncorrect:
		return "incorrect"
	default:
		return "pending"
	}
}

// Round is one completed (or in-flight) exchange within a session. Rounds
// are append-only: once the backend records one it is never mutated.
type Round struct {
	Kind     Kind
	Outcome  Outcome
	Metadata string
}

// Session is the ordered round history of one login attempt. The backend
// passes it in full on every trigger invocation; it is the only memory
// the flow has.
type Session []Round

// Last returns the most recent round, if any.
func (s Session) Last() (Round, bool) {
	if len(s) == 0 {
		return Round{}, false
	}
	return s[len(s)-1], true
}
