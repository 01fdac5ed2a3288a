package gridsolver

import (
	"time"

	"github.com/google/uuid"
)

// States of one solve call. Transitions live in the step methods on
// Solver, each returns the next state
type solveState int

const (
	stateInit solveState = iota
	stateRoundSolving
	statePolling
	stateSkipRecovery
	stateSolved
	stateFailed
)

func (s solveState) String() string {
	switch s {
	case stateInit:
		return "init"
	case stateRoundSolving:
		return "round_solving"
	case statePolling:
		return "polling"
	case stateSkipRecovery:
		return "skip_recovery"
	case stateSolved:
		return "solved"
	case stateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Session of one solve call. Pure data, owned by the call, never shared
type challengeSession struct {
	id string

	siteKey  string
	language string

	// 1-based, bounded by attemptLimit
	attemptIndex int
	attemptLimit int

	// Last seen challenge instruction. Used to detect that a reloaded
	// challenge is actually a new one
	target string

	// Rendered tiles of the current round, re-read every round
	images []string

	// Pending verdict carrying the result URL while polling
	pending *Verdict

	// Armed only during skip recovery, cleared exactly once on exit
	deadline time.Time

	failure *SolveError
}

func newSession(attemptLimit int) *challengeSession {
	return &challengeSession{
		id:           uuid.NewString(),
		attemptIndex: 1,
		attemptLimit: attemptLimit,
	}
}

func (sess *challengeSession) fail(kind FailKind, message string, cause error) solveState {
	sess.failure = newSolveError(kind, message, cause)
	return stateFailed
}

// One attempt is spent. Reports whether any attempts remain
func (sess *challengeSession) consumeAttempt() bool {
	sess.attemptIndex++
	return sess.attemptIndex <= sess.attemptLimit
}
