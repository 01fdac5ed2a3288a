package gridsolver

import (
	"errors"
	"fmt"
)

// Failure kinds for a solve call. The caller can separate "the service or
// the page broke" from "we simply ran out of attempts".
type FailKind int

const (
	FRAME_NOT_FOUND FailKind = iota + 1
	CHALLENGE_RENDER_TIMEOUT
	TILES_NOT_FOUND
	REMOTE_SOLVER_ERROR
	UNKNOWN_VERDICT
	RECOVERY_TIMEOUT
	UNSOLVED
)

func (k FailKind) String() string {
	switch k {
	case FRAME_NOT_FOUND:
		return "frame_not_found"
	case CHALLENGE_RENDER_TIMEOUT:
		return "challenge_render_timeout"
	case TILES_NOT_FOUND:
		return "tiles_not_found"
	case REMOTE_SOLVER_ERROR:
		return "remote_solver_error"
	case UNKNOWN_VERDICT:
		return "unknown_verdict"
	case RECOVERY_TIMEOUT:
		return "recovery_timeout"
	case UNSOLVED:
		return "unsolved"
	default:
		return "unknown"
	}
}

// SolveError is the only error type Solve returns.
type SolveError struct {
	Kind    FailKind
	Message string
	Cause   error
}

func (e *SolveError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *SolveError) Unwrap() error {
	return e.Cause
}

// IsKind reports whether err is a SolveError of the given kind.
func IsKind(err error, kind FailKind) bool {
	var solveErr *SolveError
	return errors.As(err, &solveErr) && solveErr.Kind == kind
}

func newSolveError(kind FailKind, message string, cause error) *SolveError {
	return &SolveError{Kind: kind, Message: message, Cause: cause}
}
