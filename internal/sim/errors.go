package sim

import "fmt"

// ErrorKind classifies failures the engine can surface before or during a run.
type ErrorKind string

const (
	// ErrEmptyRegion: no schools match the requested (class, region, season).
	ErrEmptyRegion ErrorKind = "empty_region"
	// ErrInconsistentPair: the two sides of a completed region game disagree
	// on who won.
	ErrInconsistentPair ErrorKind = "inconsistent_pair"
	// ErrMissingOpponent: a region game references a school outside the
	// region set.
	ErrMissingOpponent ErrorKind = "missing_opponent"
	// ErrInvalidInput: negative trials (zero selects DefaultTrials), negative
	// points, or an unknown result.
	ErrInvalidInput ErrorKind = "invalid_input"
	// ErrCancelled: cooperative cancellation observed; partial odds returned
	// alongside this error.
	ErrCancelled ErrorKind = "cancelled"
)

// Error is a structured engine error. Cancelled errors accompany a partial
// Result; every other kind fails the run before trials begin.
type Error struct {
	Kind   ErrorKind
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func errf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// KindOf returns the ErrorKind of err if it is an engine Error, or "" if not.
func KindOf(err error) ErrorKind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return ""
}
