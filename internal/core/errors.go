package core

import "fmt"

// ValidationError reports a form invariant violation detected before
// submission. The user corrects the form and retries; nothing is persisted.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// PreconditionError reports an operation against a stale or missing
// working-set entry (e.g. a schedule edit referencing a deleted proposal).
// Recoverable by re-reading current state.
type PreconditionError struct {
	Msg string
}

func (e *PreconditionError) Error() string { return e.Msg }

func preconditionErrorf(format string, args ...any) error {
	return &PreconditionError{Msg: fmt.Sprintf(format, args...)}
}

// RemoteError wraps a failure from an external collaborator (persistence,
// upload). It is surfaced once to the caller and never retried automatically.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *RemoteError) Unwrap() error { return e.Err }
