// Package errs defines the error taxonomy shared by the ledger core.
// Callers use the Kind to decide whether an operation may be retried:
// only Store errors are retryable, and never automatically inside the
// core (a retry there could double-apply a balance delta).
package errs

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// Validation: bad input shape or value. Surfaced verbatim, not retried.
	Validation Kind = iota
	// NotFound: referenced entity missing or not owned by the caller.
	NotFound
	// Store: the underlying atomic unit failed. The whole operation may be
	// retried by the caller.
	Store
	// MalformedSnapshot: import payload failed the shape check. Raised before
	// any destructive step runs.
	MalformedSnapshot
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case NotFound:
		return "not_found"
	case Store:
		return "store"
	case MalformedSnapshot:
		return "malformed_snapshot"
	}
	return "unknown"
}

// Error carries a Kind alongside the message and an optional wrapped cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func Validationf(format string, args ...any) error {
	return &Error{Kind: Validation, Msg: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...any) error {
	return &Error{Kind: NotFound, Msg: fmt.Sprintf(format, args...)}
}

func Storef(err error, format string, args ...any) error {
	return &Error{Kind: Store, Msg: fmt.Sprintf(format, args...), Err: err}
}

func MalformedSnapshotf(format string, args ...any) error {
	return &Error{Kind: MalformedSnapshot, Msg: fmt.Sprintf(format, args...)}
}

// KindOf reports the Kind of err, defaulting to Store for errors that did not
// originate in the core (driver faults, constraint violations).
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Store
}

func IsValidation(err error) bool { return is(err, Validation) }

func IsNotFound(err error) bool { return is(err, NotFound) }

func IsStore(err error) bool { return is(err, Store) }

func IsMalformedSnapshot(err error) bool { return is(err, MalformedSnapshot) }

func is(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}
