package appointment

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation   Kind = "validation"
	KindConflict     Kind = "conflict"
	KindNotFound     Kind = "not_found"
	KindUnauthorized Kind = "unauthorized"
	KindStorage      Kind = "storage"
)

// Error is a rejection the caller is expected to render, not recover from.
type Error struct {
	Kind   Kind
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(reason string) error {
	return &Error{Kind: KindValidation, Reason: reason}
}

func Conflict(reason string) error {
	return &Error{Kind: KindConflict, Reason: reason}
}

func NotFound(reason string) error {
	return &Error{Kind: KindNotFound, Reason: reason}
}

func Unauthorized(reason string) error {
	return &Error{Kind: KindUnauthorized, Reason: reason}
}

// Storage wraps a backing-medium failure. Errors that already carry a kind
// are returned unchanged.
func Storage(err error) error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		return err
	}
	return &Error{Kind: KindStorage, Reason: "storage unavailable", Err: err}
}

// ErrTxAborted marks a check-and-write that lost a race with a concurrent
// writer. Callers may retry it once with a fresh conflict check.
var ErrTxAborted = &Error{Kind: KindStorage, Reason: "transaction aborted"}

func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	if err != nil {
		return KindStorage
	}
	return ""
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Reason returns the caller-facing message of err.
func Reason(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Reason
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
