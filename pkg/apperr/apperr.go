package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an operation failure so handlers can map it to a status
// code without inspecting message text.
type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation marks a missing or invalid required field, detected
	// before any store call is issued.
	KindValidation
	// KindConflict marks an operation rejected by the current state of the
	// target record, e.g. assigning a patient to a filled slot.
	KindConflict
	// KindNotFound marks an operation on a stale or deleted record id.
	KindNotFound
	// KindStore marks a persistence or transport failure and wraps the cause.
	KindStore
)

type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Store(cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: KindStore, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// KindOf returns the kind of err, or KindUnknown when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
