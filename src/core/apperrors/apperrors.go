// Package apperrors defines the failure kinds surfaced to API callers.
package apperrors

import (
	"errors"
	"fmt"
)

type Kind string

const (
	Unauthenticated  Kind = "UNAUTHENTICATED"
	NotFound         Kind = "NOT_FOUND"
	InvalidOperation Kind = "INVALID_OPERATION"
	InvalidInput     Kind = "INVALID_INPUT"
	AlreadyExists    Kind = "ALREADY_EXISTS"
	Internal         Kind = "INTERNAL"
)

// Error is a caller-facing failure. Two errors match under errors.Is when
// their kinds are equal, so the sentinels below can be used as targets.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

var (
	ErrUnauthenticated  = &Error{Kind: Unauthenticated, Message: "Not logged in!"}
	ErrNotFound         = &Error{Kind: NotFound, Message: "not found"}
	ErrInvalidOperation = &Error{Kind: InvalidOperation, Message: "invalid operation"}
	ErrInvalidInput     = &Error{Kind: InvalidInput, Message: "invalid input"}
	ErrAlreadyExists    = &Error{Kind: AlreadyExists, Message: "already exists"}
)

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Extensions is picked up by the GraphQL executor and rendered under
// "extensions" in the error entry.
func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": string(e.Kind)}
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: NotFound, Message: fmt.Sprintf(format, args...)}
}

func InvalidOperationf(format string, args ...interface{}) *Error {
	return &Error{Kind: InvalidOperation, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of the first *Error in err's chain, or Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}
