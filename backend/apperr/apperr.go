// Package apperr defines the error kinds the services return and how they map
// onto HTTP status codes.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Base kinds, checked with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrDateFormat = errors.New("invalid date format")
	ErrConflict   = errors.New("already exists")
	ErrNotFound   = errors.New("not found")
	ErrInternal   = errors.New("internal error")
)

// Error carries the failing operation, its kind and a caller-facing message.
type Error struct {
	Op      string // e.g. "student.Register"
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is matches both the kind and the wrapped cause.
func (e *Error) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	return e.Err != nil && errors.Is(e.Err, target)
}

func Validation(op, format string, args ...any) *Error {
	return &Error{Op: op, Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func DateFormat(op, message string, err error) *Error {
	return &Error{Op: op, Kind: ErrDateFormat, Message: message, Err: err}
}

func Conflict(op, message string) *Error {
	return &Error{Op: op, Kind: ErrConflict, Message: message}
}

func NotFound(op, message string) *Error {
	return &Error{Op: op, Kind: ErrNotFound, Message: message}
}

// Internal wraps an unexpected failure. The message is the cause's text.
func Internal(op string, err error) *Error {
	return &Error{Op: op, Kind: ErrInternal, Err: err}
}

// Status returns the HTTP status for err. Unclassified errors are internal.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation), errors.Is(err, ErrDateFormat), errors.Is(err, ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Wrap leaves classified errors untouched and marks everything else internal.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}
	return Internal(op, err)
}
