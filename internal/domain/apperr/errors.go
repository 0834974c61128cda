package apperr

import (
	"errors"
	"fmt"
)

// Error kinds. Use errors.Is against these; the HTTP layer maps them to status codes.
var (
	ErrValidation        = errors.New("validation error")
	ErrAuth              = errors.New("authentication error")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrDuplicatePending  = errors.New("duplicate pending application")
	ErrMissingProfile    = errors.New("missing profile")
)

// Error carries a kind plus a caller-facing message.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Kind }

func New(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) error { return New(ErrValidation, format, args...) }
func NotFound(format string, args ...any) error   { return New(ErrNotFound, format, args...) }
func Auth(format string, args ...any) error       { return New(ErrAuth, format, args...) }
func Forbidden(format string, args ...any) error  { return New(ErrForbidden, format, args...) }
func Conflict(format string, args ...any) error   { return New(ErrConflict, format, args...) }

func InvalidTransition(format string, args ...any) error {
	return New(ErrInvalidTransition, format, args...)
}
