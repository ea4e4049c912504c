package service

import (
	"errors"
	"fmt"
)

// Error kinds. Every *Error wraps one of them so callers can branch with errors.Is.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnavailable  = errors.New("unavailable")
)

// Error is a client-facing failure: Message is safe to return to the caller.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func badRequest(format string, args ...any) error   { return newError(ErrBadRequest, format, args...) }
func unauthorized(format string, args ...any) error { return newError(ErrUnauthorized, format, args...) }
func forbidden(format string, args ...any) error    { return newError(ErrForbidden, format, args...) }
func notFound(format string, args ...any) error     { return newError(ErrNotFound, format, args...) }
func conflict(format string, args ...any) error     { return newError(ErrConflict, format, args...) }
func invalid(format string, args ...any) error      { return newError(ErrInvalidInput, format, args...) }
