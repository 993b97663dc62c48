package service

import "errors"

// Error kinds. Services wrap these so the handler boundary can map every
// failure to an HTTP status without string matching.
var (
	ErrValidation         = errors.New("validation error")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrRateLimited        = errors.New("rate limited")
)

// Error pairs a kind with a human-readable message. Error() returns only
// the message; errors.Is matches the kind.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Unwrap() error { return e.kind }

func newError(kind error, msg string) error {
	return &Error{kind: kind, msg: msg}
}

func validationError(msg string) error  { return newError(ErrValidation, msg) }
func credentialsError(msg string) error { return newError(ErrInvalidCredentials, msg) }
func forbiddenError(msg string) error   { return newError(ErrForbidden, msg) }
func notFoundError(msg string) error    { return newError(ErrNotFound, msg) }
func conflictError(msg string) error    { return newError(ErrConflict, msg) }
func rateLimitError(msg string) error   { return newError(ErrRateLimited, msg) }
