package domain

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrUsernameTaken      = errors.New("expected `username` to be unique")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrMissingToken       = errors.New("token missing")
	ErrInvalidToken       = errors.New("token invalid")
	ErrForbidden          = errors.New("only the creator can modify this blog")
	ErrPostNotFound       = errors.New("blog not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrMalformedID        = errors.New("malformatted id")
)

// ValidationError carries a client-facing message for rejected input.
// It matches ErrValidation under errors.Is.
type ValidationError struct {
	Msg string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Msg: msg}
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Unwrap() error { return ErrValidation }
