package domain

import (
	"errors"
	"strings"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already exists")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnknownProduct = errors.New("unknown product")
	ErrEmptyCart      = errors.New("cart is empty")
	ErrConflict       = errors.New("conflicting update")
)

// ValidationError carries one user-facing message per failed rule.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "invalid input: " + strings.Join(e.Messages, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// AuthError is returned when credentials are rejected. Reason is safe to
// show to the user.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string { return "unauthorized: " + e.Reason }

func (e *AuthError) Unwrap() error { return ErrUnauthorized }
