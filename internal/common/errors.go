package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// ErrValidation marks user-correctable input problems. Every
	// validators.ValidationError matches it through errors.Is.
	ErrValidation = errors.New("validation error")

	// Authentication outcomes. A missing account and a wrong password both
	// yield ErrInvalidCredentials.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account inactive")

	// Access gate errors.
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrInvalidToken           = errors.New("invalid or expired token")
)
