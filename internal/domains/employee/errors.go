package employee

import "errors"

// Repository-level errors
var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Service-level (business logic) errors
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTooManyAttempts    = errors.New("too many login attempts, please try again later")
	ErrSessionWriteFailed = errors.New("could not record session")
)
