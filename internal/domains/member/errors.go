package member

import "errors"

var (
	ErrMemberNotFound       = errors.New("member not found")
	ErrUsernameAlreadyTaken = errors.New("username already taken")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrTooManyAttempts      = errors.New("too many login attempts, please try again later")
	ErrMemberDeleted        = errors.New("member account has been deleted")
)
