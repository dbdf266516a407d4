package auth

import "errors"

var (
	// ErrUnauthenticated means no valid identity could be established:
	// missing, malformed or expired token, or a revoked session. Surfaces
	// as 401 and must never be downgraded to ErrForbidden.
	ErrUnauthenticated = errors.New("unauthorized")

	// ErrForbidden means the identity is valid but policy denies the
	// operation. Surfaces as 403.
	ErrForbidden = errors.New("forbidden: insufficient permissions")
)
