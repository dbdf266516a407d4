package session

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the session registry. A failed Create must abort the login
// that triggered it: a token that was never recorded here can never be
// revoked.
type Repository interface {
	Create(ctx context.Context, s *Session) error
	// FindActiveByHash returns the most recently created session for the
	// hash, or ErrSessionNotFound if none exists or it has expired.
	FindActiveByHash(ctx context.Context, tokenHash string) (*Session, error)
	// RevokeByHash is idempotent; revoking an unknown hash is not an error.
	RevokeByHash(ctx context.Context, tokenHash string) error
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) error
	// DeleteExpired reclaims rows past their expiry. Lookups already filter
	// them out; this is housekeeping, run by the maintenance worker.
	DeleteExpired(ctx context.Context) (int64, error)
}
