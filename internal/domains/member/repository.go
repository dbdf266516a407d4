package member

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, m *Member) error
	// FindByID returns soft-deleted rows too; callers decide whether a
	// deleted member is acceptable (the resolver is not).
	FindByID(ctx context.Context, id uuid.UUID) (*Member, error)
	// FindByUsername matches case-insensitively and skips deleted rows.
	FindByUsername(ctx context.Context, username string) (*Member, error)
	// UpsertProfile writes display name, bio and avatar through an explicit
	// conflict target so repeated submissions are idempotent.
	UpsertProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*Member, error)
	// SoftDelete marks the member inert; the row persists.
	SoftDelete(ctx context.Context, id uuid.UUID) error
}
