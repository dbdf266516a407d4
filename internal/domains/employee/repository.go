package employee

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the data access contract for employees.
type Repository interface {
	Create(ctx context.Context, e *Employee) error
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	// FindByEmail matches case-insensitively; this is the merge-lookup path.
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, e *Employee) error
	List(ctx context.Context, limit, offset int) ([]Employee, int64, error)
	// Delete nulls authored-document foreign keys, revokes all sessions and
	// removes the row, as a single transaction. Content provenance survives
	// as documents with a null author.
	Delete(ctx context.Context, id uuid.UUID) error
}
