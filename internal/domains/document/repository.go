package document

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, d *Document) error
	FindByID(ctx context.Context, id uuid.UUID) (*Document, error)
	FindBySlug(ctx context.Context, slug string) (*Document, error)
	// SlugExists reports whether another document already holds the slug.
	// Pass a non-nil excludeID on updates so the row does not match itself.
	// This check is advisory; the unique index is the source of truth.
	SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)
	Update(ctx context.Context, d *Document) error
	SetAuthor(ctx context.Context, id uuid.UUID, authorID *uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]Document, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
