package submission

import (
	"context"

	"foundation-backend/internal/domains/document"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, s *Submission) error
	FindByID(ctx context.Context, id uuid.UUID) (*Submission, error)
	// ListByAuthor returns the author's submissions, newest first,
	// optionally filtered by status.
	ListByAuthor(ctx context.Context, authorID uuid.UUID, status *Status) ([]Submission, error)
	// ListAll returns all submissions, newest first, optionally filtered.
	ListAll(ctx context.Context, status *Status) ([]Submission, error)
	// MarkRejected records the terminal rejected state with the reviewer's
	// note. Never touches the document table.
	MarkRejected(ctx context.Context, id uuid.UUID, reviewerID uuid.UUID, note *string) (*Submission, error)
	// Approve applies the submission to the document table and marks the
	// submission approved, in one transaction. Authorship is (re)assigned to
	// the original proposer. A unique-index violation on the slug is
	// reported as document.ErrSlugTaken and nothing is changed, superseding
	// any earlier advisory check.
	Approve(ctx context.Context, s *Submission, reviewerID uuid.UUID) (*document.Document, error)
}
