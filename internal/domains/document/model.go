package document

import (
	"time"

	"github.com/google/uuid"
)

// Document is a live published page. AuthorID is nullable so content
// survives the deletion of its author. The slug is globally unique,
// enforced by the idx_documents_slug unique index; the application-level
// checks elsewhere only exist for friendlier error messages.
type Document struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	Slug      string     `json:"slug" db:"slug"`
	Title     string     `json:"title" db:"title"`
	Content   string     `json:"content" db:"content"`
	AuthorID  *uuid.UUID `json:"author_id" db:"author_id"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}
