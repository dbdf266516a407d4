package submission

import (
	"time"

	"github.com/google/uuid"
)

// Status is the moderation state. Pending is initial; approved and rejected
// are terminal and immutable.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Submission is a proposed document creation (DocumentID nil) or edit
// (DocumentID set). AuthorID is always the authenticated principal at
// creation time.
type Submission struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	DocumentID   *uuid.UUID `json:"document_id" db:"document_id"`
	Slug         string     `json:"slug" db:"slug"`
	Title        string     `json:"title" db:"title"`
	Content      string     `json:"content" db:"content"`
	AuthorID     uuid.UUID  `json:"author_id" db:"author_id"`
	Status       Status     `json:"status" db:"status"`
	ReviewerID   *uuid.UUID `json:"reviewer_id" db:"reviewer_id"`
	ReviewerNote *string    `json:"reviewer_note" db:"reviewer_note"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}
