package document

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// CreateRequest creates a document directly, bypassing the review workflow.
// Admin only. When Slug is empty one is derived from the title.
type CreateRequest struct {
	Slug    string `json:"slug,omitempty"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (r CreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255).Error("title must be 1-255 characters"),
		),
		validation.Field(&r.Content, validation.Required.Error("content is required")),
		validation.Field(&r.Slug, validation.Length(1, 255).Error("slug must be 1-255 characters")),
	)
}

type UpdateRequest struct {
	Slug    *string `json:"slug,omitempty"`
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

func (r UpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(1, 255).Error("title must be 1-255 characters")),
		validation.Field(&r.Slug, validation.Length(1, 255).Error("slug must be 1-255 characters")),
	)
}

type ChangeAuthorRequest struct {
	AuthorID *uuid.UUID `json:"author_id"`
}

type ListRequest struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

func (r *ListRequest) SetDefaults() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 20
	}
}

type ListResponse struct {
	Documents []Document `json:"documents"`
	Total     int64      `json:"total"`
}
