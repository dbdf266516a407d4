package submission

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type SubmitRequest struct {
	DocumentID *uuid.UUID `json:"document_id,omitempty"`
	Slug       string     `json:"slug"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
}

func (r SubmitRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Slug,
			validation.Required.Error("slug is required"),
			validation.Length(1, 255).Error("slug must be 1-255 characters"),
		),
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255).Error("title must be 1-255 characters"),
		),
		validation.Field(&r.Content, validation.Required.Error("content is required")),
	)
}

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

type ReviewRequest struct {
	Decision Decision `json:"decision"`
	Note     *string  `json:"note,omitempty"`
}

func (r ReviewRequest) Validate() error {
	if r.Decision != DecisionApprove && r.Decision != DecisionReject {
		return ErrInvalidDecision
	}
	return nil
}

// StatusFilter for listing. Empty means "use the caller-dependent default";
// "all" disables filtering explicitly.
const FilterAll = "all"

type ListRequest struct {
	Status string `form:"status"`
}
