package service

import (
	"context"
	"errors"
	"time"

	"foundation-backend/internal/auth"
	"foundation-backend/internal/domains/document"
	"foundation-backend/internal/domains/submission"
	"foundation-backend/pkg/logger"

	"github.com/google/uuid"
)

// ReviewResult reports the outcome of a review. Document is set only when
// the decision was approve.
type ReviewResult struct {
	Submission *submission.Submission `json:"submission"`
	Document   *document.Document     `json:"document,omitempty"`
}

// Service runs the moderation workflow. Like the document service it speaks
// in terms of the resolved principal, so it lives outside the domain root.
type Service interface {
	Submit(ctx context.Context, p *auth.Principal, req submission.SubmitRequest) (*submission.Submission, error)
	Get(ctx context.Context, p *auth.Principal, id uuid.UUID) (*submission.Submission, error)
	List(ctx context.Context, p *auth.Principal, req submission.ListRequest) ([]submission.Submission, error)
	Review(ctx context.Context, p *auth.Principal, id uuid.UUID, req submission.ReviewRequest) (*ReviewResult, error)
}

type submissionService struct {
	repo      submission.Repository
	documents document.Repository
}

func NewSubmissionService(repo submission.Repository, documents document.Repository) Service {
	return &submissionService{
		repo:      repo,
		documents: documents,
	}
}

// Submit records a proposal. Edit proposals are gated on the live document:
// the proposer must be allowed to edit it today for the proposal to enter
// the queue at all.
func (s *submissionService) Submit(ctx context.Context, p *auth.Principal, req submission.SubmitRequest) (*submission.Submission, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.DocumentID != nil {
		d, err := s.documents.FindByID(ctx, *req.DocumentID)
		if err != nil {
			return nil, err
		}
		if !auth.CanEditDocument(p, d) {
			return nil, auth.ErrForbidden
		}
	}

	now := time.Now()
	sub := &submission.Submission{
		ID:         uuid.New(),
		DocumentID: req.DocumentID,
		Slug:       req.Slug,
		Title:      req.Title,
		Content:    req.Content,
		AuthorID:   p.ID,
		Status:     submission.StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, err
	}

	logger.Info("submission created", map[string]interface{}{
		"submission_id": sub.ID.String(),
		"author_id":     sub.AuthorID.String(),
	})

	return sub, nil
}

func (s *submissionService) Get(ctx context.Context, p *auth.Principal, id uuid.UUID) (*submission.Submission, error) {
	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !auth.CanAdminister(p) && sub.AuthorID != p.ID {
		return nil, auth.ErrForbidden
	}

	return sub, nil
}

// List scopes by role: non-admins only ever see their own submissions.
// Admins default to the pending queue; status=all lifts the filter.
func (s *submissionService) List(ctx context.Context, p *auth.Principal, req submission.ListRequest) ([]submission.Submission, error) {
	var status *submission.Status

	switch req.Status {
	case "", submission.FilterAll:
		// resolved below
	default:
		st := submission.Status(req.Status)
		if !st.Valid() {
			return nil, submission.ErrInvalidStatus
		}
		status = &st
	}

	if !auth.CanAdminister(p) {
		return s.repo.ListByAuthor(ctx, p.ID, status)
	}

	if req.Status == "" {
		pending := submission.StatusPending
		status = &pending
	}

	return s.repo.ListAll(ctx, status)
}

// Review executes the one-shot transition. Ordering matters: existence, then
// the already-reviewed check, then policy, so a reviewer is told a submission
// is settled rather than forbidden when both are true.
func (s *submissionService) Review(ctx context.Context, p *auth.Principal, id uuid.UUID, req submission.ReviewRequest) (*ReviewResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if sub.Status != submission.StatusPending {
		return nil, submission.ErrAlreadyReviewed
	}

	if !auth.CanReviewSubmission(p, sub) {
		return nil, auth.ErrForbidden
	}

	if req.Decision == submission.DecisionReject {
		rejected, err := s.repo.MarkRejected(ctx, sub.ID, p.ID, req.Note)
		if err != nil {
			return nil, err
		}

		logger.Info("submission rejected", map[string]interface{}{
			"submission_id": sub.ID.String(),
			"reviewer_id":   p.ID.String(),
		})

		return &ReviewResult{Submission: rejected}, nil
	}

	// Approve path. An edit proposal whose target has been deleted stays
	// pending; the reviewer can only reject it.
	if sub.DocumentID != nil {
		if _, err := s.documents.FindByID(ctx, *sub.DocumentID); err != nil {
			if errors.Is(err, document.ErrDocumentNotFound) {
				return nil, submission.ErrTargetDocumentMissing
			}
			return nil, err
		}
	}

	// Advisory pre-check for a friendlier conflict error. The unique index
	// inside Approve remains authoritative.
	taken, err := s.documents.SlugExists(ctx, sub.Slug, sub.DocumentID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, document.ErrSlugTaken
	}

	doc, err := s.repo.Approve(ctx, sub, p.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("submission approved", map[string]interface{}{
		"submission_id": sub.ID.String(),
		"reviewer_id":   p.ID.String(),
		"document_id":   doc.ID.String(),
	})

	return &ReviewResult{Submission: sub, Document: doc}, nil
}
