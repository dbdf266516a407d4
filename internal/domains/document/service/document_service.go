package service

import (
	"context"
	"fmt"
	"time"

	"foundation-backend/internal/auth"
	"foundation-backend/internal/domains/document"
	"foundation-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// Service is the business logic contract for live documents. It lives here
// rather than in the domain root because it speaks in terms of the resolved
// principal, and the policy package already depends on the domain root.
type Service interface {
	// Create publishes a document directly, outside the review workflow.
	Create(ctx context.Context, p *auth.Principal, req document.CreateRequest) (*document.Document, error)
	Get(ctx context.Context, id uuid.UUID) (*document.Document, error)
	GetBySlug(ctx context.Context, slug string) (*document.Document, error)
	List(ctx context.Context, req document.ListRequest) (*document.ListResponse, error)
	Update(ctx context.Context, p *auth.Principal, id uuid.UUID, req document.UpdateRequest) (*document.Document, error)
	ChangeAuthor(ctx context.Context, p *auth.Principal, id uuid.UUID, req document.ChangeAuthorRequest) (*document.Document, error)
	Delete(ctx context.Context, p *auth.Principal, id uuid.UUID) error
}

type documentService struct {
	repo document.Repository
}

func NewDocumentService(repo document.Repository) Service {
	return &documentService{repo: repo}
}

func (s *documentService) Create(ctx context.Context, p *auth.Principal, req document.CreateRequest) (*document.Document, error) {
	if !auth.CanAdminister(p) {
		return nil, auth.ErrForbidden
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	docSlug := req.Slug
	if docSlug == "" {
		docSlug = slug.Make(req.Title)
	}

	now := time.Now()
	authorID := p.ID
	d := &document.Document{
		ID:        uuid.New(),
		Slug:      docSlug,
		Title:     req.Title,
		Content:   req.Content,
		AuthorID:  &authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}

	logger.Info("document created", map[string]interface{}{
		"document_id": d.ID.String(),
		"slug":        d.Slug,
	})

	return d, nil
}

func (s *documentService) Get(ctx context.Context, id uuid.UUID) (*document.Document, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *documentService) GetBySlug(ctx context.Context, docSlug string) (*document.Document, error) {
	return s.repo.FindBySlug(ctx, docSlug)
}

func (s *documentService) List(ctx context.Context, req document.ListRequest) (*document.ListResponse, error) {
	req.SetDefaults()

	offset := (req.Page - 1) * req.Limit
	documents, total, err := s.repo.List(ctx, req.Limit, offset)
	if err != nil {
		return nil, err
	}

	return &document.ListResponse{
		Documents: documents,
		Total:     total,
	}, nil
}

func (s *documentService) Update(ctx context.Context, p *auth.Principal, id uuid.UUID, req document.UpdateRequest) (*document.Document, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !auth.CanEditDocument(p, d) {
		return nil, auth.ErrForbidden
	}

	if req.Slug != nil {
		d.Slug = *req.Slug
	}
	if req.Title != nil {
		d.Title = *req.Title
	}
	if req.Content != nil {
		d.Content = *req.Content
	}

	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}

	return d, nil
}

func (s *documentService) ChangeAuthor(ctx context.Context, p *auth.Principal, id uuid.UUID, req document.ChangeAuthorRequest) (*document.Document, error) {
	if !auth.CanChangeDocumentAuthor(p) {
		return nil, auth.ErrForbidden
	}

	if err := s.repo.SetAuthor(ctx, id, req.AuthorID); err != nil {
		return nil, err
	}

	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload document: %w", err)
	}

	return d, nil
}

func (s *documentService) Delete(ctx context.Context, p *auth.Principal, id uuid.UUID) error {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !auth.CanEditDocument(p, d) {
		return auth.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("document deleted", map[string]interface{}{
		"document_id": id.String(),
		"slug":        d.Slug,
	})

	return nil
}
