package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foundation-backend/internal/domains/document"
	"foundation-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) document.Repository {
	return &postgresRepository{pool: pool}
}

func isSlugViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "idx_documents_slug"
}

func (r *postgresRepository) Create(ctx context.Context, d *document.Document) error {
	const query = `
		INSERT INTO documents (id, slug, title, content, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		d.ID,
		d.Slug,
		d.Title,
		d.Content,
		d.AuthorID,
		d.CreatedAt,
		d.UpdatedAt,
	)

	if err != nil {
		if isSlugViolation(err) {
			return document.ErrSlugTaken
		}
		logger.Error("Create: failed to insert document", err)
		return fmt.Errorf("failed to create document: %w", err)
	}

	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*document.Document, error) {
	const query = `
		SELECT id, slug, title, content, author_id, created_at, updated_at
		FROM documents
		WHERE id = $1
	`

	d := &document.Document{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&d.ID,
		&d.Slug,
		&d.Title,
		&d.Content,
		&d.AuthorID,
		&d.CreatedAt,
		&d.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, document.ErrDocumentNotFound
		}
		logger.Error("FindByID: database error", err)
		return nil, fmt.Errorf("failed to find document: %w", err)
	}

	return d, nil
}

func (r *postgresRepository) FindBySlug(ctx context.Context, slug string) (*document.Document, error) {
	const query = `
		SELECT id, slug, title, content, author_id, created_at, updated_at
		FROM documents
		WHERE slug = $1
	`

	d := &document.Document{}
	err := r.pool.QueryRow(ctx, query, slug).Scan(
		&d.ID,
		&d.Slug,
		&d.Title,
		&d.Content,
		&d.AuthorID,
		&d.CreatedAt,
		&d.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, document.ErrDocumentNotFound
		}
		logger.Error("FindBySlug: database error", err)
		return nil, fmt.Errorf("failed to find document by slug: %w", err)
	}

	return d, nil
}

func (r *postgresRepository) SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	const query = `
		SELECT EXISTS(
			SELECT 1 FROM documents
			WHERE slug = $1 AND ($2::uuid IS NULL OR id <> $2)
		)
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, slug, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}

	return exists, nil
}

func (r *postgresRepository) Update(ctx context.Context, d *document.Document) error {
	const query = `
		UPDATE documents
		SET slug = $2, title = $3, content = $4, updated_at = $5
		WHERE id = $1
	`

	d.UpdatedAt = time.Now()

	result, err := r.pool.Exec(ctx, query, d.ID, d.Slug, d.Title, d.Content, d.UpdatedAt)
	if err != nil {
		if isSlugViolation(err) {
			return document.ErrSlugTaken
		}
		logger.Error("Update: database error", err)
		return fmt.Errorf("failed to update document: %w", err)
	}

	if result.RowsAffected() == 0 {
		return document.ErrDocumentNotFound
	}

	return nil
}

func (r *postgresRepository) SetAuthor(ctx context.Context, id uuid.UUID, authorID *uuid.UUID) error {
	const query = `
		UPDATE documents
		SET author_id = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, id, authorID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("author does not exist: %w", err)
		}
		logger.Error("SetAuthor: database error", err)
		return fmt.Errorf("failed to change document author: %w", err)
	}

	if result.RowsAffected() == 0 {
		return document.ErrDocumentNotFound
	}

	return nil
}

func (r *postgresRepository) List(ctx context.Context, limit, offset int) ([]document.Document, int64, error) {
	const countQuery = `SELECT COUNT(*) FROM documents`

	var total int64
	if err := r.pool.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count documents: %w", err)
	}

	const query = `
		SELECT id, slug, title, content, author_id, created_at, updated_at
		FROM documents
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		logger.Error("List: database error", err)
		return nil, 0, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	documents := make([]document.Document, 0, limit)
	for rows.Next() {
		var d document.Document
		if err := rows.Scan(
			&d.ID,
			&d.Slug,
			&d.Title,
			&d.Content,
			&d.AuthorID,
			&d.CreatedAt,
			&d.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan document: %w", err)
		}
		documents = append(documents, d)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate documents: %w", err)
	}

	return documents, total, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM documents WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		logger.Error("Delete: database error", err)
		return fmt.Errorf("failed to delete document: %w", err)
	}

	if result.RowsAffected() == 0 {
		return document.ErrDocumentNotFound
	}

	return nil
}
