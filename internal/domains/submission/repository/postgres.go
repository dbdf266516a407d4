package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foundation-backend/internal/domains/document"
	"foundation-backend/internal/domains/submission"
	"foundation-backend/pkg/database"
	"foundation-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) submission.Repository {
	return &postgresRepository{pool: pool}
}

const submissionColumns = `
	id, document_id, slug, title, content, author_id,
	status, reviewer_id, reviewer_note, created_at, updated_at
`

func scanSubmission(row pgx.Row) (*submission.Submission, error) {
	s := &submission.Submission{}
	err := row.Scan(
		&s.ID,
		&s.DocumentID,
		&s.Slug,
		&s.Title,
		&s.Content,
		&s.AuthorID,
		&s.Status,
		&s.ReviewerID,
		&s.ReviewerNote,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *postgresRepository) Create(ctx context.Context, s *submission.Submission) error {
	const query = `
		INSERT INTO submissions (
			id, document_id, slug, title, content, author_id,
			status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		s.ID,
		s.DocumentID,
		s.Slug,
		s.Title,
		s.Content,
		s.AuthorID,
		s.Status,
		s.CreatedAt,
		s.UpdatedAt,
	)

	if err != nil {
		logger.Error("Create: failed to insert submission", err)
		return fmt.Errorf("failed to create submission: %w", err)
	}

	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*submission.Submission, error) {
	query := fmt.Sprintf(`SELECT %s FROM submissions WHERE id = $1`, submissionColumns)

	s, err := scanSubmission(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, submission.ErrSubmissionNotFound
		}
		logger.Error("FindByID: database error", err)
		return nil, fmt.Errorf("failed to find submission: %w", err)
	}

	return s, nil
}

func (r *postgresRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID, status *submission.Status) ([]submission.Submission, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM submissions
		WHERE author_id = $1 AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at DESC
	`, submissionColumns)

	rows, err := r.pool.Query(ctx, query, authorID, status)
	if err != nil {
		logger.Error("ListByAuthor: database error", err)
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	return collectSubmissions(rows)
}

func (r *postgresRepository) ListAll(ctx context.Context, status *submission.Status) ([]submission.Submission, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM submissions
		WHERE $1::text IS NULL OR status = $1
		ORDER BY created_at DESC
	`, submissionColumns)

	rows, err := r.pool.Query(ctx, query, status)
	if err != nil {
		logger.Error("ListAll: database error", err)
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	return collectSubmissions(rows)
}

func collectSubmissions(rows pgx.Rows) ([]submission.Submission, error) {
	submissions := make([]submission.Submission, 0)
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		submissions = append(submissions, *s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate submissions: %w", err)
	}

	return submissions, nil
}

func (r *postgresRepository) MarkRejected(ctx context.Context, id uuid.UUID, reviewerID uuid.UUID, note *string) (*submission.Submission, error) {
	// The status guard in the WHERE clause makes the one-shot transition
	// race-safe even if two reviewers act at once.
	query := fmt.Sprintf(`
		UPDATE submissions
		SET status = $2, reviewer_id = $3, reviewer_note = $4, updated_at = NOW()
		WHERE id = $1 AND status = $5
		RETURNING %s
	`, submissionColumns)

	s, err := scanSubmission(r.pool.QueryRow(ctx, query,
		id, submission.StatusRejected, reviewerID, note, submission.StatusPending))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, submission.ErrAlreadyReviewed
		}
		logger.Error("MarkRejected: database error", err)
		return nil, fmt.Errorf("failed to reject submission: %w", err)
	}

	return s, nil
}

// Approve applies the submission's payload to the document table and flips
// the submission to approved, atomically. Either both happen or neither: a
// slug conflict (or any other failure) rolls the whole thing back, so an
// approved submission always has its document applied.
func (r *postgresRepository) Approve(ctx context.Context, s *submission.Submission, reviewerID uuid.UUID) (*document.Document, error) {
	doc, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*document.Document, error) {
		d := &document.Document{}
		authorID := s.AuthorID

		if s.DocumentID != nil {
			const updateDoc = `
				UPDATE documents
				SET slug = $2, title = $3, content = $4, author_id = $5, updated_at = NOW()
				WHERE id = $1
				RETURNING id, slug, title, content, author_id, created_at, updated_at
			`
			err := tx.QueryRow(ctx, updateDoc,
				*s.DocumentID, s.Slug, s.Title, s.Content, authorID,
			).Scan(&d.ID, &d.Slug, &d.Title, &d.Content, &d.AuthorID, &d.CreatedAt, &d.UpdatedAt)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return nil, submission.ErrTargetDocumentMissing
				}
				return nil, err
			}
		} else {
			const insertDoc = `
				INSERT INTO documents (id, slug, title, content, author_id, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
				RETURNING id, slug, title, content, author_id, created_at, updated_at
			`
			err := tx.QueryRow(ctx, insertDoc,
				uuid.New(), s.Slug, s.Title, s.Content, authorID,
			).Scan(&d.ID, &d.Slug, &d.Title, &d.Content, &d.AuthorID, &d.CreatedAt, &d.UpdatedAt)
			if err != nil {
				return nil, err
			}
		}

		// Approval clears any reviewer note; notes belong to rejections.
		const markApproved = `
			UPDATE submissions
			SET status = $2, reviewer_id = $3, reviewer_note = NULL, updated_at = NOW()
			WHERE id = $1 AND status = $4
		`
		result, err := tx.Exec(ctx, markApproved,
			s.ID, submission.StatusApproved, reviewerID, submission.StatusPending)
		if err != nil {
			return nil, err
		}
		if result.RowsAffected() == 0 {
			return nil, submission.ErrAlreadyReviewed
		}

		return d, nil
	})

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "idx_documents_slug" {
			// The unique index is the source of truth; the advisory check in
			// the service may have raced another writer.
			return nil, document.ErrSlugTaken
		}
		if errors.Is(err, submission.ErrAlreadyReviewed) ||
			errors.Is(err, submission.ErrTargetDocumentMissing) {
			return nil, err
		}
		logger.Error("Approve: transaction failed", err)
		return nil, fmt.Errorf("failed to approve submission: %w", err)
	}

	updatedAt := time.Now()
	s.Status = submission.StatusApproved
	s.ReviewerID = &reviewerID
	s.ReviewerNote = nil
	s.UpdatedAt = updatedAt

	return doc, nil
}
