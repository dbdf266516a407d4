package repository

import (
	"context"
	"errors"
	"fmt"

	"foundation-backend/internal/domains/session"
	"foundation-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) session.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, s *session.Session) error {
	const query = `
		INSERT INTO sessions (id, user_id, token_hash, user_agent, origin_address, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		s.ID,
		s.UserID,
		s.TokenHash,
		s.UserAgent,
		s.OriginAddress,
		s.ExpiresAt,
		s.CreatedAt,
	)

	if err != nil {
		logger.Error("Create: failed to record session", err)
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

func (r *postgresRepository) FindActiveByHash(ctx context.Context, tokenHash string) (*session.Session, error) {
	// Expired rows are filtered here rather than cleaned up eagerly; a
	// periodic sweep can reclaim them.
	const query = `
		SELECT id, user_id, token_hash, user_agent, origin_address, expires_at, created_at
		FROM sessions
		WHERE token_hash = $1
		AND (expires_at IS NULL OR expires_at > NOW())
		ORDER BY created_at DESC
		LIMIT 1
	`

	s := &session.Session{}
	err := r.pool.QueryRow(ctx, query, tokenHash).Scan(
		&s.ID,
		&s.UserID,
		&s.TokenHash,
		&s.UserAgent,
		&s.OriginAddress,
		&s.ExpiresAt,
		&s.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, session.ErrSessionNotFound
		}
		logger.Error("FindActiveByHash: database error", err)
		return nil, fmt.Errorf("failed to find session: %w", err)
	}

	return s, nil
}

func (r *postgresRepository) RevokeByHash(ctx context.Context, tokenHash string) error {
	const query = `DELETE FROM sessions WHERE token_hash = $1`

	if _, err := r.pool.Exec(ctx, query, tokenHash); err != nil {
		logger.Error("RevokeByHash: database error", err)
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	return nil
}

func (r *postgresRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	const query = `DELETE FROM sessions WHERE user_id = $1`

	if _, err := r.pool.Exec(ctx, query, userID); err != nil {
		logger.Error("RevokeAllForUser: database error", err)
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}

	return nil
}

func (r *postgresRepository) DeleteExpired(ctx context.Context) (int64, error) {
	const query = `DELETE FROM sessions WHERE expires_at IS NOT NULL AND expires_at <= NOW()`

	result, err := r.pool.Exec(ctx, query)
	if err != nil {
		logger.Error("DeleteExpired: database error", err)
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}

	return result.RowsAffected(), nil
}
