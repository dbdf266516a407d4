package repository

import (
	"context"
	"errors"
	"fmt"

	"foundation-backend/internal/domains/member"
	"foundation-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) member.Repository {
	return &postgresRepository{pool: pool}
}

// Profile fields live in member_profiles, one row per member, created lazily
// on the first profile write. Reads left-join it so a member without a
// profile row still resolves.
const memberColumns = `
	m.id, m.username, m.email, m.password_hash,
	p.display_name, p.bio, p.avatar_url,
	m.deleted, m.created_at, m.updated_at
`

func scanMember(row pgx.Row) (*member.Member, error) {
	m := &member.Member{}
	err := row.Scan(
		&m.ID,
		&m.Username,
		&m.Email,
		&m.PasswordHash,
		&m.DisplayName,
		&m.Bio,
		&m.AvatarURL,
		&m.Deleted,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *postgresRepository) Create(ctx context.Context, m *member.Member) error {
	const query = `
		INSERT INTO members (id, username, email, password_hash, deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, false, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		m.ID,
		m.Username,
		m.Email,
		m.PasswordHash,
		m.CreatedAt,
		m.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if pgErr.ConstraintName == "idx_members_username_lower" {
				return member.ErrUsernameAlreadyTaken
			}
		}
		logger.Error("Create: failed to insert member", err)
		return fmt.Errorf("failed to create member: %w", err)
	}

	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*member.Member, error) {
	// Deleted rows are returned on purpose; the caller decides whether a
	// soft-deleted member is acceptable.
	query := fmt.Sprintf(`
		SELECT %s
		FROM members m
		LEFT JOIN member_profiles p ON p.member_id = m.id
		WHERE m.id = $1
	`, memberColumns)

	m, err := scanMember(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, member.ErrMemberNotFound
		}
		logger.Error("FindByID: database error", err)
		return nil, fmt.Errorf("failed to find member: %w", err)
	}

	return m, nil
}

func (r *postgresRepository) FindByUsername(ctx context.Context, username string) (*member.Member, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM members m
		LEFT JOIN member_profiles p ON p.member_id = m.id
		WHERE LOWER(m.username) = LOWER($1) AND m.deleted = false
	`, memberColumns)

	m, err := scanMember(r.pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, member.ErrMemberNotFound
		}
		logger.Error("FindByUsername: database error", err)
		return nil, fmt.Errorf("failed to find member by username: %w", err)
	}

	return m, nil
}

func (r *postgresRepository) UpsertProfile(ctx context.Context, id uuid.UUID, req member.UpdateProfileRequest) (*member.Member, error) {
	const query = `
		INSERT INTO member_profiles (member_id, display_name, bio, avatar_url, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (member_id) DO UPDATE
		SET display_name = COALESCE(EXCLUDED.display_name, member_profiles.display_name),
			bio = COALESCE(EXCLUDED.bio, member_profiles.bio),
			avatar_url = COALESCE(EXCLUDED.avatar_url, member_profiles.avatar_url),
			updated_at = NOW()
	`

	if _, err := r.pool.Exec(ctx, query, id, req.DisplayName, req.Bio, req.AvatarURL); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, member.ErrMemberNotFound
		}
		logger.Error("UpsertProfile: database error", err)
		return nil, fmt.Errorf("failed to upsert member profile: %w", err)
	}

	return r.FindByID(ctx, id)
}

func (r *postgresRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	const query = `
		UPDATE members
		SET deleted = true, updated_at = NOW()
		WHERE id = $1 AND deleted = false
	`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		logger.Error("SoftDelete: database error", err)
		return fmt.Errorf("failed to delete member: %w", err)
	}

	if result.RowsAffected() == 0 {
		return member.ErrMemberNotFound
	}

	return nil
}
