package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foundation-backend/internal/domains/employee"
	"foundation-backend/pkg/cache"
	"foundation-backend/pkg/database"
	"foundation-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const employeeCacheTTL = 15 * time.Minute

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) employee.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

func employeeCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("employee:%s", id.String())
}

// cachedEmployee is the Redis serialization of an employee row. The domain
// model hides the password hash from JSON, so caching it directly would
// round-trip the hash to "" and a later read-modify-write would persist
// that empty hash. The cache gets its own shape with every column.
type cachedEmployee struct {
	ID             uuid.UUID `json:"id"`
	Username       *string   `json:"username"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"password_hash"`
	DisplayName    *string   `json:"display_name"`
	AdminAccess    bool      `json:"admin_access"`
	Position       *string   `json:"position"`
	BioDescription *string   `json:"bio_description"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toCached(e *employee.Employee) cachedEmployee {
	return cachedEmployee{
		ID:             e.ID,
		Username:       e.Username,
		Email:          e.Email,
		PasswordHash:   e.PasswordHash,
		DisplayName:    e.DisplayName,
		AdminAccess:    e.AdminAccess,
		Position:       e.Position,
		BioDescription: e.BioDescription,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func (c cachedEmployee) toEmployee() *employee.Employee {
	return &employee.Employee{
		ID:             c.ID,
		Username:       c.Username,
		Email:          c.Email,
		PasswordHash:   c.PasswordHash,
		DisplayName:    c.DisplayName,
		AdminAccess:    c.AdminAccess,
		Position:       c.Position,
		BioDescription: c.BioDescription,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func (r *postgresRepository) Create(ctx context.Context, e *employee.Employee) error {
	const query = `
		INSERT INTO employees (
			id, username, email, password_hash, display_name,
			admin_access, position, bio_description, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		e.ID,
		e.Username,
		e.Email,
		e.PasswordHash,
		e.DisplayName,
		e.AdminAccess,
		e.Position,
		e.BioDescription,
		e.CreatedAt,
		e.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if pgErr.ConstraintName == "idx_employees_email_lower" {
				return employee.ErrEmailAlreadyExists
			}
		}
		logger.Error("Create: failed to insert employee", err)
		return fmt.Errorf("failed to create employee: %w", err)
	}

	return nil
}

// FindByID is cache-aside: check Redis first, fall back to the database and
// populate the cache on a miss.
func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*employee.Employee, error) {
	cacheKey := employeeCacheKey(id)

	var cached cachedEmployee
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return cached.toEmployee(), nil
	}

	const query = `
		SELECT id, username, email, password_hash, display_name,
			admin_access, position, bio_description, created_at, updated_at
		FROM employees
		WHERE id = $1
	`

	e := &employee.Employee{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&e.ID,
		&e.Username,
		&e.Email,
		&e.PasswordHash,
		&e.DisplayName,
		&e.AdminAccess,
		&e.Position,
		&e.BioDescription,
		&e.CreatedAt,
		&e.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, employee.ErrEmployeeNotFound
		}
		logger.Error("FindByID: database error", err)
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}

	_ = r.cache.Set(ctx, cacheKey, toCached(e), employeeCacheTTL)

	return e, nil
}

func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	// Case-insensitive on purpose: this is the merge-lookup path and the
	// login path, and emails differing only in case are the same address.
	const query = `
		SELECT id, username, email, password_hash, display_name,
			admin_access, position, bio_description, created_at, updated_at
		FROM employees
		WHERE LOWER(email) = LOWER($1)
	`

	e := &employee.Employee{}
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&e.ID,
		&e.Username,
		&e.Email,
		&e.PasswordHash,
		&e.DisplayName,
		&e.AdminAccess,
		&e.Position,
		&e.BioDescription,
		&e.CreatedAt,
		&e.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, employee.ErrEmployeeNotFound
		}
		logger.Error("FindByEmail: database error", err)
		return nil, fmt.Errorf("failed to find employee by email: %w", err)
	}

	return e, nil
}

func (r *postgresRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const query = `
		SELECT EXISTS(
			SELECT 1 FROM employees WHERE LOWER(email) = LOWER($1)
		)
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check employee email: %w", err)
	}

	return exists, nil
}

func (r *postgresRepository) Update(ctx context.Context, e *employee.Employee) error {
	const query = `
		UPDATE employees
		SET username = $2,
			email = $3,
			password_hash = $4,
			display_name = $5,
			admin_access = $6,
			position = $7,
			bio_description = $8,
			updated_at = $9
		WHERE id = $1
	`

	e.UpdatedAt = time.Now()

	result, err := r.pool.Exec(ctx, query,
		e.ID,
		e.Username,
		e.Email,
		e.PasswordHash,
		e.DisplayName,
		e.AdminAccess,
		e.Position,
		e.BioDescription,
		e.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if pgErr.ConstraintName == "idx_employees_email_lower" {
				return employee.ErrEmailAlreadyExists
			}
		}
		logger.Error("Update: database error", err)
		return fmt.Errorf("failed to update employee: %w", err)
	}

	if result.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	_ = r.cache.Delete(ctx, employeeCacheKey(e.ID))

	return nil
}

func (r *postgresRepository) List(ctx context.Context, limit, offset int) ([]employee.Employee, int64, error) {
	const countQuery = `SELECT COUNT(*) FROM employees`

	var total int64
	if err := r.pool.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	const query = `
		SELECT id, username, email, password_hash, display_name,
			admin_access, position, bio_description, created_at, updated_at
		FROM employees
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		logger.Error("List: database error", err)
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0, limit)
	for rows.Next() {
		var e employee.Employee
		if err := rows.Scan(
			&e.ID,
			&e.Username,
			&e.Email,
			&e.PasswordHash,
			&e.DisplayName,
			&e.AdminAccess,
			&e.Position,
			&e.BioDescription,
			&e.CreatedAt,
			&e.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, total, nil
}

// Delete removes the employee, their sessions and their document authorship
// links in one transaction. Documents survive with a null author.
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`UPDATE documents SET author_id = NULL, updated_at = NOW() WHERE author_id = $1`, id); err != nil {
			return fmt.Errorf("failed to detach authored documents: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM sessions WHERE user_id = $1`, id); err != nil {
			return fmt.Errorf("failed to revoke sessions: %w", err)
		}

		result, err := tx.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete employee: %w", err)
		}
		if result.RowsAffected() == 0 {
			return employee.ErrEmployeeNotFound
		}

		return nil
	})

	if err != nil {
		if !errors.Is(err, employee.ErrEmployeeNotFound) {
			logger.Error("Delete: transaction failed", err)
		}
		return err
	}

	_ = r.cache.Delete(ctx, employeeCacheKey(id))

	return nil
}
