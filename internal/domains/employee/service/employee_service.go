package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"foundation-backend/internal/domains/employee"
	"foundation-backend/internal/domains/session"
	"foundation-backend/internal/shared/security"
	"foundation-backend/pkg/cache"
	"foundation-backend/pkg/jwt"
	"foundation-backend/pkg/logger"

	"github.com/google/uuid"
)

const (
	maxLoginAttempts = 5
	attemptWindow    = 15 * time.Minute
)

type employeeService struct {
	repo     employee.Repository
	sessions session.Repository
	tokens   *jwt.Manager
	cache    cache.Cache
}

func NewEmployeeService(
	repo employee.Repository,
	sessions session.Repository,
	tokens *jwt.Manager,
	cache cache.Cache,
) employee.Service {
	return &employeeService{
		repo:     repo,
		sessions: sessions,
		tokens:   tokens,
		cache:    cache,
	}
}

func attemptKey(email string) string {
	return fmt.Sprintf("login_attempts:staff:%s", strings.ToLower(email))
}

func (s *employeeService) Register(ctx context.Context, req employee.RegisterRequest) (*employee.EmployeeDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, employee.ErrEmailAlreadyExists
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		logger.Error("Register: failed to hash password", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	e := &employee.Employee{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		DisplayName:  req.DisplayName,
		AdminAccess:  false,
		Position:     req.Position,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	logger.Info("employee registered", map[string]interface{}{
		"employee_id": e.ID.String(),
	})

	dto := e.ToDTO()
	return &dto, nil
}

// Login authenticates against the stored hash, signs a token and records it
// in the session registry. The registry write is load-bearing: if it fails,
// the login fails and the token is discarded, because a token the registry
// does not know about could never be revoked.
func (s *employeeService) Login(ctx context.Context, req employee.LoginRequest, meta employee.SessionMeta) (*employee.LoginResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	key := attemptKey(req.Email)

	var attempts int64
	if found, err := s.cache.Get(ctx, key, &attempts); err == nil && found && attempts >= maxLoginAttempts {
		return nil, employee.ErrTooManyAttempts
	}

	e, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			s.recordFailedAttempt(ctx, key)
			return nil, employee.ErrInvalidCredentials
		}
		return nil, err
	}

	if !security.VerifyPassword(e.PasswordHash, req.Password) {
		s.recordFailedAttempt(ctx, key)
		return nil, employee.ErrInvalidCredentials
	}

	claims := jwt.Claims{
		Email:       e.Email,
		AdminAccess: e.AdminAccess,
		Surface:     jwt.SurfaceStaff,
	}
	if e.Username != nil {
		claims.Username = *e.Username
	}
	if e.DisplayName != nil {
		claims.DisplayName = *e.DisplayName
	}
	claims.Subject = e.ID.String()

	token, err := s.tokens.Generate(claims)
	if err != nil {
		logger.Error("Login: failed to sign token", err)
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	expiresAt := time.Now().Add(jwt.SessionTTL)
	sess := &session.Session{
		ID:        uuid.New(),
		UserID:    e.ID,
		TokenHash: security.HashToken(token),
		ExpiresAt: &expiresAt,
		CreatedAt: time.Now(),
	}
	if meta.UserAgent != "" {
		sess.UserAgent = &meta.UserAgent
	}
	if meta.OriginAddress != "" {
		sess.OriginAddress = &meta.OriginAddress
	}

	if err := s.sessions.Create(ctx, sess); err != nil {
		logger.Error("Login: session registry write failed", err)
		return nil, employee.ErrSessionWriteFailed
	}

	_ = s.cache.Delete(ctx, key)

	logger.Info("employee logged in", map[string]interface{}{
		"employee_id": e.ID.String(),
	})

	return &employee.LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		Employee:  e.ToDTO(),
	}, nil
}

func (s *employeeService) recordFailedAttempt(ctx context.Context, key string) {
	count, err := s.cache.Increment(ctx, key)
	if err != nil {
		// Throttling is best effort; a cache outage must not block logins.
		return
	}
	if count == 1 {
		_ = s.cache.Expire(ctx, key, attemptWindow)
	}
}

// Logout revokes by deleting the registry row. Revoking an already-revoked
// or unknown token is a no-op, not an error.
func (s *employeeService) Logout(ctx context.Context, rawToken string) error {
	return s.sessions.RevokeByHash(ctx, security.HashToken(rawToken))
}

func (s *employeeService) GetProfile(ctx context.Context, id uuid.UUID) (*employee.EmployeeDTO, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := e.ToDTO()
	return &dto, nil
}

func (s *employeeService) UpdateSelf(ctx context.Context, id uuid.UUID, req employee.UpdateSelfRequest) (*employee.EmployeeDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		e.Username = req.Username
	}
	if req.DisplayName != nil {
		e.DisplayName = req.DisplayName
	}
	if req.Position != nil {
		e.Position = req.Position
	}
	if req.BioDescription != nil {
		e.BioDescription = req.BioDescription
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}

	dto := e.ToDTO()
	return &dto, nil
}

func (s *employeeService) UpdateUser(ctx context.Context, id uuid.UUID, req employee.UpdateUserRequest) (*employee.EmployeeDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		e.Email = *req.Email
	}
	if req.Username != nil {
		e.Username = req.Username
	}
	if req.DisplayName != nil {
		e.DisplayName = req.DisplayName
	}
	if req.AdminAccess != nil {
		e.AdminAccess = *req.AdminAccess
	}
	if req.Position != nil {
		e.Position = req.Position
	}
	if req.BioDescription != nil {
		e.BioDescription = req.BioDescription
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}

	logger.Info("employee updated by admin", map[string]interface{}{
		"employee_id": e.ID.String(),
	})

	dto := e.ToDTO()
	return &dto, nil
}

func (s *employeeService) ListUsers(ctx context.Context, req employee.ListUsersRequest) (*employee.ListUsersResponse, error) {
	req.SetDefaults()

	offset := (req.Page - 1) * req.Limit
	employees, total, err := s.repo.List(ctx, req.Limit, offset)
	if err != nil {
		return nil, err
	}

	dtos := make([]employee.EmployeeDTO, 0, len(employees))
	for i := range employees {
		dtos = append(dtos, employees[i].ToDTO())
	}

	return &employee.ListUsersResponse{
		Employees: dtos,
		Total:     total,
	}, nil
}

func (s *employeeService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("employee deleted", map[string]interface{}{
		"employee_id": id.String(),
	})

	return nil
}
