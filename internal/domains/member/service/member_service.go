package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"foundation-backend/internal/domains/member"
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

type memberService struct {
	repo   member.Repository
	tokens *jwt.Manager
	cache  cache.Cache
}

func NewMemberService(repo member.Repository, tokens *jwt.Manager, cache cache.Cache) member.Service {
	return &memberService{
		repo:   repo,
		tokens: tokens,
		cache:  cache,
	}
}

func attemptKey(username string) string {
	return fmt.Sprintf("login_attempts:member:%s", strings.ToLower(username))
}

func (s *memberService) Register(ctx context.Context, req member.RegisterRequest) (*member.MemberDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		logger.Error("Register: failed to hash password", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	m := &member.Member{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		m, err = s.repo.UpsertProfile(ctx, m.ID, member.UpdateProfileRequest{
			DisplayName: req.DisplayName,
		})
		if err != nil {
			return nil, err
		}
	}

	logger.Info("member registered", map[string]interface{}{
		"member_id": m.ID.String(),
	})

	dto := m.ToDTO()
	return &dto, nil
}

// Login issues a member-surface token. Member tokens are not recorded in the
// session registry; soft deletion is the revocation mechanism on this surface.
func (s *memberService) Login(ctx context.Context, req member.LoginRequest) (*member.LoginResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	key := attemptKey(req.Username)

	var attempts int64
	if found, err := s.cache.Get(ctx, key, &attempts); err == nil && found && attempts >= maxLoginAttempts {
		return nil, member.ErrTooManyAttempts
	}

	m, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, member.ErrMemberNotFound) {
			s.recordFailedAttempt(ctx, key)
			return nil, member.ErrInvalidCredentials
		}
		return nil, err
	}

	if !security.VerifyPassword(m.PasswordHash, req.Password) {
		s.recordFailedAttempt(ctx, key)
		return nil, member.ErrInvalidCredentials
	}

	claims := jwt.Claims{
		Username: m.Username,
		Email:    m.Email,
		Surface:  jwt.SurfaceMember,
	}
	if m.DisplayName != nil {
		claims.DisplayName = *m.DisplayName
	}
	claims.Subject = m.ID.String()

	token, err := s.tokens.Generate(claims)
	if err != nil {
		logger.Error("Login: failed to sign token", err)
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	_ = s.cache.Delete(ctx, key)

	logger.Info("member logged in", map[string]interface{}{
		"member_id": m.ID.String(),
	})

	return &member.LoginResult{
		Token:     token,
		ExpiresAt: time.Now().Add(jwt.SessionTTL),
		Member:    m.ToDTO(),
	}, nil
}

func (s *memberService) recordFailedAttempt(ctx context.Context, key string) {
	count, err := s.cache.Increment(ctx, key)
	if err != nil {
		return
	}
	if count == 1 {
		_ = s.cache.Expire(ctx, key, attemptWindow)
	}
}

func (s *memberService) GetProfile(ctx context.Context, id uuid.UUID) (*member.MemberDTO, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.Deleted {
		return nil, member.ErrMemberDeleted
	}

	dto := m.ToDTO()
	return &dto, nil
}

func (s *memberService) UpdateProfile(ctx context.Context, id uuid.UUID, req member.UpdateProfileRequest) (*member.MemberDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.Deleted {
		return nil, member.ErrMemberDeleted
	}

	m, err = s.repo.UpsertProfile(ctx, id, req)
	if err != nil {
		return nil, err
	}

	dto := m.ToDTO()
	return &dto, nil
}

// Delete soft-deletes: the row persists but every future token resolution
// for this member fails.
func (s *memberService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}

	logger.Info("member deleted", map[string]interface{}{
		"member_id": id.String(),
	})

	return nil
}
