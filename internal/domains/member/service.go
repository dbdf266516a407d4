package member

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*MemberDTO, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*MemberDTO, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*MemberDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
