package employee

import (
	"context"

	"github.com/google/uuid"
)

// Service is the business logic contract for the employee domain.
// Authorization is enforced by the caller through the policy package before
// admin operations are invoked.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*EmployeeDTO, error)
	Login(ctx context.Context, req LoginRequest, meta SessionMeta) (*LoginResult, error)
	Logout(ctx context.Context, rawToken string) error
	GetProfile(ctx context.Context, id uuid.UUID) (*EmployeeDTO, error)
	UpdateSelf(ctx context.Context, id uuid.UUID, req UpdateSelfRequest) (*EmployeeDTO, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*EmployeeDTO, error)
	ListUsers(ctx context.Context, req ListUsersRequest) (*ListUsersResponse, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}
