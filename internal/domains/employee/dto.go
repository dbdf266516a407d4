package employee

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ========================================
// AUTH DTOs
// ========================================

type RegisterRequest struct {
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	Username    *string `json:"username,omitempty"`
	DisplayName *string `json:"display_name,omitempty"`
	Position    *string `json:"position,omitempty"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be 8-128 characters"),
		),
		validation.Field(&r.Username,
			validation.Length(3, 64).Error("username must be 3-64 characters"),
		),
	)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
		),
	)
}

// SessionMeta carries the audit fields recorded alongside a new session.
type SessionMeta struct {
	UserAgent     string
	OriginAddress string
}

// LoginResult holds the signed token and its expiry. The token travels to the
// client only as an http-only cookie; it is never echoed in a response body.
type LoginResult struct {
	Token     string      `json:"-"`
	ExpiresAt time.Time   `json:"expires_at"`
	Employee  EmployeeDTO `json:"employee"`
}

// ========================================
// PROFILE / ADMIN DTOs
// ========================================

// UpdateSelfRequest covers fields an employee may change on their own record.
type UpdateSelfRequest struct {
	Username       *string `json:"username,omitempty"`
	DisplayName    *string `json:"display_name,omitempty"`
	Position       *string `json:"position,omitempty"`
	BioDescription *string `json:"bio_description,omitempty"`
}

func (r UpdateSelfRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Length(3, 64).Error("username must be 3-64 characters"),
		),
	)
}

// UpdateUserRequest is the admin variant; it can additionally flip the admin
// flag and change the email.
type UpdateUserRequest struct {
	Email          *string `json:"email,omitempty"`
	Username       *string `json:"username,omitempty"`
	DisplayName    *string `json:"display_name,omitempty"`
	AdminAccess    *bool   `json:"admin_access,omitempty"`
	Position       *string `json:"position,omitempty"`
	BioDescription *string `json:"bio_description,omitempty"`
}

func (r UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			is.Email.Error("invalid email format"),
		),
		validation.Field(&r.Username,
			validation.Length(3, 64).Error("username must be 3-64 characters"),
		),
	)
}

type ListUsersRequest struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

func (r *ListUsersRequest) SetDefaults() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 20
	}
}

type ListUsersResponse struct {
	Employees []EmployeeDTO `json:"employees"`
	Total     int64         `json:"total"`
}
