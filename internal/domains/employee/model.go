package employee

import (
	"time"

	"github.com/google/uuid"
)

// Employee is an internal staff account. Authored content is always recorded
// against an employee id; public members author nothing in this subsystem.
type Employee struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Username       *string   `json:"username" db:"username"`
	Email          string    `json:"email" db:"email"`
	PasswordHash   string    `json:"-" db:"password_hash"`
	DisplayName    *string   `json:"display_name" db:"display_name"`
	AdminAccess    bool      `json:"admin_access" db:"admin_access"`
	Position       *string   `json:"position" db:"position"`
	BioDescription *string   `json:"bio_description" db:"bio_description"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// EmployeeDTO is the outward-facing shape, never carrying the password hash.
type EmployeeDTO struct {
	ID             uuid.UUID `json:"id"`
	Username       *string   `json:"username,omitempty"`
	Email          string    `json:"email"`
	DisplayName    *string   `json:"display_name,omitempty"`
	AdminAccess    bool      `json:"admin_access"`
	Position       *string   `json:"position,omitempty"`
	BioDescription *string   `json:"bio_description,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func (e *Employee) ToDTO() EmployeeDTO {
	return EmployeeDTO{
		ID:             e.ID,
		Username:       e.Username,
		Email:          e.Email,
		DisplayName:    e.DisplayName,
		AdminAccess:    e.AdminAccess,
		Position:       e.Position,
		BioDescription: e.BioDescription,
		CreatedAt:      e.CreatedAt,
	}
}
