package member

import (
	"time"

	"github.com/google/uuid"
)

// Member is a self-registered public account. Once Deleted is set the
// identity is inert for authentication even though the row persists.
type Member struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	DisplayName  *string   `json:"display_name" db:"display_name"`
	Bio          *string   `json:"bio" db:"bio"`
	AvatarURL    *string   `json:"avatar_url" db:"avatar_url"`
	Deleted      bool      `json:"-" db:"deleted"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

type MemberDTO struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	DisplayName *string   `json:"display_name,omitempty"`
	Bio         *string   `json:"bio,omitempty"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (m *Member) ToDTO() MemberDTO {
	return MemberDTO{
		ID:          m.ID,
		Username:    m.Username,
		Email:       m.Email,
		DisplayName: m.DisplayName,
		Bio:         m.Bio,
		AvatarURL:   m.AvatarURL,
		CreatedAt:   m.CreatedAt,
	}
}
