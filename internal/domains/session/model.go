package session

import (
	"time"

	"github.com/google/uuid"
)

// Session is the server-side record of an issued staff token. Only the
// one-way digest of the token is stored; the raw value exists solely in the
// client's cookie. Deleting the row is the revocation path, independent of
// the token's signature remaining valid until natural expiry.
type Session struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	UserID        uuid.UUID  `json:"user_id" db:"user_id"`
	TokenHash     string     `json:"-" db:"token_hash"`
	UserAgent     *string    `json:"user_agent" db:"user_agent"`
	OriginAddress *string    `json:"origin_address" db:"origin_address"`
	ExpiresAt     *time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}

// Active reports whether the session is still usable at the given instant.
// A null expiry never expires.
func (s *Session) Active(now time.Time) bool {
	return s.ExpiresAt == nil || s.ExpiresAt.After(now)
}
