package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL is the fixed lifetime of every issued token, staff and member alike.
const SessionTTL = 7 * 24 * time.Hour

// Surface identifies which cookie a token belongs to. A staff token is never
// accepted on the member surface and vice versa.
const (
	SurfaceStaff  = "staff"
	SurfaceMember = "member"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Claims carries the signed identity snapshot embedded in a session token.
// Subject (in RegisteredClaims) is the principal id.
type Claims struct {
	Username    string `json:"username,omitempty"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	AdminAccess bool   `json:"admin_access,omitempty"`
	Surface     string `json:"surface"`
	jwt.RegisteredClaims
}

// Manager handles JWT operations
type Manager struct {
	secret string
}

// NewManager creates new JWT manager
func NewManager(secret string) *Manager {
	return &Manager{secret: secret}
}

// Generate signs the given claims with a 7-day expiry. The caller must set
// Surface and RegisteredClaims.Subject; issue and expiry timestamps are
// stamped here.
func (m *Manager) Generate(claims Claims) (string, error) {
	if claims.Surface == "" || claims.Subject == "" {
		return "", fmt.Errorf("jwt: surface and subject are required")
	}

	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(SessionTTL))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secret))
}

// Verify checks signature and expiry and that the token was issued for the
// given surface. It does NOT consult the session registry; signature validity
// and registry membership are independent checks.
func (m *Manager) Verify(tokenString, surface string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if !token.Valid || claims.Surface != surface {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
