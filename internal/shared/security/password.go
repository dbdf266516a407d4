package security

import (
	"golang.org/x/crypto/bcrypt"
)

// bcrypt cost 12: intentionally slow, callers must not hold locks across these.
const bcryptCost = 12

// HashPassword hashes a plaintext password for storage. The hash is opaque to
// callers; only VerifyPassword can interpret it.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether the plaintext matches the stored hash.
// Constant-time comparison.
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
