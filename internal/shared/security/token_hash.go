package security

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashToken produces the irreversible digest under which a session token is
// recorded in the registry. The raw token is never stored at rest.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
