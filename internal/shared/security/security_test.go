package security_test

import (
	"testing"

	"foundation-backend/internal/shared/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := security.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.NotEqual(t, "correct horse battery staple", hash)
	assert.True(t, security.VerifyPassword(hash, "correct horse battery staple"))
	assert.False(t, security.VerifyPassword(hash, "wrong password"))
	assert.False(t, security.VerifyPassword("not-a-bcrypt-hash", "anything"))
}

func TestHashToken(t *testing.T) {
	a := security.HashToken("token-a")
	b := security.HashToken("token-b")

	assert.Len(t, a, 64, "hex-encoded sha256")
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, security.HashToken("token-a"), "deterministic")
	assert.NotEqual(t, "token-a", a)
}
