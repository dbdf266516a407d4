package jwt_test

import (
	"testing"

	"foundation-backend/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerify(t *testing.T) {
	m := jwt.NewManager("secret")

	claims := jwt.Claims{
		Email:       "a@b.org",
		AdminAccess: true,
		Surface:     jwt.SurfaceStaff,
	}
	claims.Subject = uuid.NewString()

	token, err := m.Generate(claims)
	require.NoError(t, err)

	out, err := m.Verify(token, jwt.SurfaceStaff)
	require.NoError(t, err)

	assert.Equal(t, claims.Subject, out.Subject)
	assert.Equal(t, "a@b.org", out.Email)
	assert.True(t, out.AdminAccess)
	require.NotNil(t, out.ExpiresAt)
	assert.WithinDuration(t, out.IssuedAt.Add(jwt.SessionTTL), out.ExpiresAt.Time, 0)
}

func TestGenerate_RequiresSurfaceAndSubject(t *testing.T) {
	m := jwt.NewManager("secret")

	_, err := m.Generate(jwt.Claims{Surface: jwt.SurfaceStaff})
	assert.Error(t, err)

	claims := jwt.Claims{}
	claims.Subject = uuid.NewString()
	_, err = m.Generate(claims)
	assert.Error(t, err)
}

func TestVerify_SurfaceMismatch(t *testing.T) {
	m := jwt.NewManager("secret")

	claims := jwt.Claims{Surface: jwt.SurfaceMember}
	claims.Subject = uuid.NewString()

	token, err := m.Generate(claims)
	require.NoError(t, err)

	_, err = m.Verify(token, jwt.SurfaceStaff)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	claims := jwt.Claims{Surface: jwt.SurfaceStaff}
	claims.Subject = uuid.NewString()

	token, err := jwt.NewManager("secret-one").Generate(claims)
	require.NoError(t, err)

	_, err = jwt.NewManager("secret-two").Verify(token, jwt.SurfaceStaff)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	m := jwt.NewManager("secret")

	_, err := m.Verify("definitely.not.ajwt", jwt.SurfaceStaff)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}
