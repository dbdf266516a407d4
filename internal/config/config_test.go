package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The pool tuning knobs are read by LoadDatabaseConfig alone; Load carries no
// second copy of them to drift out of sync.
func TestLoadDatabaseConfig_PoolTuning(t *testing.T) {
	t.Setenv("DB_MAX_CONNECTIONS", "42")
	t.Setenv("DB_MIN_CONNECTIONS", "7")

	db, err := LoadDatabaseConfig()
	require.NoError(t, err)
	assert.Equal(t, int32(42), db.MaxConns)
	assert.Equal(t, int32(7), db.MinConns)
}

func TestLoadDatabaseConfig_RejectsMalformedValues(t *testing.T) {
	t.Setenv("DB_MAX_CONNECTIONS", "lots")

	_, err := LoadDatabaseConfig()
	assert.Error(t, err)
}

func TestLoad_ProductionValidation(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "a-real-secret")
	t.Setenv("DB_PASSWORD", "")

	_, err := Load()
	require.Error(t, err, "production must not run without a database password")

	t.Setenv("DB_PASSWORD", "s3cret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.True(t, cfg.Cookies.Secure)
}

func TestLoad_RejectsDefaultJWTSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_PASSWORD", "s3cret")

	_, err := Load()
	assert.Error(t, err)
}
