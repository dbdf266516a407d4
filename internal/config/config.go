package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the whole application configuration, populated from
// environment variables.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Cookies  CookieConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	CORSOrigin  string
}

// DatabaseConfig carries only what production validation needs. The pool
// itself is configured through LoadDatabaseConfig, which owns the DB_* pool
// tuning variables; duplicating them here invites the two copies drifting.
type DatabaseConfig struct {
	Password string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
}

// CookieConfig names the two session cookies. The staff cookie and the member
// cookie are independently scoped; handlers that serve both surfaces check the
// staff cookie first.
type CookieConfig struct {
	StaffName  string
	MemberName string
	Domain     string
	Secure     bool
}

// Load reads config from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Foundation API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			CORSOrigin:  getEnv("CORS_ORIGIN", "*"),
		},
		Database: DatabaseConfig{
			Password: getEnv("DB_PASSWORD", ""),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		},
		Cookies: CookieConfig{
			StaffName:  getEnv("COOKIE_STAFF_NAME", "staff_session"),
			MemberName: getEnv("COOKIE_MEMBER_NAME", "member_session"),
			Domain:     getEnv("COOKIE_DOMAIN", ""),
			Secure:     getEnv("APP_ENV", "development") == "production",
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate rejects configurations that must never reach production.
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.JWT.Secret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
