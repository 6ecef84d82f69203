package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv убирает переменные окружения на время теста.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "HTTP_PORT", "DATABASE_URL", "STORAGE_DRIVER", "JWT_SECRET", "JWT_ACCESS_TTL",
		"ALLOWED_ORIGINS", "BID_VISIBILITY", "EVENTS_CHANNEL", "RATE_LIMIT_LIMIT",
		"POSTGRESQL_HOST", "POSTGRESQL_PORT", "POSTGRESQL_USER", "POSTGRESQL_PASSWORD", "POSTGRESQL_DBNAME", "POSTGRESQL_SSLMODE",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestParse_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, StorageDriverPostgres, cfg.StorageDriver)
	assert.Equal(t, BidVisibilityPublic, cfg.BidVisibility)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, "bidding:events", cfg.Redis.Channel)
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
	assert.Contains(t, cfg.DatabaseURL, "localhost:5432")
	assert.NotEmpty(t, cfg.AllowedOrigins)
}

func TestParse_AssemblesDatabaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("POSTGRESQL_HOST", "db")
	t.Setenv("POSTGRESQL_USER", "bidder")
	t.Setenv("POSTGRESQL_PASSWORD", "p@ss")
	t.Setenv("POSTGRESQL_DBNAME", "market")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "postgres://bidder:p%40ss@db:5432/market?sslmode=disable", cfg.DatabaseURL)
}

func TestParse_RejectsUnknownVisibility(t *testing.T) {
	clearEnv(t)
	t.Setenv("BID_VISIBILITY", "everyone")

	_, err := Parse()
	assert.Error(t, err)
}

func TestParse_RejectsUnknownStorageDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_DRIVER", "sqlite")

	_, err := Parse()
	assert.Error(t, err)
}

func TestParse_ProductionRequiresStrongSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "short")
	t.Setenv("ALLOWED_ORIGINS", "https://market.example")

	_, err := Parse()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://market.example"}, cfg.AllowedOrigins)
}
