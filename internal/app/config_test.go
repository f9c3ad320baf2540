package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, ":8080", cfg.AppAddr)
	assert.Equal(t, "https://jsonplaceholder.typicode.com/users", cfg.SeedURL)
	assert.Equal(t, 10*time.Second, cfg.SeedTimeout)
	assert.Equal(t, 3, cfg.SeedMaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.SeedBackoffBase)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_ADDR", ":9000")
	t.Setenv("SEED_URL", "http://127.0.0.1:9999/users")
	t.Setenv("SEED_MAX_ATTEMPTS", "5")
	t.Setenv("SEED_BACKOFF_BASE", "500ms")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, ":9000", cfg.AppAddr)
	assert.Equal(t, "http://127.0.0.1:9999/users", cfg.SeedURL)
	assert.Equal(t, 5, cfg.SeedMaxAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.SeedBackoffBase)
}

func TestLoadConfigRejectsInvalidSeedSettings(t *testing.T) {
	t.Setenv("SEED_MAX_ATTEMPTS", "0")
	_, err := LoadConfig()
	require.Error(t, err)
}
