package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetdelivery/internal/core/application/usecases/commands"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"HTTP_PORT", "REDIS_ADDR", "ESTIMATE_CACHE_TTL", "RATE_LIMIT", "BODY_LIMIT", "MAX_PARCELS", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", config.HTTPPort)
	assert.Empty(t, config.RedisAddr)
	assert.Equal(t, 10*time.Minute, config.EstimateTTL)
	assert.InDelta(t, 20, config.RateLimit, 0)
	assert.Equal(t, "256K", config.BodyLimit)
	assert.Equal(t, commands.DefaultMaxParcels, config.MaxParcels)
	assert.Equal(t, slog.LevelInfo, config.SlogLevel())
}

func TestLoadConfig_FromFile(t *testing.T) {
	for _, key := range []string{"HTTP_PORT", "DB_NAME", "ESTIMATE_CACHE_TTL", "LOG_LEVEL", "RATE_BURST", "MAX_PARCELS"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(
		"HTTP_PORT=9090\nDB_NAME=fleet\nESTIMATE_CACHE_TTL=30s\nLOG_LEVEL=debug\nRATE_BURST=5\nMAX_PARCELS=12\n",
	), 0o600))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", config.HTTPPort)
	assert.Equal(t, 30*time.Second, config.EstimateTTL)
	assert.Equal(t, 5, config.RateBurst)
	assert.Equal(t, 12, config.MaxParcels)
	assert.Equal(t, slog.LevelDebug, config.SlogLevel())
	assert.Contains(t, config.DSN(), "dbname=fleet")
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	t.Setenv("ESTIMATE_CACHE_TTL", "soon")
	t.Setenv("RATE_LIMIT", "fast")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ESTIMATE_CACHE_TTL")
	assert.Contains(t, err.Error(), "RATE_LIMIT")
}
