package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 20, cfg.DiscoverLimit)
	assert.Equal(t, 15*time.Minute, cfg.ScoreCacheTTL)
	assert.Equal(t, 24*time.Hour, cfg.SwipeCleanupInterval)
	assert.Equal(t, 18, cfg.MinAge)
	assert.True(t, cfg.EnableScoreCache)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DISCOVER_LIMIT", "50")
	t.Setenv("SWIPE_CLEANUP_INTERVAL", "6h")
	t.Setenv("ENGINE_SEED", "42")
	t.Setenv("ENABLE_SCORE_CACHE", "false")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 50, cfg.DiscoverLimit)
	assert.Equal(t, 6*time.Hour, cfg.SwipeCleanupInterval)
	assert.Equal(t, int64(42), cfg.EngineSeed)
	assert.False(t, cfg.EnableScoreCache)
}

func TestLoadBadValuesFallBack(t *testing.T) {
	t.Setenv("DISCOVER_LIMIT", "lots")
	t.Setenv("SWIPE_CLEANUP_INTERVAL", "soon")

	cfg := Load()

	assert.Equal(t, 20, cfg.DiscoverLimit)
	assert.Equal(t, 24*time.Hour, cfg.SwipeCleanupInterval)
}

func TestValidate(t *testing.T) {
	valid := Load()
	require.NoError(t, valid.Validate())

	prod := Load()
	prod.Environment = "production"
	assert.Error(t, prod.Validate(), "default JWT secret must be rejected in production")

	noDB := Load()
	noDB.DatabaseURL = ""
	assert.Error(t, noDB.Validate())

	badAges := Load()
	badAges.MinAge = 50
	badAges.MaxAge = 30
	assert.Error(t, badAges.Validate())

	badLimit := Load()
	badLimit.DiscoverLimit = 0
	assert.Error(t, badLimit.Validate())

	badInterval := Load()
	badInterval.SwipeCleanupInterval = time.Second
	assert.Error(t, badInterval.Validate())
}
