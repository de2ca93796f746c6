package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ROADMAP_STATE_DIR", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "roadmap-hub", cfg.App.Name)
	assert.Equal(t, EnvDevelopment, cfg.App.Environment)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.App.Debug, "debug is opt-in via APP_DEBUG")
	assert.Equal(t, "http://localhost:5000/api", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.RequestTimeout)
	assert.Equal(t, "info", cfg.Observability.LogLevel)
	assert.Equal(t, "text", cfg.Observability.LogFormat)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("ROADMAP_API_URL", "https://api.example.com/api")
	t.Setenv("ROADMAP_API_TIMEOUT", "5s")
	t.Setenv("ROADMAP_STATE_DIR", t.TempDir())
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.App.Debug)
	assert.Equal(t, "https://api.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.RequestTimeout)
	assert.Equal(t, "warn", cfg.Observability.LogLevel)
}

func TestLoad_DebugOptIn(t *testing.T) {
	t.Setenv("ROADMAP_STATE_DIR", t.TempDir())
	t.Setenv("APP_DEBUG", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.App.Debug)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	t.Setenv("ROADMAP_STATE_DIR", t.TempDir())
	t.Setenv("LOG_LEVEL", "verbose")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("ROADMAP_STATE_DIR", t.TempDir())
	t.Setenv("ROADMAP_API_TIMEOUT", "not-a-duration")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.API.RequestTimeout)
}
