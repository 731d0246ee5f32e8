package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/jobs")
	t.Setenv("PORT", "")
	t.Setenv("PUBLIC_BASE_URL", "")
	t.Setenv("UPLOAD_DIR", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "http://localhost:8080", cfg.PublicBaseURL)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Empty(t, cfg.RedisURL)
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/jobs")

	t.Setenv("PORT", "notaport")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("PORT", "70000")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoadClientDefaults(t *testing.T) {
	t.Setenv("JOBBOARD_API_URL", "")
	t.Setenv("JOBBOARD_STATE_FILE", "")

	cfg, err := LoadClient()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Contains(t, cfg.StatePath, ".jobboard")
}

func TestLoadClientOverrides(t *testing.T) {
	t.Setenv("JOBBOARD_API_URL", "https://jobs.example.com")
	t.Setenv("JOBBOARD_STATE_FILE", "/tmp/session.json")

	cfg, err := LoadClient()
	require.NoError(t, err)
	assert.Equal(t, "https://jobs.example.com", cfg.BaseURL)
	assert.Equal(t, "/tmp/session.json", cfg.StatePath)
}
