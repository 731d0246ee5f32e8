package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTConfigRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg, err := NewJWTConfig()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestNewJWTConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "a-test-secret")
	t.Setenv("JWT_ISSUER", "")
	t.Setenv("JWT_EXPIRATION_HOURS", "")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, "sarakham-jobs", cfg.Issuer)
	assert.Equal(t, 24, cfg.ExpirationHours)
}

func TestNewJWTConfigRejectsBadExpiration(t *testing.T) {
	t.Setenv("JWT_SECRET", "a-test-secret")

	t.Setenv("JWT_EXPIRATION_HOURS", "zero")
	_, err := NewJWTConfig()
	assert.Error(t, err)

	t.Setenv("JWT_EXPIRATION_HOURS", "0")
	_, err = NewJWTConfig()
	assert.Error(t, err)
}
