package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordConfig(t *testing.T) {
	tests := []struct {
		name     string
		cost     string
		wantCost int
		wantErr  bool
	}{
		{name: "default cost", cost: "", wantCost: 12},
		{name: "valid cost", cost: "10", wantCost: 10},
		{name: "cost too low", cost: "9", wantErr: true},
		{name: "cost too high", cost: "15", wantErr: true},
		{name: "not a number", cost: "high", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BCRYPT_COST", tt.cost)
			t.Setenv("PASSWORD_PEPPER", "")

			cfg, err := NewPasswordConfig()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCost, cfg.BcryptCost)
		})
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10}

	hash, err := cfg.HashPassword("secret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "secret-password", hash)

	assert.True(t, cfg.VerifyPassword("secret-password", hash))
	assert.False(t, cfg.VerifyPassword("wrong-password", hash))
}

func TestPepperChangesVerification(t *testing.T) {
	peppered := &PasswordConfig{BcryptCost: 10, Pepper: "extra"}
	plain := &PasswordConfig{BcryptCost: 10}

	hash, err := peppered.HashPassword("secret-password")
	require.NoError(t, err)

	assert.True(t, peppered.VerifyPassword("secret-password", hash))
	assert.False(t, plain.VerifyPassword("secret-password", hash), "hash without the pepper must not verify")
}
