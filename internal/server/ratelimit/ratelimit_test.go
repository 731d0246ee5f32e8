package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.CleanupInterval = time.Hour
	return cfg
}

func TestAllowExhaustsBurst(t *testing.T) {
	cfg := testConfig()
	cfg.AuthBurst = 3
	l := New(cfg)

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow(TierAuth, "10.0.0.1"), "request %d should pass", i)
	}
	assert.False(t, l.Allow(TierAuth, "10.0.0.1"))
}

func TestAllowIsolatesClients(t *testing.T) {
	cfg := testConfig()
	cfg.AuthBurst = 1
	l := New(cfg)

	assert.True(t, l.Allow(TierAuth, "10.0.0.1"))
	assert.False(t, l.Allow(TierAuth, "10.0.0.1"))

	// A different client still has its own budget.
	assert.True(t, l.Allow(TierAuth, "10.0.0.2"))
}

func TestAllowIsolatesTiers(t *testing.T) {
	cfg := testConfig()
	cfg.AuthBurst = 1
	l := New(cfg)

	assert.True(t, l.Allow(TierAuth, "10.0.0.1"))
	assert.False(t, l.Allow(TierAuth, "10.0.0.1"))

	// Exhausting auth does not block browsing.
	assert.True(t, l.Allow(TierPublic, "10.0.0.1"))
}

func TestAllowDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	cfg.AuthBurst = 1
	l := New(cfg)

	for i := 0; i < 50; i++ {
		assert.True(t, l.Allow(TierAuth, "10.0.0.1"))
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/jobs", nil)
	r.RemoteAddr = "192.168.1.5:54321"
	assert.Equal(t, "192.168.1.5", ClientIP(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", ClientIP(r))
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("RATE_LIMIT_AUTH_BURST", "42")
	t.Setenv("RATE_LIMIT_WRITE_PER_MINUTE", "not-a-number")

	cfg := ConfigFromEnv()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, 42, cfg.AuthBurst)
	assert.Equal(t, DefaultConfig().WritePerMinute, cfg.WritePerMinute)
}
