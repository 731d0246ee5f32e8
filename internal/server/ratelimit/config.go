package ratelimit

import (
	"os"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// Config holds the bucket parameters for each tier.
type Config struct {
	Enabled bool

	AuthPerMinute   int
	AuthBurst       int
	WritePerMinute  int
	WriteBurst      int
	PublicPerMinute int
	PublicBurst     int

	CleanupInterval time.Duration
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		Enabled:         true,
		AuthPerMinute:   10,
		AuthBurst:       5,
		WritePerMinute:  60,
		WriteBurst:      20,
		PublicPerMinute: 300,
		PublicBurst:     100,
		CleanupInterval: 10 * time.Minute,
	}
}

// ConfigFromEnv reads overrides from the environment on top of the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.Enabled = boolEnv("RATE_LIMIT_ENABLED", cfg.Enabled)
	cfg.AuthPerMinute = intEnv("RATE_LIMIT_AUTH_PER_MINUTE", cfg.AuthPerMinute)
	cfg.AuthBurst = intEnv("RATE_LIMIT_AUTH_BURST", cfg.AuthBurst)
	cfg.WritePerMinute = intEnv("RATE_LIMIT_WRITE_PER_MINUTE", cfg.WritePerMinute)
	cfg.WriteBurst = intEnv("RATE_LIMIT_WRITE_BURST", cfg.WriteBurst)
	cfg.PublicPerMinute = intEnv("RATE_LIMIT_PUBLIC_PER_MINUTE", cfg.PublicPerMinute)
	cfg.PublicBurst = intEnv("RATE_LIMIT_PUBLIC_BURST", cfg.PublicBurst)
	return cfg
}

func (c Config) tierParams(tier Tier) (rate.Limit, int) {
	perMinute, burst := c.PublicPerMinute, c.PublicBurst
	switch tier {
	case TierAuth:
		perMinute, burst = c.AuthPerMinute, c.AuthBurst
	case TierWrite:
		perMinute, burst = c.WritePerMinute, c.WriteBurst
	}
	return rate.Limit(float64(perMinute) / 60.0), burst
}

func boolEnv(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func intEnv(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
