// Package config provides configuration loading and validation for the job board.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds server configuration loaded from environment variables.
// DATABASE_URL is the only required setting; everything else has a default.
type Config struct {
	Port        int    // PORT, default 8080
	DatabaseURL string // DATABASE_URL, required

	// Redis settings for the listing cache. Leaving REDIS_URL empty
	// selects the in-process cache, which is fine for a single instance.
	RedisURL      string // REDIS_URL
	RedisPassword string // REDIS_PASSWORD
	RedisDB       int    // REDIS_DB, default 0

	// PublicBaseURL is the externally visible origin used to build
	// upload URLs, e.g. https://jobs.example.com
	PublicBaseURL string // PUBLIC_BASE_URL, default http://localhost:<port>
	UploadDir     string // UPLOAD_DIR, default ./uploads
}

// Load reads server configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisURL:      os.Getenv("REDIS_URL"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		PublicBaseURL: os.Getenv("PUBLIC_BASE_URL"),
		UploadDir:     os.Getenv("UPLOAD_DIR"),
	}

	port, err := intEnv("PORT", 8080)
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	redisDB, err := intEnv("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	cfg.RedisDB = redisDB

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// normalize validates the configuration and fills derived defaults.
func (c *Config) normalize() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required but not set")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if c.PublicBaseURL == "" {
		c.PublicBaseURL = fmt.Sprintf("http://localhost:%d", c.Port)
	}
	if c.UploadDir == "" {
		c.UploadDir = "uploads"
	}
	return nil
}

// ClientConfig holds configuration for the bundled CLI client.
type ClientConfig struct {
	BaseURL   string // JOBBOARD_API_URL, default http://localhost:8080
	StatePath string // JOBBOARD_STATE_FILE, default ~/.jobboard/session.json
}

// LoadClient reads CLI client configuration from the environment.
func LoadClient() (*ClientConfig, error) {
	cfg := &ClientConfig{
		BaseURL:   os.Getenv("JOBBOARD_API_URL"),
		StatePath: os.Getenv("JOBBOARD_STATE_FILE"),
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.StatePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		cfg.StatePath = filepath.Join(home, ".jobboard", "session.json")
	}

	return cfg, nil
}

func intEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	return v, nil
}
