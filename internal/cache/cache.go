// Package cache defines the caching contract used by the listing services.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a key is absent or expired.
var ErrNotFound = errors.New("cache: key not found")

// Cache stores serialized values under string keys with a TTL.
type Cache interface {
	// Set stores value under key for the given TTL. A zero TTL means no
	// expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get retrieves the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any underlying resources.
	Close() error
}
