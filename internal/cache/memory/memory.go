// Package memory provides an in-process cache used when Redis is not
// configured and in tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/nattapong/sarakham-jobs/internal/cache"
)

type entry struct {
	value     []byte
	expiresAt time.Time // zero means no expiry
}

// Cache is a map-backed cache.Cache with lazy expiry.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// New creates an empty in-memory cache.
func New() *Cache {
	return &Cache{entries: make(map[string]entry)}
}

func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	e := entry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}

	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
	return nil
}

func (c *Cache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, cache.ErrNotFound
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, cache.ErrNotFound
	}
	return append([]byte(nil), e.value...), nil
}

func (c *Cache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

func (c *Cache) Close() error {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
	return nil
}
