// Package ratelimit throttles clients per IP with token buckets. Auth
// endpoints get a strict tier so credential stuffing burns out quickly, while
// browsing stays generous.
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Tier selects which bucket parameters apply to an endpoint.
type Tier string

const (
	// TierAuth covers login, registration and password changes.
	TierAuth Tier = "auth"
	// TierWrite covers authenticated mutations.
	TierWrite Tier = "write"
	// TierPublic covers unauthenticated browsing.
	TierPublic Tier = "public"
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter tracks one token bucket per (tier, client IP) pair.
type Limiter struct {
	cfg Config

	mu      sync.Mutex
	clients map[string]*client
}

// New creates a limiter and starts its janitor.
func New(cfg Config) *Limiter {
	l := &Limiter{
		cfg:     cfg,
		clients: make(map[string]*client),
	}
	go l.janitor()
	return l
}

// Allow reports whether the request from ip may proceed on the given tier.
func (l *Limiter) Allow(tier Tier, ip string) bool {
	if !l.cfg.Enabled {
		return true
	}

	limit, burst := l.cfg.tierParams(tier)
	key := string(tier) + ":" + ip

	l.mu.Lock()
	c, ok := l.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(limit, burst)}
		l.clients[key] = c
	}
	c.lastSeen = time.Now()
	l.mu.Unlock()

	return c.limiter.Allow()
}

// janitor drops buckets idle for longer than the cleanup interval so the map
// does not grow with every visitor ever seen.
func (l *Limiter) janitor() {
	ticker := time.NewTicker(l.cfg.CleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-l.cfg.CleanupInterval)
		l.mu.Lock()
		for key, c := range l.clients {
			if c.lastSeen.Before(cutoff) {
				delete(l.clients, key)
			}
		}
		l.mu.Unlock()
	}
}

// ClientIP extracts the caller's address, trusting X-Forwarded-For when a
// proxy set it.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
