package main

import (
	"go.uber.org/zap"

	"github.com/nattapong/sarakham-jobs/internal/client"
	"github.com/nattapong/sarakham-jobs/internal/config"
	"github.com/nattapong/sarakham-jobs/internal/session"
)

// newSession wires the HTTP client and the on-disk session manager used by
// the account commands. The manager is returned uninitialized; commands call
// Initialize themselves so that a dead server only matters when a token has
// to be verified.
func newSession() (*session.Manager, *client.Client, error) {
	cfg, err := config.LoadClient()
	if err != nil {
		return nil, nil, err
	}

	api := client.New(cfg.BaseURL)
	store := session.NewFileStore(cfg.StatePath)
	return session.NewManager(api, store, zap.NewNop()), api, nil
}
