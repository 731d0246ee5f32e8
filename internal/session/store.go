// Package session manages the CLI's sign-in state: a persisted token, an
// optional simulated identity for demos, and the lifecycle between them.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nattapong/sarakham-jobs/internal/db"
)

// PersistedState is what survives between CLI invocations.
type PersistedState struct {
	Token string `json:"token,omitempty"`
	// Simulated is a demo identity that overrides the token entirely. It
	// never touches the server.
	Simulated *db.Profile `json:"simulated,omitempty"`
}

// Store persists session state.
type Store interface {
	Load() (*PersistedState, error)
	Save(state *PersistedState) error
	Clear() error
}

// FileStore keeps the state in a JSON file readable only by the owner.
type FileStore struct {
	path string
}

// NewFileStore creates a file store at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the state. A missing file is an empty state, not an error.
func (s *FileStore) Load() (*PersistedState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &PersistedState{}, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var state PersistedState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}
	return &state, nil
}

// Save writes the state with owner-only permissions.
func (s *FileStore) Save(state *PersistedState) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Clear removes the session file. A missing file is fine.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// MemStore is an in-memory Store for tests.
type MemStore struct {
	state *PersistedState
}

// NewMemStore creates an empty memory store.
func NewMemStore() *MemStore {
	return &MemStore{state: &PersistedState{}}
}

func (s *MemStore) Load() (*PersistedState, error) {
	cp := *s.state
	return &cp, nil
}

func (s *MemStore) Save(state *PersistedState) error {
	cp := *state
	s.state = &cp
	return nil
}

func (s *MemStore) Clear() error {
	s.state = &PersistedState{}
	return nil
}
