package session

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/nattapong/sarakham-jobs/internal/db"
	"github.com/nattapong/sarakham-jobs/internal/types"
)

// State is the manager's lifecycle phase.
type State string

const (
	// StateInitializing is the phase before Initialize resolves the stored
	// session.
	StateInitializing  State = "initializing"
	StateAnonymous     State = "anonymous"
	StateAuthenticated State = "authenticated"
	// StateSimulated is a local demo identity with no server session.
	StateSimulated State = "simulated"
)

// API is the slice of the HTTP client the manager uses.
type API interface {
	Login(ctx context.Context, email, password string) (*types.LoginResponse, error)
	Register(ctx context.Context, req *types.RegisterRequest) (*types.LoginResponse, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*db.Profile, error)
	UpdateMe(ctx context.Context, req *types.UpdateProfileRequest) (*db.Profile, error)
	SetToken(token string)
}

// Snapshot is the manager's observable state at one instant.
type Snapshot struct {
	State   State
	Profile *db.Profile
}

// Manager owns the CLI session. A simulated identity always wins over a
// stored token; signing in for real discards the simulation.
type Manager struct {
	api    API
	store  Store
	logger *zap.Logger

	mu      sync.Mutex
	state   State
	profile *db.Profile
	token   string

	subs []chan Snapshot
}

// NewManager creates a manager in the initializing state.
func NewManager(api API, store Store, logger *zap.Logger) *Manager {
	return &Manager{
		api:    api,
		store:  store,
		logger: logger,
		state:  StateInitializing,
	}
}

// Initialize resolves the persisted state. A simulated identity takes
// precedence over a token; a token that no longer verifies against the
// server drops to anonymous rather than trusting stale local data.
func (m *Manager) Initialize(ctx context.Context) error {
	persisted, err := m.store.Load()
	if err != nil {
		m.logger.Warn("failed to load session, starting anonymous", zap.Error(err))
		m.setState(StateAnonymous, nil, "")
		return nil
	}

	if persisted.Simulated != nil {
		m.setState(StateSimulated, persisted.Simulated, "")
		return nil
	}

	if persisted.Token == "" {
		m.setState(StateAnonymous, nil, "")
		return nil
	}

	m.api.SetToken(persisted.Token)
	profile, err := m.api.Me(ctx)
	if err != nil {
		// Fail closed: a token the server will not honor is no session.
		m.logger.Warn("stored token rejected, starting anonymous", zap.Error(err))
		m.api.SetToken("")
		if err := m.store.Clear(); err != nil {
			m.logger.Warn("failed to clear stale session", zap.Error(err))
		}
		m.setState(StateAnonymous, nil, "")
		return nil
	}

	m.setState(StateAuthenticated, profile, persisted.Token)
	return nil
}

// Login signs in with real credentials. Any simulated identity is discarded
// before the attempt, so a failed sign-in leaves the session anonymous, not
// simulated.
func (m *Manager) Login(ctx context.Context, email, password string) (*db.Profile, error) {
	m.discardSimulation()

	resp, err := m.api.Login(ctx, email, password)
	if err != nil {
		m.setState(StateAnonymous, nil, "")
		return nil, err
	}
	return m.adopt(resp)
}

// Register creates an account and signs in.
func (m *Manager) Register(ctx context.Context, req *types.RegisterRequest) (*db.Profile, error) {
	m.discardSimulation()

	resp, err := m.api.Register(ctx, req)
	if err != nil {
		m.setState(StateAnonymous, nil, "")
		return nil, err
	}
	return m.adopt(resp)
}

func (m *Manager) adopt(resp *types.LoginResponse) (*db.Profile, error) {
	m.api.SetToken(resp.Token)
	if err := m.store.Save(&PersistedState{Token: resp.Token}); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	m.setState(StateAuthenticated, resp.Profile, resp.Token)
	return resp.Profile, nil
}

// LoginSimulated adopts a local demo identity without contacting the server.
func (m *Manager) LoginSimulated(profile *db.Profile) error {
	if err := m.store.Save(&PersistedState{Simulated: profile}); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	m.api.SetToken("")
	m.setState(StateSimulated, profile, "")
	return nil
}

// Logout ends the session. The local state is cleared even when the server
// call fails; logging out locally must always succeed.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	state := m.state
	m.mu.Unlock()

	var remoteErr error
	if state == StateAuthenticated {
		if err := m.api.Logout(ctx); err != nil {
			m.logger.Warn("remote logout failed", zap.Error(err))
			remoteErr = err
		}
	}

	m.api.SetToken("")
	if err := m.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	m.setState(StateAnonymous, nil, "")
	return remoteErr
}

// UpdateProfile pushes a profile edit and keeps the local copy only when the
// server accepted it. It reports whether the update was applied.
func (m *Manager) UpdateProfile(ctx context.Context, req *types.UpdateProfileRequest) (bool, error) {
	m.mu.Lock()
	state := m.state
	m.mu.Unlock()

	if state != StateAuthenticated {
		return false, fmt.Errorf("not signed in")
	}

	profile, err := m.api.UpdateMe(ctx, req)
	if err != nil {
		return false, err
	}

	m.mu.Lock()
	m.profile = profile
	m.mu.Unlock()
	m.publish()
	return true, nil
}

// Current returns the manager's state and profile.
func (m *Manager) Current() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{State: m.state, Profile: m.profile}
}

// Subscribe delivers a snapshot on every state change. The returned cancel
// func must be called when the observer is done.
func (m *Manager) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 8)

	m.mu.Lock()
	m.subs = append(m.subs, ch)
	m.mu.Unlock()

	cancel := func() {
		m.mu.Lock()
		for i, sub := range m.subs {
			if sub == ch {
				m.subs = append(m.subs[:i], m.subs[i+1:]...)
				break
			}
		}
		m.mu.Unlock()
	}
	return ch, cancel
}

func (m *Manager) discardSimulation() {
	m.mu.Lock()
	simulated := m.state == StateSimulated
	m.mu.Unlock()

	if simulated {
		if err := m.store.Clear(); err != nil {
			m.logger.Warn("failed to clear simulated session", zap.Error(err))
		}
	}
}

func (m *Manager) setState(state State, profile *db.Profile, token string) {
	m.mu.Lock()
	m.state = state
	m.profile = profile
	m.token = token
	m.mu.Unlock()
	m.publish()
}

func (m *Manager) publish() {
	snap := m.Current()
	m.mu.Lock()
	subs := make([]chan Snapshot, len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- snap:
		default:
		}
	}
}
