package session

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"birdroyale/game"
)

var (
	ErrNotFound      = errors.New("session not found")
	ErrInvalidParams = errors.New("invalid session parameters")
)

// CreateParams overrides per-session settings; nil fields keep the defaults.
type CreateParams struct {
	Seed *uint64 `json:"seed,omitempty"`
	Bots *int    `json:"bots,omitempty"`
}

// Manager holds sessions by id. Sessions are removed when their last client
// leaves or when they are deleted explicitly.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	defaults Options
	log      zerolog.Logger
}

func NewManager(defaults Options) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		defaults: defaults,
		log:      defaults.Logger,
	}
}

// Validate rejects bot counts outside [0, game.MaxBots].
func (p CreateParams) Validate() error {
	if p.Bots != nil && (*p.Bots < 0 || *p.Bots > game.MaxBots) {
		return fmt.Errorf("%w: bots must be in [0, %d], got %d", ErrInvalidParams, game.MaxBots, *p.Bots)
	}
	return nil
}

// Create starts a new session and returns it running. Params that fail
// Validate keep the defaults.
func (m *Manager) Create(p CreateParams) *Session {
	opts := m.defaults
	if p.Seed != nil {
		opts.Seed = *p.Seed
	} else {
		opts.Seed = rand.Uint64()
	}
	if p.Bots != nil && p.Validate() == nil {
		opts.Tuning.Bots = *p.Bots
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.NewString()
	r := New(id, opts)
	r.OnEmpty = func(id string) {
		m.removeSession(id)
	}
	m.sessions[id] = r
	go r.Run()
	m.log.Info().Str("session", id).Uint64("seed", opts.Seed).Int("bots", opts.Tuning.Bots).Msg("session created")
	return r
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return r, nil
}

// Remove stops and forgets a session.
func (m *Manager) Remove(id string) error {
	if !m.removeSession(id) {
		return ErrNotFound
	}
	return nil
}

func (m *Manager) removeSession(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.sessions[id]
	if !ok {
		return false
	}
	r.Stop()
	delete(m.sessions, id)
	m.log.Info().Str("session", id).Msg("session removed")
	return true
}

// List returns a summary of every active session, ordered by id.
func (m *Manager) List() []Info {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Info, 0, len(m.sessions))
	for _, r := range m.sessions {
		out = append(out, r.Info())
	}
	slices.SortFunc(out, func(a, b Info) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// StopAll stops every session; used on shutdown.
func (m *Manager) StopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, r := range m.sessions {
		r.Stop()
		delete(m.sessions, id)
	}
}
