package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/arena/internal/game/arena"
)

// ErrSessionNotFound is returned when a session id is unknown or malformed.
var ErrSessionNotFound = errors.New("session: not found")

// Manager tracks all active sessions.
// All methods are safe for concurrent use.
type Manager struct {
	mu              sync.RWMutex
	sessions        map[uuid.UUID]*Session
	armory          *Armory
	staminaPerRound float64
	logger          *zap.Logger
}

// NewManager creates an empty Manager whose sessions build fighters from
// armory and run matches regenerating staminaPerRound each counter-turn.
//
// Precondition: armory and logger must be non-nil; staminaPerRound > 0.
func NewManager(armory *Armory, staminaPerRound float64, logger *zap.Logger) *Manager {
	if armory == nil {
		panic("session: NewManager precondition violated: armory must be non-nil")
	}
	if logger == nil {
		panic("session: NewManager precondition violated: logger must be non-nil")
	}
	if staminaPerRound <= 0 {
		panic("session: NewManager precondition violated: staminaPerRound must be > 0")
	}
	return &Manager{
		sessions:        make(map[uuid.UUID]*Session),
		armory:          armory,
		staminaPerRound: staminaPerRound,
		logger:          logger,
	}
}

// Armory returns the shared fighter builder.
func (m *Manager) Armory() *Armory { return m.armory }

// Create registers a new idle session.
//
// Postcondition: the returned session is retrievable by its ID.
func (m *Manager) Create() *Session {
	id := uuid.New()
	s := &Session{
		ID:     id,
		armory: m.armory,
		controller: arena.NewController(m.staminaPerRound,
			m.logger.With(zap.String("session_id", id.String()))),
	}
	s.touch()
	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()
	m.logger.Debug("session created", zap.String("session_id", id.String()))
	return s
}

// Get returns the session with the given id and marks it as used.
//
// Postcondition: returns an error wrapping ErrSessionNotFound when id is
// malformed or unknown.
func (m *Manager) Get(id string) (*Session, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrSessionNotFound, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[uid]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSessionNotFound, id)
	}
	s.touch()
	return s, nil
}

// Sweep removes every session not used since now minus idle and returns how
// many were removed.
//
// Precondition: idle > 0.
func (m *Manager) Sweep(now time.Time, idle time.Duration) int {
	if idle <= 0 {
		panic("session: Sweep precondition violated: idle must be > 0")
	}
	cutoff := now.Add(-idle)
	m.mu.Lock()
	var removed int
	for id, s := range m.sessions {
		if s.LastSeen().Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	remaining := len(m.sessions)
	m.mu.Unlock()
	if removed > 0 {
		m.logger.Info("idle sessions evicted",
			zap.Int("evicted", removed),
			zap.Int("remaining", remaining),
			zap.Duration("idle", idle),
		)
	}
	return removed
}

// Remove forgets the session with the given id. Unknown ids are ignored.
func (m *Manager) Remove(id uuid.UUID) {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		m.logger.Debug("session removed", zap.String("session_id", id.String()))
	}
}

// Count returns the number of active sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
