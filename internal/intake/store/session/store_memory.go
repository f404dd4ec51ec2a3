package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Malar-R/friendly-octo-memory/internal/intake/models"
	"github.com/Malar-R/friendly-octo-memory/internal/sentinel"
)

// Error Contract:
// All store methods follow this error pattern:
// - Return ErrNotFound when the requested session does not exist or has expired
// - Return nil for successful operations
var ErrNotFound = fmt.Errorf("session not found: %w", sentinel.ErrNotFound)

// InMemoryStore holds per-browser-session state in process memory. Sessions
// never outlive the process, which matches their contract: nothing in them
// is durable beyond the browser session.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*models.SessionState
	now      func() time.Time
}

// NewInMemoryStore constructs an empty in-memory session store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		sessions: make(map[uuid.UUID]*models.SessionState),
		now:      time.Now,
	}
}

func (s *InMemoryStore) Create(_ context.Context, state *models.SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[state.ID] = state
	return nil
}

// Find returns the session for id. Expired sessions are indistinguishable
// from missing ones.
func (s *InMemoryStore) Find(_ context.Context, id uuid.UUID) (*models.SessionState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.sessions[id]
	if !ok || state.Expired(s.now()) {
		return nil, ErrNotFound
	}
	return state, nil
}

// Save overwrites the stored state for state.ID.
func (s *InMemoryStore) Save(_ context.Context, state *models.SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[state.ID]; !ok {
		return ErrNotFound
	}
	s.sessions[state.ID] = state
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Sweep removes expired sessions and reports how many were dropped.
// Called periodically from the server's cleanup loop.
func (s *InMemoryStore) Sweep(_ context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	dropped := 0
	for id, state := range s.sessions {
		if state.Expired(now) {
			delete(s.sessions, id)
			dropped++
		}
	}
	return dropped
}
