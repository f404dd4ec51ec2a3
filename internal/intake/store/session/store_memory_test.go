package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/Malar-R/friendly-octo-memory/internal/intake/models"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	clock time.Time
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.clock = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s.store.now = func() time.Time { return s.clock }
}

func (s *InMemoryStoreSuite) newState() *models.SessionState {
	return &models.SessionState{
		ID:        uuid.New(),
		CSRFToken: "token-1",
		CreatedAt: s.clock,
		ExpiresAt: s.clock.Add(30 * time.Minute),
	}
}

func (s *InMemoryStoreSuite) TestCreateAndFind() {
	state := s.newState()

	err := s.store.Create(context.Background(), state)
	require.NoError(s.T(), err)

	found, err := s.store.Find(context.Background(), state.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), state, found)
}

func (s *InMemoryStoreSuite) TestFindNotFound() {
	_, err := s.store.Find(context.Background(), uuid.New())
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *InMemoryStoreSuite) TestFindExpired() {
	state := s.newState()
	require.NoError(s.T(), s.store.Create(context.Background(), state))

	s.clock = s.clock.Add(31 * time.Minute)

	_, err := s.store.Find(context.Background(), state.ID)
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *InMemoryStoreSuite) TestSave() {
	state := s.newState()
	require.NoError(s.T(), s.store.Create(context.Background(), state))

	state.CSRFToken = "token-2"
	state.Pending = &models.Submission{Name: "John Doe"}
	require.NoError(s.T(), s.store.Save(context.Background(), state))

	found, err := s.store.Find(context.Background(), state.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "token-2", found.CSRFToken)
	require.NotNil(s.T(), found.Pending)
	assert.Equal(s.T(), "John Doe", found.Pending.Name)
}

func (s *InMemoryStoreSuite) TestSaveUnknownSession() {
	err := s.store.Save(context.Background(), s.newState())
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *InMemoryStoreSuite) TestDelete() {
	state := s.newState()
	require.NoError(s.T(), s.store.Create(context.Background(), state))
	require.NoError(s.T(), s.store.Delete(context.Background(), state.ID))

	_, err := s.store.Find(context.Background(), state.ID)
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *InMemoryStoreSuite) TestSweep() {
	fresh := s.newState()
	stale := s.newState()
	stale.ExpiresAt = s.clock.Add(-time.Minute)

	require.NoError(s.T(), s.store.Create(context.Background(), fresh))
	require.NoError(s.T(), s.store.Create(context.Background(), stale))

	dropped := s.store.Sweep(context.Background())
	assert.Equal(s.T(), 1, dropped)

	_, err := s.store.Find(context.Background(), fresh.ID)
	assert.NoError(s.T(), err)
	_, err = s.store.Find(context.Background(), stale.ID)
	assert.ErrorIs(s.T(), err, ErrNotFound)
}
