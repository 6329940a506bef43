package store

import (
	"errors"
	"sync"
	"time"

	"github.com/calvinwijaya/blackjack/internal/game"
)

var ErrNotFound = errors.New("session not found")

// Store defines the interface for session storage
type Store interface {
	// SaveSession saves a session to the store
	SaveSession(s *Session) error

	// GetSession retrieves a session by ID
	GetSession(id string) (*Session, error)

	// DeleteSession removes a session from the store
	DeleteSession(id string) error

	// GetAllSessions returns all sessions in the store
	GetAllSessions() ([]*Session, error)
}

// Session is one player's table. All access to the engine goes through Do,
// which serializes it.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	engine    *game.Engine
	updatedAt time.Time
}

// NewSession creates a session around a fresh deck. No round is dealt yet.
func NewSession(id string, display game.Display, opts ...game.DeckOption) *Session {
	now := time.Now()
	return &Session{
		ID:        id,
		CreatedAt: now,
		engine:    game.NewEngine(game.NewDeck(opts...), display),
		updatedAt: now,
	}
}

// Do runs fn with exclusive access to the engine
func (s *Session) Do(fn func(e *game.Engine) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := fn(s.engine)
	s.updatedAt = time.Now()
	return err
}

func (s *Session) Snapshot() game.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Snapshot()
}

func (s *Session) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}
