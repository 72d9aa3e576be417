package store

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/aqi-explorer/internal/viewport"
)

var (
	// ErrSessionNotFound is returned for unknown or pruned session IDs.
	ErrSessionNotFound = errors.New("session not found")
)

// Session is the interaction state of one chart client. Callers must hold
// the session lock while using the controller.
type Session struct {
	ID string

	mu         sync.Mutex
	controller *viewport.Controller
	lastSeen   time.Time
}

// With runs fn with exclusive access to the session's controller.
func (s *Session) With(fn func(c *viewport.Controller) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	return fn(s.controller)
}

// SessionStore keeps interaction sessions in memory.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	newController func() (*viewport.Controller, error)
}

// NewSessionStore creates a store; newController builds the initial
// interaction state of each session.
func NewSessionStore(newController func() (*viewport.Controller, error)) *SessionStore {
	return &SessionStore{
		sessions:      make(map[string]*Session),
		newController: newController,
	}
}

// Create starts a new session.
func (s *SessionStore) Create() (*Session, error) {
	c, err := s.newController()
	if err != nil {
		return nil, err
	}

	sess := &Session{
		ID:         uuid.NewString(),
		controller: c,
		lastSeen:   time.Now(),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return sess, nil
}

// Get returns the session with id.
func (s *SessionStore) Get(id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrSessionNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Delete removes a session. Deleting an unknown session is an error.
func (s *SessionStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Prune drops sessions idle for longer than idle and returns how many were
// removed.
func (s *SessionStore) Prune(idle time.Duration) int {
	cutoff := time.Now().Add(-idle)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		stale := sess.lastSeen.Before(cutoff)
		sess.mu.Unlock()
		if stale {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
