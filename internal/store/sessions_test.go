package store

import (
	"errors"
	"testing"
	"time"

	"github.com/i474232898/aqi-explorer/internal/viewport"
)

func newTestSessions() *SessionStore {
	return NewSessionStore(func() (*viewport.Controller, error) {
		sel, err := viewport.NewRangeSelector(60, 1140, 720, 20)
		if err != nil {
			return nil, err
		}
		return viewport.NewController(sel, viewport.Rect{X: 110, Y: 210, W: 980, H: 430}), nil
	})
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestSessions()

	sess, err := s.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := s.Get(sess.ID)
	if err != nil || got != sess {
		t.Fatalf("Get returned %v, %v", got, err)
	}

	err = got.With(func(c *viewport.Controller) error {
		c.Wheel(-1000)
		return nil
	})
	if err != nil {
		t.Fatalf("With: %v", err)
	}
	_ = got.With(func(c *viewport.Controller) error {
		if z := c.Snapshot().Viewport.Zoom; z != 2 {
			t.Fatalf("expected zoom to persist across calls, got %v", z)
		}
		return nil
	})

	if err := s.Delete(sess.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(sess.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if err := s.Delete(sess.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound on double delete, got %v", err)
	}
}

func TestSessionGetRejectsMalformedID(t *testing.T) {
	s := newTestSessions()
	if _, err := s.Get("not-a-uuid"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionPrune(t *testing.T) {
	s := newTestSessions()

	stale, _ := s.Create()
	fresh, _ := s.Create()
	stale.lastSeen = time.Now().Add(-time.Hour)

	if n := s.Prune(30 * time.Minute); n != 1 {
		t.Fatalf("expected 1 pruned session, got %d", n)
	}
	if _, err := s.Get(fresh.ID); err != nil {
		t.Fatalf("fresh session should survive: %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 session left, got %d", s.Len())
	}
}
