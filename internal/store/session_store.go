package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("session not found")
)

// SessionStore tracks dashboard sessions so that a newer request supersedes the
// in-flight insight work of an older one.
type SessionStore interface {
	CreateSession(ctx context.Context) (string, error)
	Exists(ctx context.Context, sessionID string) bool
	// Begin cancels the session's previous run and returns a context for the new one.
	// The returned release func must be called when the run finishes.
	Begin(ctx context.Context, sessionID string) (context.Context, func(), error)
	Expire(idleFor time.Duration) int
}

type sessionRun struct {
	id     uint64
	cancel context.CancelFunc
}

type sessionState struct {
	current  *sessionRun
	nextRun  uint64
	lastSeen time.Time
}

type inMemorySessionStore struct {
	sessions map[string]*sessionState
	mu       sync.Mutex
}

func NewInMemorySessionStore() SessionStore {
	return &inMemorySessionStore{
		sessions: make(map[string]*sessionState),
	}
}

func (s *inMemorySessionStore) CreateSession(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	newID := uuid.NewString()
	s.sessions[newID] = &sessionState{lastSeen: time.Now()}
	return newID, nil
}

func (s *inMemorySessionStore) Exists(ctx context.Context, sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[sessionID]
	return ok
}

func (s *inMemorySessionStore) Begin(ctx context.Context, sessionID string) (context.Context, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil, ErrSessionNotFound
	}
	if state.current != nil {
		state.current.cancel()
	}

	runCtx, cancel := context.WithCancel(ctx)
	state.nextRun++
	run := &sessionRun{id: state.nextRun, cancel: cancel}
	state.current = run
	state.lastSeen = time.Now()

	release := func() {
		cancel()
		s.mu.Lock()
		defer s.mu.Unlock()
		if st, ok := s.sessions[sessionID]; ok && st.current != nil && st.current.id == run.id {
			st.current = nil
		}
	}
	return runCtx, release, nil
}

// Expire forgets sessions idle for longer than idleFor.
func (s *inMemorySessionStore) Expire(idleFor time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-idleFor)
	removed := 0
	for id, state := range s.sessions {
		if state.current == nil && state.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
