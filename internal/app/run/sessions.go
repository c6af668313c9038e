package run

import (
	"sync"

	"gridraid/internal/app/ports"
	"gridraid/internal/app/raid"
)

// Session pairs a live battlefield with the controller driving it. Records
// and events outlive sessions; the session itself is gone once the run ends
// or the process restarts.
type Session struct {
	Field      ports.Battlefield
	Controller *raid.Controller
}

type SessionStore struct {
	mu   sync.Mutex
	byID map[string]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{byID: make(map[string]*Session)}
}

func (s *SessionStore) Put(runID string, sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[runID] = sess
}

func (s *SessionStore) Get(runID string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.byID[runID]
	return sess, ok
}

func (s *SessionStore) Delete(runID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, runID)
}
