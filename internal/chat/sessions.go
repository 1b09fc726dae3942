package chat

import (
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for unknown session ids.
var ErrSessionNotFound = errors.New("session not found")

// Sessions is a registry of live conversations keyed by a random UUID.
type Sessions struct {
	mu       sync.RWMutex
	greeting string
	sessions map[string]*Session
}

// NewSessions creates an empty registry. New sessions open with greeting.
func NewSessions(greeting string) *Sessions {
	return &Sessions{greeting: greeting, sessions: make(map[string]*Session)}
}

// Create registers a new session.
func (r *Sessions) Create() *Session {
	s := NewSession(uuid.NewString(), r.greeting)
	r.mu.Lock()
	r.sessions[s.ID()] = s
	r.mu.Unlock()
	return s
}

// Get returns the session with id.
func (r *Sessions) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Delete discards the session with id.
func (r *Sessions) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

// Len returns the number of live sessions.
func (r *Sessions) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// IDs returns the live session ids in sorted order.
func (r *Sessions) IDs() []string {
	r.mu.RLock()
	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	r.mu.RUnlock()
	sort.Strings(ids)
	return ids
}
