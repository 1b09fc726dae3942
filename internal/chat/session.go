package chat

import (
	"fmt"
	"sync"
	"time"

	"github.com/hyperjump/sqlrag/internal/models"
)

// State is the position of a session in its turn cycle.
type State int

const (
	StateIdle State = iota
	StateAwaitingResponse
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingResponse:
		return "awaiting_response"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name.
func (s *State) UnmarshalText(b []byte) error {
	switch string(b) {
	case "idle":
		*s = StateIdle
	case "awaiting_response":
		*s = StateAwaitingResponse
	default:
		return fmt.Errorf("unknown session state %q", b)
	}
	return nil
}

// Session is one conversation. The history always starts with the greeting.
// turn serializes Ask calls; mu guards the fields.
type Session struct {
	turn sync.Mutex

	mu        sync.Mutex
	id        string
	greeting  string
	history   []models.ChatMessage
	state     State
	epoch     uint64
	updatedAt time.Time
}

// Snapshot is a point-in-time copy of a session.
type Snapshot struct {
	ID        string               `json:"id"`
	State     State                `json:"state"`
	History   []models.ChatMessage `json:"history"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// NewSession starts a conversation holding only the greeting.
func NewSession(id, greeting string) *Session {
	s := &Session{id: id, greeting: greeting}
	s.resetLocked()
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// History returns a copy of the conversation so far.
func (s *Session) History() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ChatMessage(nil), s.history...)
}

// Snapshot returns a copy of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:        s.id,
		State:     s.state,
		History:   append([]models.ChatMessage(nil), s.history...),
		UpdatedAt: s.updatedAt,
	}
}

// Reset starts a new chat: the history becomes the greeting alone and the
// session is idle. A turn in flight when Reset is called does not write its
// answer into the new history.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *Session) resetLocked() {
	s.history = []models.ChatMessage{models.AssistantMessage(s.greeting)}
	s.state = StateIdle
	s.epoch++
	s.updatedAt = time.Now()
}

// begin appends the query and enters StateAwaitingResponse. It returns the
// history preceding the query and a token for finish or abort.
func (s *Session) begin(query string) (prior []models.ChatMessage, epoch uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prior = append([]models.ChatMessage(nil), s.history...)
	s.history = append(s.history, models.UserMessage(query))
	s.state = StateAwaitingResponse
	s.updatedAt = time.Now()
	return prior, s.epoch
}

// finish appends the answer and returns to idle. It reports false when the
// session was reset during the turn.
func (s *Session) finish(epoch uint64, answer string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return false
	}
	s.history = append(s.history, models.AssistantMessage(answer))
	s.state = StateIdle
	s.updatedAt = time.Now()
	return true
}

// abort removes the pending query and returns to idle.
func (s *Session) abort(epoch uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return
	}
	if n := len(s.history); n > 0 && s.history[n-1].Role == models.RoleUser {
		s.history = s.history[:n-1]
	}
	s.state = StateIdle
	s.updatedAt = time.Now()
}
