package sessionstore

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/weather-wizard/internal/domain/dialogue"
)

type entry struct {
	state     dialogue.ConversationState
	expiresAt time.Time
}

// MemoryStore keeps conversation state in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]entry
	now      func() time.Time
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]entry),
		now:      time.Now,
	}
}

// Get implements dialogue.SessionStore.
func (s *MemoryStore) Get(_ context.Context, id string) (dialogue.ConversationState, bool, error) {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return dialogue.ConversationState{}, false, nil
	}
	if !e.expiresAt.IsZero() && !e.expiresAt.After(s.now()) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return dialogue.ConversationState{}, false, nil
	}
	return cloneState(e.state), true, nil
}

// Put stores the state with an optional TTL.
func (s *MemoryStore) Put(_ context.Context, id string, state dialogue.ConversationState, ttl time.Duration) error {
	exp := time.Time{}
	if ttl > 0 {
		exp = s.now().Add(ttl)
	}
	s.mu.Lock()
	s.sessions[id] = entry{state: cloneState(state), expiresAt: exp}
	s.mu.Unlock()
	return nil
}

// Delete removes a session. Missing sessions are not an error.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

func cloneState(state dialogue.ConversationState) dialogue.ConversationState {
	if state.Saved != nil {
		saved := *state.Saved
		saved.Types = append([]dialogue.WeatherType(nil), state.Saved.Types...)
		state.Saved = &saved
	}
	return state
}

var _ dialogue.SessionStore = (*MemoryStore)(nil)
