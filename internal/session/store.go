package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store holds the State of every live browser session in memory
type Store struct {
	mu     sync.Mutex
	states map[string]*State
	ttl    time.Duration
	now    func() time.Time
}

// NewStore creates a store whose sessions expire after ttl of inactivity (0 = never)
func NewStore(ttl time.Duration) *Store {
	return &Store{
		states: make(map[string]*State),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Get returns the state for id, creating a fresh one when id is unknown or expired.
// The returned state's ID may differ from id.
func (s *Store) Get(id string) *State {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if st, ok := s.states[id]; ok && id != "" {
		if s.ttl == 0 || st.idleSince(now) <= s.ttl {
			st.touch(now)
			return st
		}
		delete(s.states, id)
	}

	st := NewState(uuid.New().String())
	st.touch(now)
	s.states[st.ID] = st
	return st
}

// Lookup returns an existing, unexpired state without creating one
func (s *Store) Lookup(id string) (*State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[id]
	if !ok {
		return nil, false
	}
	if s.ttl > 0 && st.idleSince(s.now()) > s.ttl {
		delete(s.states, id)
		return nil, false
	}
	return st, true
}

// Sweep removes expired sessions and returns their IDs
func (s *Store) Sweep() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ttl == 0 {
		return nil
	}
	now := s.now()
	var removed []string
	for id, st := range s.states {
		if st.idleSince(now) > s.ttl {
			delete(s.states, id)
			removed = append(removed, id)
		}
	}
	return removed
}

// Len returns the number of live sessions
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.states)
}
