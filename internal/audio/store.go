package audio

import (
	"sync"
	"time"

	"github.com/createmusic-space/musicgen/internal/models"
	"github.com/google/uuid"
)

// Store keeps generated clips in memory until they expire.
// A clip is only visible to the session that created it.
type Store struct {
	mu         sync.Mutex
	clips      map[string]*models.Clip
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// NewStore creates a clip store. maxEntries <= 0 means unbounded.
func NewStore(ttl time.Duration, maxEntries int) *Store {
	return &Store{
		clips:      make(map[string]*models.Clip),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Put stores the clip and returns it with ID and CreatedAt filled in
func (s *Store) Put(clip *models.Clip) *models.Clip {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()

	clip.ID = uuid.New().String()
	clip.CreatedAt = s.now()
	s.clips[clip.ID] = clip

	if s.maxEntries > 0 {
		for len(s.clips) > s.maxEntries {
			s.evictOldestLocked()
		}
	}
	return clip
}

// Get returns the clip if it exists, belongs to sessionID and has not expired
func (s *Store) Get(sessionID, id string) (*models.Clip, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clip, ok := s.clips[id]
	if !ok || clip.SessionID != sessionID {
		return nil, false
	}
	if s.expiredLocked(clip) {
		delete(s.clips, id)
		return nil, false
	}
	return clip, true
}

// Delete removes a clip
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clips, id)
}

// DeleteSession removes every clip owned by sessionID
func (s *Store) DeleteSession(sessionID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, clip := range s.clips {
		if clip.SessionID == sessionID {
			delete(s.clips, id)
			removed++
		}
	}
	return removed
}

// Sweep drops expired clips and returns how many were removed
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked()
}

// Len returns the number of stored clips
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clips)
}

func (s *Store) expiredLocked(clip *models.Clip) bool {
	return s.ttl > 0 && s.now().Sub(clip.CreatedAt) > s.ttl
}

func (s *Store) sweepLocked() int {
	removed := 0
	for id, clip := range s.clips {
		if s.expiredLocked(clip) {
			delete(s.clips, id)
			removed++
		}
	}
	return removed
}

func (s *Store) evictOldestLocked() {
	var oldest *models.Clip
	for _, clip := range s.clips {
		if oldest == nil || clip.CreatedAt.Before(oldest.CreatedAt) {
			oldest = clip
		}
	}
	if oldest != nil {
		delete(s.clips, oldest.ID)
	}
}
