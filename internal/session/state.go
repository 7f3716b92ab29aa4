package session

import (
	"sync"
	"time"

	apperrors "github.com/createmusic-space/musicgen/internal/errors"
	"github.com/createmusic-space/musicgen/internal/models"
)

// State is the UI state of one browser session.
// Handlers must hold a request slot (TryBegin/End) while they call out.
type State struct {
	ID string

	mu         sync.Mutex
	busy       bool
	scale      string
	length     string
	clip       *models.Clip
	errMessage string
	turns      []models.ChatTurn
	draft      string
	lastSeen   time.Time
}

// Snapshot is a read-only copy of State used for rendering
type Snapshot struct {
	ID     string
	Scale  string
	Length string
	Clip   *models.Clip
	Error  string
	Turns  []models.ChatTurn
	Draft  string
	Busy   bool
}

// NewState creates an empty state
func NewState(id string) *State {
	return &State{ID: id, lastSeen: time.Now()}
}

// TryBegin claims the single request slot of this session
func (s *State) TryBegin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return apperrors.ErrBusy
	}
	s.busy = true
	return nil
}

// End releases the request slot
func (s *State) End() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

// SetForm remembers the raw form input so it can be re-rendered
func (s *State) SetForm(scale, length string) {
	s.mu.Lock()
	s.scale, s.length = scale, length
	s.mu.Unlock()
}

// SetError sets the error banner text. An empty string clears it.
func (s *State) SetError(msg string) {
	s.mu.Lock()
	s.errMessage = msg
	s.mu.Unlock()
}

// SetClip sets the current audio handle. nil clears it.
func (s *State) SetClip(clip *models.Clip) {
	s.mu.Lock()
	s.clip = clip
	s.mu.Unlock()
}

// Clip returns the current audio handle
func (s *State) Clip() *models.Clip {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clip
}

// SetDraft stores the chat text being composed
func (s *State) SetDraft(text string) {
	s.mu.Lock()
	s.draft = text
	s.mu.Unlock()
}

// AppendTurn adds a turn to the end of the chat log
func (s *State) AppendTurn(sender models.Sender, text string) models.ChatTurn {
	turn := models.ChatTurn{Sender: sender, Text: text, At: time.Now()}
	s.mu.Lock()
	s.turns = append(s.turns, turn)
	s.mu.Unlock()
	return turn
}

// Turns returns a copy of the chat log
func (s *State) Turns() []models.ChatTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ChatTurn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Snapshot copies the state for rendering
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	turns := make([]models.ChatTurn, len(s.turns))
	copy(turns, s.turns)
	return Snapshot{
		ID:     s.ID,
		Scale:  s.scale,
		Length: s.length,
		Clip:   s.clip,
		Error:  s.errMessage,
		Turns:  turns,
		Draft:  s.draft,
		Busy:   s.busy,
	}
}

func (s *State) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *State) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}
