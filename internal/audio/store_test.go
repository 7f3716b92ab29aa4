package audio

import (
	"testing"
	"time"

	"github.com/createmusic-space/musicgen/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(ttl time.Duration, max int) (*Store, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := NewStore(ttl, max)
	s.now = clock.now
	return s, clock
}

func TestStorePutGet(t *testing.T) {
	s, _ := newTestStore(time.Minute, 0)

	clip := s.Put(&models.Clip{SessionID: "a", Data: []byte("wav")})
	require.NotEmpty(t, clip.ID)

	got, ok := s.Get("a", clip.ID)
	require.True(t, ok)
	assert.Equal(t, []byte("wav"), got.Data)

	_, ok = s.Get("b", clip.ID)
	assert.False(t, ok, "clips are private to their session")
}

func TestStoreExpiry(t *testing.T) {
	s, clock := newTestStore(time.Minute, 0)
	clip := s.Put(&models.Clip{SessionID: "a"})

	clock.advance(2 * time.Minute)

	_, ok := s.Get("a", clip.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestStoreSweep(t *testing.T) {
	s, clock := newTestStore(time.Minute, 0)
	s.Put(&models.Clip{SessionID: "a"})
	clock.advance(30 * time.Second)
	s.Put(&models.Clip{SessionID: "a"})
	clock.advance(45 * time.Second)

	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 1, s.Len())
}

func TestStoreEvictsOldest(t *testing.T) {
	s, clock := newTestStore(0, 2)
	first := s.Put(&models.Clip{SessionID: "a"})
	clock.advance(time.Second)
	second := s.Put(&models.Clip{SessionID: "a"})
	clock.advance(time.Second)
	third := s.Put(&models.Clip{SessionID: "a"})

	assert.Equal(t, 2, s.Len())
	_, ok := s.Get("a", first.ID)
	assert.False(t, ok)
	_, ok = s.Get("a", second.ID)
	assert.True(t, ok)
	_, ok = s.Get("a", third.ID)
	assert.True(t, ok)
}

func TestStoreDelete(t *testing.T) {
	s, _ := newTestStore(time.Minute, 0)
	clip := s.Put(&models.Clip{SessionID: "a"})
	s.Delete(clip.ID)
	_, ok := s.Get("a", clip.ID)
	assert.False(t, ok)
}

func TestStoreDeleteSession(t *testing.T) {
	s, _ := newTestStore(time.Minute, 0)
	s.Put(&models.Clip{SessionID: "a"})
	s.Put(&models.Clip{SessionID: "a"})
	kept := s.Put(&models.Clip{SessionID: "b"})

	assert.Equal(t, 2, s.DeleteSession("a"))
	assert.Equal(t, 1, s.Len())
	_, ok := s.Get("b", kept.ID)
	assert.True(t, ok)
}
