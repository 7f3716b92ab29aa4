package session

import (
	"sync"
	"testing"

	apperrors "github.com/createmusic-space/musicgen/internal/errors"
	"github.com/createmusic-space/musicgen/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateSingleOutstandingRequest(t *testing.T) {
	st := NewState("s1")

	require.NoError(t, st.TryBegin())
	assert.ErrorIs(t, st.TryBegin(), apperrors.ErrBusy)
	assert.True(t, st.Snapshot().Busy)

	st.End()
	assert.NoError(t, st.TryBegin())
}

func TestStateConcurrentBegin(t *testing.T) {
	st := NewState("s1")
	var wg sync.WaitGroup
	var mu sync.Mutex
	won := 0

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if st.TryBegin() == nil {
				mu.Lock()
				won++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, won)
}

func TestStateTurnsAreOrderedCopies(t *testing.T) {
	st := NewState("s1")
	st.AppendTurn(models.SenderUser, "hello")
	st.AppendTurn(models.SenderBot, "hi there")

	turns := st.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, models.SenderUser, turns[0].Sender)
	assert.Equal(t, models.SenderBot, turns[1].Sender)

	turns[0].Text = "mutated"
	assert.Equal(t, "hello", st.Turns()[0].Text)
}

func TestStateSnapshot(t *testing.T) {
	st := NewState("s1")
	st.SetForm("C_Major", "16")
	st.SetError("boom")
	st.SetDraft("typing")
	st.SetClip(&models.Clip{ID: "clip"})

	snap := st.Snapshot()
	assert.Equal(t, "C_Major", snap.Scale)
	assert.Equal(t, "16", snap.Length)
	assert.Equal(t, "boom", snap.Error)
	assert.Equal(t, "typing", snap.Draft)
	assert.Equal(t, "clip", snap.Clip.ID)
}
