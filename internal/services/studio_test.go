package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/createmusic-space/musicgen/internal/audio"
	"github.com/createmusic-space/musicgen/internal/audio/audiotest"
	"github.com/createmusic-space/musicgen/internal/client"
	apperrors "github.com/createmusic-space/musicgen/internal/errors"
	"github.com/createmusic-space/musicgen/internal/llm"
	"github.com/createmusic-space/musicgen/internal/models"
	"github.com/createmusic-space/musicgen/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	chatFunc func(ctx context.Context, request *llm.ChatRequest) (*llm.ChatResponse, error)
}

func (s *stubProvider) Chat(ctx context.Context, request *llm.ChatRequest) (*llm.ChatResponse, error) {
	return s.chatFunc(ctx, request)
}

func (s *stubProvider) Name() string { return "stub" }

func replying(text string) *stubProvider {
	return &stubProvider{chatFunc: func(context.Context, *llm.ChatRequest) (*llm.ChatResponse, error) {
		return &llm.ChatResponse{Reply: text}, nil
	}}
}

// musicServer answers every request with handler and counts the calls
func musicServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func wavHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "audio/wav")
	_, _ = w.Write(audiotest.Tone(8000, 0.25, 440))
}

func newTestStudio(musicURL string, chat llm.Provider) *Studio {
	return NewStudio(StudioConfig{
		Music: client.NewMusicClient(musicURL, 5*time.Second),
		Clips: audio.NewStore(time.Hour, 10),
		Chat:  chat,
	})
}

func TestGenerateValidationNeverCallsEndpoint(t *testing.T) {
	server, calls := musicServer(t, wavHandler)
	studio := newTestStudio(server.URL, replying("hi"))

	tests := []struct {
		name   string
		scale  string
		length string
	}{
		{name: "no scale", scale: "", length: "16"},
		{name: "zero length", scale: "C_Major", length: "0"},
		{name: "negative length", scale: "C_Major", length: "-5"},
		{name: "non numeric length", scale: "D_Minor", length: "many"},
		{name: "unknown scale", scale: "B_Locrian", length: "8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := session.NewState("s1")
			clip, err := studio.Generate(context.Background(), st, tt.scale, tt.length)

			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
			assert.True(t, IsUserError(err))
			assert.Nil(t, clip)
			assert.Equal(t, client.ValidationMessage, st.Snapshot().Error)
		})
	}

	assert.Equal(t, int32(0), atomic.LoadInt32(calls))
}

func TestGenerateSuccess(t *testing.T) {
	var body string
	server, calls := musicServer(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		wavHandler(w, r)
	})
	studio := newTestStudio(server.URL, replying("hi"))
	st := session.NewState("s1")
	st.SetError("stale")

	clip, err := studio.Generate(context.Background(), st, "C_Major", "16")

	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
	assert.JSONEq(t, `{"scale":"C_Major","length":16}`, body)
	assert.Equal(t, models.ScaleCMajor, clip.Scale)
	assert.Equal(t, 8000, clip.Info.SampleRate)

	snap := st.Snapshot()
	assert.Empty(t, snap.Error)
	require.NotNil(t, snap.Clip)
	assert.Equal(t, clip.ID, snap.Clip.ID)
	assert.False(t, snap.Busy)

	stored, ok := studio.Clips().Get("s1", clip.ID)
	require.True(t, ok)
	assert.Equal(t, clip.Data, stored.Data)
}

func TestGenerateReplacesPreviousClip(t *testing.T) {
	server, _ := musicServer(t, wavHandler)
	studio := newTestStudio(server.URL, replying("hi"))
	st := session.NewState("s1")

	first, err := studio.Generate(context.Background(), st, "C_Major", "4")
	require.NoError(t, err)
	second, err := studio.Generate(context.Background(), st, "G_Minor", "8")
	require.NoError(t, err)

	_, ok := studio.Clips().Get("s1", first.ID)
	assert.False(t, ok)
	assert.Equal(t, second.ID, st.Clip().ID)
	assert.Equal(t, 1, studio.Clips().Len())
}

func TestGenerateFailureShowsGenericError(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
			},
		},
		{
			name: "not a wav",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"error":"Invalid input"}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			good, _ := musicServer(t, wavHandler)
			bad, _ := musicServer(t, tt.handler)
			st := session.NewState("s1")

			_, err := newTestStudio(good.URL, nil).Generate(context.Background(), st, "F_Major", "8")
			require.NoError(t, err)
			require.NotNil(t, st.Clip())

			studio := newTestStudio(bad.URL, nil)
			_, err = studio.Generate(context.Background(), st, "F_Major", "8")

			require.Error(t, err)
			assert.False(t, IsUserError(err))
			snap := st.Snapshot()
			assert.Equal(t, GenerationErrorMessage, snap.Error)
			assert.Nil(t, snap.Clip)
		})
	}
}

func TestGenerateRejectsConcurrentRequest(t *testing.T) {
	server, calls := musicServer(t, wavHandler)
	studio := newTestStudio(server.URL, nil)
	st := session.NewState("s1")
	require.NoError(t, st.TryBegin())

	_, err := studio.Generate(context.Background(), st, "C_Major", "4")

	assert.ErrorIs(t, err, apperrors.ErrBusy)
	assert.Equal(t, int32(0), atomic.LoadInt32(calls))
	st.End()
}

func TestSendChatOrdersTurns(t *testing.T) {
	st := session.NewState("s1")
	st.SetDraft("What key is sad?")

	provider := &stubProvider{chatFunc: func(_ context.Context, request *llm.ChatRequest) (*llm.ChatResponse, error) {
		// The user turn is visible before the reply arrives
		turns := st.Turns()
		require.Len(t, turns, 1)
		assert.Equal(t, models.SenderUser, turns[0].Sender)
		assert.Empty(t, st.Snapshot().Draft)
		assert.Equal(t, "What key is sad?", request.Message)
		assert.Empty(t, request.History)
		return &llm.ChatResponse{Reply: "D minor, famously."}, nil
	}}
	studio := newTestStudio("", provider)

	turn, err := studio.SendChat(context.Background(), st, "What key is sad?")

	require.NoError(t, err)
	assert.Equal(t, models.SenderBot, turn.Sender)
	turns := st.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, "What key is sad?", turns[0].Text)
	assert.Equal(t, "D minor, famously.", turns[1].Text)
	assert.Equal(t, models.SenderBot, turns[1].Sender)
}

func TestSendChatPassesHistory(t *testing.T) {
	st := session.NewState("s1")
	var seen []models.ChatTurn
	provider := &stubProvider{chatFunc: func(_ context.Context, request *llm.ChatRequest) (*llm.ChatResponse, error) {
		seen = request.History
		return &llm.ChatResponse{Reply: "ok"}, nil
	}}
	studio := newTestStudio("", provider)

	_, err := studio.SendChat(context.Background(), st, "one")
	require.NoError(t, err)
	_, err = studio.SendChat(context.Background(), st, "two")
	require.NoError(t, err)

	require.Len(t, seen, 2)
	assert.Equal(t, "one", seen[0].Text)
	assert.Equal(t, "ok", seen[1].Text)
}

func TestSendChatBlankIsNoop(t *testing.T) {
	called := false
	provider := &stubProvider{chatFunc: func(context.Context, *llm.ChatRequest) (*llm.ChatResponse, error) {
		called = true
		return &llm.ChatResponse{Reply: "x"}, nil
	}}
	studio := newTestStudio("", provider)
	st := session.NewState("s1")

	for _, msg := range []string{"", "   ", "\n\t"} {
		_, err := studio.SendChat(context.Background(), st, msg)
		assert.ErrorIs(t, err, apperrors.ErrEmptyMessage)
	}

	assert.False(t, called)
	assert.Empty(t, st.Turns())
}

func TestSendChatFailureAndEmptyReply(t *testing.T) {
	tests := []struct {
		name     string
		resp     *llm.ChatResponse
		err      error
		wantText string
		wantErr  bool
	}{
		{name: "backend error", err: errors.New("connection refused"), wantText: ChatFailureMessage, wantErr: true},
		{name: "empty reply", resp: &llm.ChatResponse{Reply: "  "}, wantText: NoResponseMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &stubProvider{chatFunc: func(context.Context, *llm.ChatRequest) (*llm.ChatResponse, error) {
				return tt.resp, tt.err
			}}
			studio := newTestStudio("", provider)
			st := session.NewState("s1")

			turn, err := studio.SendChat(context.Background(), st, "hello")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantText, turn.Text)
			turns := st.Turns()
			require.Len(t, turns, 2)
			assert.Equal(t, "hello", turns[0].Text)
			assert.Equal(t, tt.wantText, turns[1].Text)
		})
	}
}

func TestSendChatEndpointWithoutReplyField(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantText string
	}{
		{name: "empty object", status: http.StatusOK, body: `{}`, wantText: NoResponseMessage},
		{name: "null generated_text", status: http.StatusOK, body: `{"generated_text":null}`, wantText: NoResponseMessage},
		{name: "server error", status: http.StatusInternalServerError, body: `{"error":"boom"}`, wantText: ChatFailureMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chat := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer chat.Close()

			studio := newTestStudio("", llm.NewEndpointProvider(chat.URL, "", 5*time.Second))
			st := session.NewState("s1")

			turn, _ := studio.SendChat(context.Background(), st, "hello")

			assert.Equal(t, tt.wantText, turn.Text)
			turns := st.Turns()
			require.Len(t, turns, 2)
			assert.Equal(t, models.SenderUser, turns[0].Sender)
			assert.Equal(t, models.SenderBot, turns[1].Sender)
		})
	}
}

func TestChatSession(t *testing.T) {
	cs := NewChatSession(replying("Try F major."), "system", "")

	_, err := cs.Send(context.Background(), "  ")
	assert.ErrorIs(t, err, apperrors.ErrEmptyMessage)

	turn, err := cs.Send(context.Background(), "Something calm?")
	require.NoError(t, err)
	assert.Equal(t, "Try F major.", turn.Text)
	assert.Len(t, cs.History(), 2)
}
