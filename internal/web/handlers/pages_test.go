package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/createmusic-space/musicgen/internal/audio"
	"github.com/createmusic-space/musicgen/internal/audio/audiotest"
	"github.com/createmusic-space/musicgen/internal/client"
	"github.com/createmusic-space/musicgen/internal/llm"
	"github.com/createmusic-space/musicgen/internal/middleware"
	"github.com/createmusic-space/musicgen/internal/services"
	"github.com/createmusic-space/musicgen/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoProvider struct{}

func (echoProvider) Chat(_ context.Context, request *llm.ChatRequest) (*llm.ChatResponse, error) {
	return &llm.ChatResponse{Reply: "echo: " + request.Message}, nil
}

func (echoProvider) Name() string { return "echo" }

// gatedProvider holds the reply until release is closed
type gatedProvider struct {
	started chan struct{}
	release chan struct{}
}

func (p *gatedProvider) Chat(ctx context.Context, _ *llm.ChatRequest) (*llm.ChatResponse, error) {
	close(p.started)
	select {
	case <-p.release:
		return &llm.ChatResponse{Reply: "late reply"}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *gatedProvider) Name() string { return "gated" }

type testEnv struct {
	router     *gin.Engine
	musicCalls *int32
	fail       *atomic.Bool
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithChat(t, echoProvider{})
}

func newTestEnvWithChat(t *testing.T, chat llm.Provider) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var calls int32
	var fail atomic.Bool
	music := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		if fail.Load() {
			http.Error(w, "down", http.StatusBadGateway)
			return
		}
		_, _ = w.Write(audiotest.Tone(8000, 0.1, 440))
	}))
	t.Cleanup(music.Close)

	studio := services.NewStudio(services.StudioConfig{
		Music: client.NewMusicClient(music.URL, 5*time.Second),
		Clips: audio.NewStore(time.Hour, 10),
		Chat:  chat,
	})
	manager := session.NewManager("test-secret", session.NewStore(time.Hour), time.Hour, false)
	h := NewWebHandler(studio)

	router := gin.New()
	router.Use(middleware.Session(manager))
	router.GET("/", h.Home)
	router.POST("/generate", h.Generate)
	router.GET("/audio/:id", h.Audio)
	router.POST("/chat/send", h.ChatSend)
	router.GET("/htmx/chat-log", h.ChatLog)

	return &testEnv{router: router, musicCalls: &calls, fail: &fail}
}

// browser keeps the session cookie between requests
type browser struct {
	env     *testEnv
	cookies []*http.Cookie
}

func (b *browser) do(method, path string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	for _, ck := range b.cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	b.env.router.ServeHTTP(w, req)
	if set := w.Result().Cookies(); len(set) > 0 {
		b.cookies = set
	}
	return w
}

var audioLink = regexp.MustCompile(`href="(/audio/[^"]+)"`)

func TestHomePage(t *testing.T) {
	b := &browser{env: newTestEnv(t)}
	w := b.do(http.MethodGet, "/", nil, false)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Select a scale")
	assert.Contains(t, w.Body.String(), "Talk to MusicBot")
	assert.NotEmpty(t, b.cookies)
}

func TestGenerateValidation(t *testing.T) {
	env := newTestEnv(t)
	b := &browser{env: env}

	for _, form := range []url.Values{
		{"scale": {""}, "length": {"8"}},
		{"scale": {"C_Major"}, "length": {"0"}},
		{"scale": {"C_Major"}, "length": {"-5"}},
	} {
		w := b.do(http.MethodPost, "/generate", form, true)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), client.ValidationMessage)
		assert.NotContains(t, w.Body.String(), "Download WAV File")
	}

	assert.Equal(t, int32(0), atomic.LoadInt32(env.musicCalls))
}

func TestGenerateAndDownload(t *testing.T) {
	env := newTestEnv(t)
	b := &browser{env: env}

	w := b.do(http.MethodPost, "/generate", url.Values{"scale": {"G_Minor"}, "length": {"8"}}, true)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Download WAV File")
	assert.Contains(t, body, `download="generated-music.wav"`)

	m := audioLink.FindStringSubmatch(body)
	require.Len(t, m, 2)

	w = b.do(http.MethodGet, m[1], nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "audio/wav", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="generated-music.wav"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "RIFF", w.Body.String()[:4])

	// A different browser cannot fetch the clip
	stranger := &browser{env: env}
	w = stranger.do(http.MethodGet, m[1], nil, false)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGenerateFailure(t *testing.T) {
	env := newTestEnv(t)
	env.fail.Store(true)
	b := &browser{env: env}

	w := b.do(http.MethodPost, "/generate", url.Values{"scale": {"F_Major"}, "length": {"4"}}, true)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "An error occurred, please try again.")
	assert.NotContains(t, w.Body.String(), "Download WAV File")
}

func TestGeneratePlainFormRedirects(t *testing.T) {
	b := &browser{env: newTestEnv(t)}

	w := b.do(http.MethodPost, "/generate", url.Values{"scale": {"C_Major"}, "length": {"4"}}, false)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = b.do(http.MethodGet, "/", nil, false)
	assert.Contains(t, w.Body.String(), "Download WAV File")
	assert.Contains(t, w.Body.String(), `<option value="C_Major" selected>`)
}

func TestChatSend(t *testing.T) {
	b := &browser{env: newTestEnv(t)}

	w := b.do(http.MethodPost, "/chat/send", url.Values{"message": {"hello bot"}}, true)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	user := strings.Index(body, ">hello bot<")
	bot := strings.Index(body, ">echo: hello bot<")
	require.True(t, user >= 0 && bot >= 0, body)
	assert.Less(t, user, bot)

	w = b.do(http.MethodGet, "/htmx/chat-log", nil, true)
	assert.Equal(t, 2, strings.Count(w.Body.String(), `class="chat-turn`))
}

func TestChatSendBlankIsNoop(t *testing.T) {
	b := &browser{env: newTestEnv(t)}

	w := b.do(http.MethodPost, "/chat/send", url.Values{"message": {"   "}}, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `class="chat-turn`)
}

func TestChatLogShowsUserTurnWhileReplyPending(t *testing.T) {
	chat := &gatedProvider{started: make(chan struct{}), release: make(chan struct{})}
	b := &browser{env: newTestEnvWithChat(t, chat)}
	b.do(http.MethodGet, "/", nil, false)
	require.NotEmpty(t, b.cookies)

	sender := &browser{env: b.env, cookies: b.cookies}
	done := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		done <- sender.do(http.MethodPost, "/chat/send", url.Values{"message": {"are you there?"}}, true)
	}()

	select {
	case <-chat.started:
	case <-time.After(5 * time.Second):
		t.Fatal("chat backend was never called")
	}

	w := b.do(http.MethodGet, "/htmx/chat-log", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), ">are you there?<")
	assert.NotContains(t, w.Body.String(), "late reply")
	assert.Contains(t, w.Body.String(), `hx-trigger="every 1s"`)

	w = b.do(http.MethodGet, "/", nil, false)
	assert.Contains(t, w.Body.String(), `hx-get="/htmx/chat-log"`)

	close(chat.release)
	select {
	case sent := <-done:
		assert.Equal(t, http.StatusOK, sent.Code)
	case <-time.After(5 * time.Second):
		t.Fatal("chat send did not finish")
	}

	w = b.do(http.MethodGet, "/htmx/chat-log", nil, true)
	assert.Contains(t, w.Body.String(), ">late reply<")
	assert.NotContains(t, w.Body.String(), "hx-trigger")
}

func TestHomePageWiresPendingChatTurn(t *testing.T) {
	b := &browser{env: newTestEnv(t)}
	w := b.do(http.MethodGet, "/", nil, false)

	body := w.Body.String()
	assert.Contains(t, body, `hx-post="/chat/send"`)
	assert.Contains(t, body, `hx-on::before-request="showPendingTurn(this)"`)
	assert.Contains(t, body, "function showPendingTurn(form)")
}
