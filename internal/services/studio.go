package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/createmusic-space/musicgen/internal/audio"
	"github.com/createmusic-space/musicgen/internal/client"
	apperrors "github.com/createmusic-space/musicgen/internal/errors"
	"github.com/createmusic-space/musicgen/internal/llm"
	"github.com/createmusic-space/musicgen/internal/logger"
	"github.com/createmusic-space/musicgen/internal/metrics"
	"github.com/createmusic-space/musicgen/internal/models"
	"github.com/createmusic-space/musicgen/internal/session"
)

// Messages shown to the user
const (
	GenerationErrorMessage = "An error occurred, please try again."
	ChatFailureMessage     = "Failed to get response."
	NoResponseMessage      = "No response."
)

// StudioConfig wires the studio to its collaborators
type StudioConfig struct {
	Music        *client.MusicClient
	Clips        *audio.Store
	Chat         llm.Provider
	SystemPrompt string
	Model        string
	CloudWatch   *metrics.Client // optional
}

// Studio runs the two user operations against a session's state
type Studio struct {
	music        *client.MusicClient
	clips        *audio.Store
	chat         llm.Provider
	systemPrompt string
	model        string
	sentry       *metrics.SentryMetrics
	cloudwatch   *metrics.Client
}

func NewStudio(cfg StudioConfig) *Studio {
	return &Studio{
		music:        cfg.Music,
		clips:        cfg.Clips,
		chat:         cfg.Chat,
		systemPrompt: cfg.SystemPrompt,
		model:        cfg.Model,
		sentry:       metrics.NewSentryMetrics(),
		cloudwatch:   cfg.CloudWatch,
	}
}

// Clips returns the audio store backing generated clips
func (s *Studio) Clips() *audio.Store {
	return s.clips
}

// Generate validates the form, calls the music endpoint and stores the returned clip.
// A validation failure never reaches the network. Any later failure shows the
// generic error and clears the previous clip.
func (s *Studio) Generate(ctx context.Context, st *session.State, scale, length string) (*models.Clip, error) {
	if err := st.TryBegin(); err != nil {
		return nil, err
	}
	defer st.End()

	st.SetForm(scale, length)

	req, err := client.ValidateGenerationForm(scale, length)
	if err != nil {
		st.SetError(client.ValidationMessage)
		return nil, err
	}

	fields := logger.Fields{
		"session_id": st.ID,
		"scale":      req.Scale,
		"length":     req.Length,
	}

	start := time.Now()
	clip, err := s.generate(ctx, st.ID, req)
	duration := time.Since(start)

	s.sentry.RecordGeneration(ctx, req.Scale, req.Length, duration, err == nil)
	s.cloudwatch.RecordGeneration(req.Scale, duration, err == nil)

	if err != nil {
		logger.Error("Music generation failed", err, fields)
		s.replaceClip(st, nil)
		st.SetError(GenerationErrorMessage)
		return nil, err
	}

	fields["clip_id"] = clip.ID
	fields["duration_ms"] = duration.Milliseconds()
	logger.Info("Music generated", fields)

	s.replaceClip(st, clip)
	st.SetError("")
	return clip, nil
}

func (s *Studio) generate(ctx context.Context, sessionID string, req models.GenerationRequest) (*models.Clip, error) {
	data, err := s.music.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	info, err := audio.Inspect(data)
	if err != nil {
		return nil, err
	}

	scale, _ := models.LookupScale(req.Scale)
	return s.clips.Put(&models.Clip{
		SessionID: sessionID,
		Scale:     scale,
		Length:    req.Length,
		Data:      data,
		Info:      *info,
	}), nil
}

// replaceClip swaps the session's clip and drops the old one from the store
func (s *Studio) replaceClip(st *session.State, clip *models.Clip) {
	if prev := st.Clip(); prev != nil && (clip == nil || prev.ID != clip.ID) {
		s.clips.Delete(prev.ID)
	}
	st.SetClip(clip)
}

// SendChat appends the user's turn, asks the chat backend and appends the bot's turn.
// An empty or whitespace-only message is a no-op and returns ErrEmptyMessage.
func (s *Studio) SendChat(ctx context.Context, st *session.State, message string) (models.ChatTurn, error) {
	if strings.TrimSpace(message) == "" {
		return models.ChatTurn{}, apperrors.ErrEmptyMessage
	}
	if err := st.TryBegin(); err != nil {
		st.SetDraft(message)
		return models.ChatTurn{}, err
	}
	defer st.End()

	history := st.Turns()
	st.AppendTurn(models.SenderUser, message)
	st.SetDraft("")

	reply, err := s.ask(ctx, message, history)
	if err != nil {
		logger.Error("Chat request failed", err, logger.Fields{
			"session_id": st.ID,
			"backend":    s.chat.Name(),
		})
		return st.AppendTurn(models.SenderBot, ChatFailureMessage), err
	}
	return st.AppendTurn(models.SenderBot, reply), nil
}

// ask performs one chat exchange and maps an empty reply to NoResponseMessage
func (s *Studio) ask(ctx context.Context, message string, history []models.ChatTurn) (string, error) {
	start := time.Now()
	resp, err := s.chat.Chat(ctx, &llm.ChatRequest{
		Model:        s.model,
		SystemPrompt: s.systemPrompt,
		Message:      message,
		History:      history,
	})
	duration := time.Since(start)

	tokens := 0
	if resp != nil && resp.Usage != nil {
		tokens = resp.Usage.TotalTokens
	}
	s.sentry.RecordChat(ctx, s.chat.Name(), duration, tokens, err == nil)
	s.cloudwatch.RecordChatTurn(s.chat.Name(), tokens, err == nil)

	if err != nil {
		return "", err
	}
	if strings.TrimSpace(resp.Reply) == "" {
		return NoResponseMessage, nil
	}
	return resp.Reply, nil
}

// IsUserError reports whether err came from input the user can fix
func IsUserError(err error) bool {
	return apperrors.IsValidation(err) ||
		errors.Is(err, apperrors.ErrEmptyMessage) ||
		errors.Is(err, apperrors.ErrBusy)
}
