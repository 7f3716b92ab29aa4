package services

import (
	"context"
	"strings"
	"sync"

	apperrors "github.com/createmusic-space/musicgen/internal/errors"
	"github.com/createmusic-space/musicgen/internal/llm"
	"github.com/createmusic-space/musicgen/internal/models"
	"github.com/createmusic-space/musicgen/internal/session"
)

// ChatSession is a conversation outside the web UI, used by the CLI
type ChatSession struct {
	studio *Studio
	state  *session.State
	mu     sync.Mutex
}

// NewChatSession starts an empty conversation with provider
func NewChatSession(provider llm.Provider, systemPrompt, model string) *ChatSession {
	return &ChatSession{
		studio: NewStudio(StudioConfig{
			Chat:         provider,
			SystemPrompt: systemPrompt,
			Model:        model,
		}),
		state: session.NewState("cli"),
	}
}

// Send sends one message and returns the bot's turn.
// Blank messages return ErrEmptyMessage without touching the log.
func (c *ChatSession) Send(ctx context.Context, message string) (models.ChatTurn, error) {
	if strings.TrimSpace(message) == "" {
		return models.ChatTurn{}, apperrors.ErrEmptyMessage
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.studio.SendChat(ctx, c.state, message)
}

// History returns the conversation so far
func (c *ChatSession) History() []models.ChatTurn {
	return c.state.Turns()
}
