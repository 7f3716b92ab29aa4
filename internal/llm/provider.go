package llm

import (
	"context"

	"github.com/createmusic-space/musicgen/internal/models"
)

// Provider defines the interface for chat backends.
// A backend receives one user message (plus optional history) and returns one reply.
type Provider interface {
	// Chat sends the message and returns the bot reply
	Chat(ctx context.Context, request *ChatRequest) (*ChatResponse, error)

	// Name returns the provider name (e.g., "endpoint", "openai", "gemini")
	Name() string
}

// ChatRequest contains all parameters needed for one chat exchange
type ChatRequest struct {
	Model        string
	SystemPrompt string
	Message      string
	// Earlier turns of the conversation, oldest first. Backends that
	// cannot carry context ignore it.
	History []models.ChatTurn
}

// ChatResponse contains the reply from the backend
type ChatResponse struct {
	Reply string `json:"reply"`
	Usage *Usage `json:"usage,omitempty"`
}

// Usage is token usage reported by LLM backends
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// AsMap converts usage to the generic map used by the observability layer
func (u *Usage) AsMap() map[string]interface{} {
	if u == nil {
		return map[string]interface{}{}
	}
	return map[string]interface{}{
		"input_tokens":  u.InputTokens,
		"output_tokens": u.OutputTokens,
		"total_tokens":  u.TotalTokens,
	}
}

const (
	// maxHistoryTurns bounds how much of the log is replayed to LLM backends
	maxHistoryTurns = 20
	maxLogPreview   = 200
)

// recentHistory returns at most maxHistoryTurns of the newest turns
func recentHistory(history []models.ChatTurn) []models.ChatTurn {
	if len(history) <= maxHistoryTurns {
		return history
	}
	return history[len(history)-maxHistoryTurns:]
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
