package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/createmusic-space/musicgen/internal/errors"
)

// Backend names accepted by CHAT_BACKEND
const (
	BackendEndpoint = "endpoint"
	BackendOpenAI   = "openai"
	BackendGemini   = "gemini"
)

// FactoryConfig carries what the factory needs to build any backend
type FactoryConfig struct {
	ChatAPIURL    string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	GeminiAPIKey  string
	Timeout       time.Duration
}

// ProviderFactory creates providers based on the configured backend
type ProviderFactory struct {
	cfg FactoryConfig
}

// NewProviderFactory creates a new provider factory
func NewProviderFactory(cfg FactoryConfig) *ProviderFactory {
	return &ProviderFactory{cfg: cfg}
}

// GetProvider returns the provider for backend. An empty name selects the plain endpoint.
func (f *ProviderFactory) GetProvider(ctx context.Context, backend string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendEndpoint:
		if f.cfg.ChatAPIURL == "" {
			return nil, fmt.Errorf("chat endpoint URL: %w", apperrors.ErrNotConfigured)
		}
		return NewEndpointProvider(f.cfg.ChatAPIURL, "", f.cfg.Timeout), nil

	case BackendOpenAI:
		if f.cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("openai API key: %w", apperrors.ErrNotConfigured)
		}
		return NewOpenAIProvider(f.cfg.OpenAIAPIKey, f.cfg.OpenAIBaseURL), nil

	case BackendGemini:
		if f.cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("gemini API key: %w", apperrors.ErrNotConfigured)
		}
		return NewGeminiProvider(ctx, f.cfg.GeminiAPIKey)

	default:
		return nil, fmt.Errorf("unknown chat backend: %s (allowed: endpoint, openai, gemini)", backend)
	}
}
