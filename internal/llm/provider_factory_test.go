package llm

import (
	"context"
	"testing"
	"time"

	apperrors "github.com/createmusic-space/musicgen/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderFactory(t *testing.T) {
	f := NewProviderFactory(FactoryConfig{
		ChatAPIURL:   "http://localhost:5000/chat",
		OpenAIAPIKey: "sk-test",
		Timeout:      time.Second,
	})

	p, err := f.GetProvider(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "endpoint", p.Name())

	p, err = f.GetProvider(context.Background(), "OpenAI")
	require.NoError(t, err)
	assert.Equal(t, "openai", p.Name())

	_, err = f.GetProvider(context.Background(), "gemini")
	assert.ErrorIs(t, err, apperrors.ErrNotConfigured)

	_, err = f.GetProvider(context.Background(), "llama")
	assert.Error(t, err)
}

func TestProviderFactoryMissingEndpoint(t *testing.T) {
	f := NewProviderFactory(FactoryConfig{})
	_, err := f.GetProvider(context.Background(), "endpoint")
	assert.ErrorIs(t, err, apperrors.ErrNotConfigured)
}
