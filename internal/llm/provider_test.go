package llm

import (
	"context"
	"testing"

	"github.com/createmusic-space/musicgen/internal/models"
	"github.com/createmusic-space/musicgen/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockProvider is a test implementation of the Provider interface
type MockProvider struct {
	name     string
	chatFunc func(ctx context.Context, request *ChatRequest) (*ChatResponse, error)
}

func (m *MockProvider) Name() string {
	return m.name
}

func (m *MockProvider) Chat(ctx context.Context, request *ChatRequest) (*ChatResponse, error) {
	if m.chatFunc != nil {
		return m.chatFunc(ctx, request)
	}
	return &ChatResponse{}, nil
}

func TestUsageAsMap(t *testing.T) {
	var nilUsage *Usage
	assert.Empty(t, nilUsage.AsMap())

	u := &Usage{InputTokens: 3, OutputTokens: 4, TotalTokens: 7}
	assert.Equal(t, 7, u.AsMap()["total_tokens"])
}

func TestRecentHistory(t *testing.T) {
	history := make([]models.ChatTurn, maxHistoryTurns+5)
	for i := range history {
		history[i] = models.ChatTurn{Sender: models.SenderUser, Text: string(rune('a' + i%26))}
	}

	got := recentHistory(history)
	require.Len(t, got, maxHistoryTurns)
	assert.Equal(t, history[5], got[0])

	short := history[:3]
	assert.Equal(t, short, recentHistory(short))
}

func TestWithTracingDisabledReturnsProvider(t *testing.T) {
	mock := &MockProvider{name: "mock"}
	disabled := observability.GetClient()

	assert.Same(t, Provider(mock), WithTracing(mock, disabled))
	assert.Same(t, Provider(mock), WithTracing(mock, nil))
}

func TestMockProviderChat(t *testing.T) {
	callCount := 0
	mock := &MockProvider{
		name: "test",
		chatFunc: func(_ context.Context, request *ChatRequest) (*ChatResponse, error) {
			callCount++
			require.Equal(t, "hello", request.Message)
			return &ChatResponse{Reply: "hi"}, nil
		},
	}

	resp, err := mock.Chat(context.Background(), &ChatRequest{Message: "hello"})
	require.NoError(t, err)
	assert.Equal(t, 1, callCount)
	assert.Equal(t, "hi", resp.Reply)
}
