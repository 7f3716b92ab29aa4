package llm

import (
	"context"
	"time"

	"github.com/createmusic-space/musicgen/internal/observability"
)

// TracedProvider records every chat exchange as a Langfuse generation
type TracedProvider struct {
	next     Provider
	langfuse *observability.LangfuseClient
}

// WithTracing wraps p. When Langfuse is disabled p is returned unchanged.
func WithTracing(p Provider, lf *observability.LangfuseClient) Provider {
	if lf == nil || !lf.IsEnabled() {
		return p
	}
	return &TracedProvider{next: p, langfuse: lf}
}

// Name returns the wrapped provider's name
func (t *TracedProvider) Name() string {
	return t.next.Name()
}

// Chat forwards to the wrapped provider and logs the exchange
func (t *TracedProvider) Chat(ctx context.Context, request *ChatRequest) (*ChatResponse, error) {
	trace := t.langfuse.StartTrace(ctx, "musicbot.chat", map[string]interface{}{
		"provider": t.next.Name(),
	})
	defer trace.Finish()

	gen := trace.Generation("chat", map[string]interface{}{
		"history_turns": len(request.History),
	})
	defer gen.Finish()

	start := time.Now()
	resp, err := t.next.Chat(ctx, request)
	duration := time.Since(start)

	input := []map[string]interface{}{{"role": "user", "content": request.Message}}
	if err != nil {
		gen.SetLevel("ERROR")
		gen.Input(input)
		gen.Metadata(map[string]interface{}{
			"error":       err.Error(),
			"duration_ms": duration.Milliseconds(),
		})
		return nil, err
	}

	gen.LogChat(request.Model, input, resp.Reply, resp.Usage.AsMap(), map[string]interface{}{
		"duration_ms": duration.Milliseconds(),
	})
	return resp, nil
}
