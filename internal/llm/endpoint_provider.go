package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/createmusic-space/musicgen/internal/errors"
	"github.com/createmusic-space/musicgen/internal/models"
	"github.com/getsentry/sentry-go"
	"github.com/tidwall/gjson"
)

const (
	providerNameEndpoint = "endpoint"
	maxReplyBytes        = 1 << 20
)

// replyPaths are tried in order. Deployments disagree on the field name, and
// Hugging Face inference endpoints wrap the answer in an array.
var replyPaths = []string{"reply", "generated_text", "0.generated_text", "message"}

// EndpointProvider talks to a plain JSON chat endpoint: POST {"message": "..."}
type EndpointProvider struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

// NewEndpointProvider creates a provider for url. apiKey, when set, is sent as a bearer token.
func NewEndpointProvider(url, apiKey string, timeout time.Duration) *EndpointProvider {
	return &EndpointProvider{
		url:        url,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Name returns the provider name
func (p *EndpointProvider) Name() string {
	return providerNameEndpoint
}

// Chat posts the message and extracts the reply from the JSON body
func (p *EndpointProvider) Chat(ctx context.Context, request *ChatRequest) (*ChatResponse, error) {
	span := sentry.StartSpan(ctx, "chat.endpoint")
	defer span.Finish()
	span.SetTag("provider", providerNameEndpoint)

	body, err := json.Marshal(models.ChatRequest{Message: request.Message})
	if err != nil {
		return nil, fmt.Errorf("failed to encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(span.Context(), http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		span.Status = sentry.SpanStatusUnavailable
		return nil, apperrors.NewAPIError(0, p.url, err.Error())
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Printf("⚠️  Failed to close response body: %v", closeErr)
		}
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		return nil, apperrors.NewAPIError(resp.StatusCode, p.url, "failed to read body: "+err.Error())
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		span.Status = sentry.SpanStatusInternalError
		msg := gjson.GetBytes(raw, "error").String()
		if msg == "" {
			msg = truncate(strings.TrimSpace(string(raw)), maxLogPreview)
		}
		return nil, apperrors.NewAPIError(resp.StatusCode, p.url, msg)
	}

	if !gjson.ValidBytes(raw) {
		span.Status = sentry.SpanStatusInternalError
		log.Printf("❌ Chat endpoint returned a non-JSON body: %s", truncate(string(raw), maxLogPreview))
		return nil, fmt.Errorf("chat endpoint: %w", apperrors.ErrNoReply)
	}

	// a body without a usable reply field counts as an empty reply
	reply, ok := extractReply(raw)
	if !ok {
		log.Printf("⚠️  Chat endpoint returned no reply field: %s", truncate(string(raw), maxLogPreview))
	}

	span.Status = sentry.SpanStatusOK
	return &ChatResponse{Reply: reply}, nil
}

// extractReply finds the reply text in a chat endpoint body
func extractReply(raw []byte) (string, bool) {
	if !gjson.ValidBytes(raw) {
		return "", false
	}
	for _, path := range replyPaths {
		if r := gjson.GetBytes(raw, path); r.Exists() && r.Type == gjson.String {
			return r.String(), true
		}
	}
	return "", false
}
