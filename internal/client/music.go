package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/createmusic-space/musicgen/internal/errors"
	"github.com/createmusic-space/musicgen/internal/logger"
	"github.com/createmusic-space/musicgen/internal/models"
	"github.com/getsentry/sentry-go"
)

const (
	maxAudioBytes        = 64 << 20
	maxErrorPreviewChars = 200
)

// MusicClient calls the remote music-generation endpoint
type MusicClient struct {
	endpoint   string
	httpClient *http.Client
}

// NewMusicClient creates a client for the given endpoint URL
func NewMusicClient(endpoint string, timeout time.Duration) *MusicClient {
	return &MusicClient{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Endpoint returns the configured URL
func (c *MusicClient) Endpoint() string {
	return c.endpoint
}

// Generate posts the request and returns the audio body.
// Callers are expected to have validated req with ValidateGenerationForm.
func (c *MusicClient) Generate(ctx context.Context, req models.GenerationRequest) ([]byte, error) {
	if c.endpoint == "" {
		return nil, fmt.Errorf("music endpoint: %w", apperrors.ErrNotConfigured)
	}
	if req.Length <= 0 {
		return nil, apperrors.NewValidationError("length", apperrors.ErrInvalidLength)
	}

	span := sentry.StartSpan(ctx, "music.generate")
	span.SetTag("scale", req.Scale)
	span.SetData("length", req.Length)
	defer span.Finish()

	start := time.Now()
	data, err := c.post(span.Context(), req)
	logger.LogUpstreamCall(ctx, c.endpoint, time.Since(start), err, logger.Fields{
		"scale":  req.Scale,
		"length": req.Length,
		"bytes":  len(data),
	})
	if err != nil {
		span.Status = sentry.SpanStatusInternalError
		return nil, err
	}
	span.Status = sentry.SpanStatusOK
	return data, nil
}

func (c *MusicClient) post(ctx context.Context, req models.GenerationRequest) ([]byte, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "audio/wav")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, apperrors.NewAPIError(0, c.endpoint, err.Error())
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAudioBytes))
	if err != nil {
		return nil, apperrors.NewAPIError(resp.StatusCode, c.endpoint, "failed to read body: "+err.Error())
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, apperrors.NewAPIError(resp.StatusCode, c.endpoint, preview(data))
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("music endpoint: %w", apperrors.ErrEmptyAudio)
	}
	return data, nil
}

func preview(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorPreviewChars {
		return s[:maxErrorPreviewChars] + "..."
	}
	return s
}
