package llm

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/createmusic-space/musicgen/internal/models"
	"github.com/getsentry/sentry-go"
	"google.golang.org/genai"
)

const (
	providerNameGemini = "gemini"
	geminiUserRole     = "user"
	geminiModelRole    = "model"

	// DefaultGeminiModel is used when CHAT_MODEL is not set
	DefaultGeminiModel = "gemini-2.5-flash"
)

// GeminiProvider implements the Provider interface using Google's Gemini API
type GeminiProvider struct {
	client *genai.Client
}

// NewGeminiProvider creates a new Gemini provider
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{
		client: client,
	}, nil
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return providerNameGemini
}

// Chat sends the conversation to Gemini
func (p *GeminiProvider) Chat(ctx context.Context, request *ChatRequest) (*ChatResponse, error) {
	startTime := time.Now()
	model := request.Model
	if model == "" {
		model = DefaultGeminiModel
	}
	log.Printf("💬 GEMINI CHAT REQUEST STARTED (Model: %s)", model)

	// Start Sentry transaction
	transaction := sentry.StartTransaction(ctx, "gemini.chat")
	defer transaction.Finish()

	transaction.SetTag("model", model)
	transaction.SetTag("provider", providerNameGemini)

	contents := p.buildGeminiContents(request)

	var config *genai.GenerateContentConfig
	if request.SystemPrompt != "" {
		config = &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{{Text: request.SystemPrompt}},
			},
		}
	}

	span := transaction.StartChild("gemini.api_call")
	result, err := p.client.Models.GenerateContent(span.Context(), model, contents, config)
	span.Finish()

	if err != nil {
		log.Printf("❌ GEMINI REQUEST FAILED after %v: %v", time.Since(startTime), err)
		transaction.SetTag("success", "false")
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	reply, err := extractGeminiText(result)
	if err != nil {
		transaction.SetTag("success", "false")
		return nil, err
	}

	response := &ChatResponse{Reply: reply}
	if result.UsageMetadata != nil {
		response.Usage = &Usage{
			InputTokens:  int(result.UsageMetadata.PromptTokenCount),
			OutputTokens: int(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:  int(result.UsageMetadata.TotalTokenCount),
		}
	}

	log.Printf("✅ GEMINI CHAT COMPLETED in %v (reply: %d chars)", time.Since(startTime), len(reply))
	transaction.SetTag("success", "true")
	return response, nil
}

// buildGeminiContents converts history and the new message to Gemini Content
func (p *GeminiProvider) buildGeminiContents(request *ChatRequest) []*genai.Content {
	history := recentHistory(request.History)
	contents := make([]*genai.Content, 0, len(history)+1)

	for _, turn := range history {
		if turn.Text == "" {
			continue
		}
		role := geminiUserRole
		if turn.Sender == models.SenderBot {
			role = geminiModelRole
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: turn.Text}},
		})
	}

	return append(contents, &genai.Content{
		Role:  geminiUserRole,
		Parts: []*genai.Part{{Text: request.Message}},
	})
}

func extractGeminiText(result *genai.GenerateContentResponse) (string, error) {
	if result == nil || len(result.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in Gemini response")
	}

	candidate := result.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no parts in Gemini response")
	}

	var text string
	for _, part := range candidate.Content.Parts {
		text += part.Text
	}
	return text, nil
}
