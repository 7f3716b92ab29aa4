package llm

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/createmusic-space/musicgen/internal/models"
	"github.com/getsentry/sentry-go"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	providerNameOpenAI = "openai"

	// DefaultOpenAIModel is the shapes.inc MusicBot persona
	DefaultOpenAIModel = "shapesinc/notch-bxwh"
)

// OpenAIProvider implements Provider against any OpenAI-compatible Chat Completions API
type OpenAIProvider struct {
	client  *openai.Client
	baseURL string
}

// NewOpenAIProvider creates a new OpenAI provider. An empty baseURL uses api.openai.com.
func NewOpenAIProvider(apiKey, baseURL string, opts ...option.RequestOption) *OpenAIProvider {
	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(baseURL))
	}
	reqOpts = append(reqOpts, opts...)

	client := openai.NewClient(reqOpts...)
	return &OpenAIProvider{
		client:  &client,
		baseURL: baseURL,
	}
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return providerNameOpenAI
}

// Chat sends the conversation to the chat completions endpoint
func (p *OpenAIProvider) Chat(ctx context.Context, request *ChatRequest) (*ChatResponse, error) {
	startTime := time.Now()
	log.Printf("💬 OPENAI CHAT REQUEST STARTED (Model: %s)", request.Model)

	// Start Sentry transaction
	transaction := sentry.StartTransaction(ctx, "openai.chat")
	defer transaction.Finish()

	transaction.SetTag("model", request.Model)
	transaction.SetTag("provider", providerNameOpenAI)

	params := p.buildRequestParams(request)

	span := transaction.StartChild("openai.api_call")
	resp, err := p.client.Chat.Completions.New(span.Context(), params)
	span.Finish()

	if err != nil {
		log.Printf("❌ OPENAI REQUEST FAILED after %v: %v", time.Since(startTime), err)
		transaction.SetTag("success", "false")
		return nil, fmt.Errorf("openai request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		transaction.SetTag("success", "false")
		return nil, fmt.Errorf("openai response has no choices")
	}

	reply := resp.Choices[0].Message.Content
	usage := &Usage{
		InputTokens:  int(resp.Usage.PromptTokens),
		OutputTokens: int(resp.Usage.CompletionTokens),
		TotalTokens:  int(resp.Usage.TotalTokens),
	}

	log.Printf("✅ OPENAI CHAT COMPLETED in %v (reply: %d chars, tokens: %d)",
		time.Since(startTime), len(reply), usage.TotalTokens)
	transaction.SetTag("success", "true")

	return &ChatResponse{Reply: reply, Usage: usage}, nil
}

// buildRequestParams converts a ChatRequest to chat completion params
func (p *OpenAIProvider) buildRequestParams(request *ChatRequest) openai.ChatCompletionNewParams {
	model := request.Model
	if model == "" {
		model = DefaultOpenAIModel
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(request.History)+2)
	if request.SystemPrompt != "" {
		messages = append(messages, openai.SystemMessage(request.SystemPrompt))
	}
	for _, turn := range recentHistory(request.History) {
		if turn.Sender == models.SenderBot {
			messages = append(messages, openai.AssistantMessage(turn.Text))
		} else {
			messages = append(messages, openai.UserMessage(turn.Text))
		}
	}
	messages = append(messages, openai.UserMessage(request.Message))

	return openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: messages,
	}
}
