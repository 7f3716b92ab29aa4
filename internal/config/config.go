package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the application configuration
// Note: generation and chat happen in remote services; this process only holds
// per-browser session state in memory
type Config struct {
	// Environment
	Environment string
	Port        string

	// Remote endpoints
	MusicAPIURL    string        // POST {scale, length} -> WAV
	ChatAPIURL     string        // POST {message} -> {reply}
	RequestTimeout time.Duration // Applied to every outbound call

	// Chat backend
	// - "endpoint": plain JSON chat endpoint at ChatAPIURL (default)
	// - "openai": OpenAI-compatible chat completions
	// - "gemini": Google Gemini
	ChatBackend   string
	ChatModel     string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	GeminiAPIKey  string

	// Sessions and generated audio
	SessionSecret   string
	SessionTTL      time.Duration
	AudioTTL        time.Duration
	AudioMaxEntries int

	// Rate limiting (requests per minute per client IP, 0 disables)
	RateLimitPerMinute int

	// Origins allowed to call the JSON API with credentials
	CORSAllowedOrigins []string

	// Observability
	SentryDSN         string // Sentry DSN for error tracking
	LangfusePublicKey string // Langfuse public key
	LangfuseSecretKey string // Langfuse secret key
	LangfuseHost      string // Langfuse host URL (cloud or self-hosted)
	LangfuseEnabled   bool   // Feature flag for Langfuse
}

// DefaultSessionSecret is only fit for local development
const DefaultSessionSecret = "musicgen-dev-secret-change-me"

// ErrDefaultSessionSecret is returned by Validate in production without SESSION_SECRET
var ErrDefaultSessionSecret = errors.New("SESSION_SECRET must be set in production")

const (
	defaultTimeoutSeconds  = 120
	defaultSessionTTLMins  = 60
	defaultAudioTTLMins    = 30
	defaultAudioMaxEntries = 256
	defaultRateLimit       = 60
)

func Load() *Config {
	return &Config{
		Environment:        getEnv("ENVIRONMENT", "development"),
		Port:               getEnv("PORT", "8080"),
		MusicAPIURL:        getEnv("MUSIC_API_URL", "http://localhost:5000/generate-music"),
		ChatAPIURL:         getEnv("CHAT_API_URL", "http://localhost:5000/chat"),
		RequestTimeout:     time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", defaultTimeoutSeconds)) * time.Second,
		ChatBackend:        getEnv("CHAT_BACKEND", "endpoint"),
		ChatModel:          getEnv("CHAT_MODEL", ""),
		OpenAIAPIKey:       getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:      getEnv("OPENAI_BASE_URL", "https://api.shapes.inc/v1/"),
		GeminiAPIKey:       getEnv("GEMINI_API_KEY", ""),
		SessionSecret:      getEnv("SESSION_SECRET", DefaultSessionSecret),
		SessionTTL:         time.Duration(getEnvInt("SESSION_TTL_MINUTES", defaultSessionTTLMins)) * time.Minute,
		AudioTTL:           time.Duration(getEnvInt("AUDIO_TTL_MINUTES", defaultAudioTTLMins)) * time.Minute,
		AudioMaxEntries:    getEnvInt("AUDIO_MAX_ENTRIES", defaultAudioMaxEntries),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", defaultRateLimit),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS"),
		SentryDSN:          getEnv("SENTRY_DSN", ""),
		LangfusePublicKey:  getEnv("LANGFUSE_PUBLIC_KEY", ""),
		LangfuseSecretKey:  getEnv("LANGFUSE_SECRET_KEY", ""),
		LangfuseHost:       getEnv("LANGFUSE_HOST", "https://cloud.langfuse.com"),
		LangfuseEnabled:    getEnv("LANGFUSE_ENABLED", "false") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

// getEnvList splits a comma separated variable, dropping empty items
func getEnvList(key string) []string {
	var items []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// Validate rejects settings that are unsafe to run with
func (c *Config) Validate() error {
	if c.IsProduction() && c.SessionSecret == DefaultSessionSecret {
		return ErrDefaultSessionSecret
	}
	return nil
}

// IsProduction returns true when running with ENVIRONMENT=production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
