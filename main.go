package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/createmusic-space/musicgen/internal/api"
	apimiddleware "github.com/createmusic-space/musicgen/internal/api/middleware"
	"github.com/createmusic-space/musicgen/internal/audio"
	"github.com/createmusic-space/musicgen/internal/client"
	"github.com/createmusic-space/musicgen/internal/config"
	"github.com/createmusic-space/musicgen/internal/llm"
	"github.com/createmusic-space/musicgen/internal/logger"
	"github.com/createmusic-space/musicgen/internal/metrics"
	"github.com/createmusic-space/musicgen/internal/observability"
	"github.com/createmusic-space/musicgen/internal/prompt"
	"github.com/createmusic-space/musicgen/internal/services"
	"github.com/createmusic-space/musicgen/internal/session"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const (
	sentryFlushTimeout    = 2 * time.Second
	environmentProduction = "production"
	sweepInterval         = time.Minute
)

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

// GetVersion returns the current release version
func GetVersion() string {
	return releaseVersion
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}
	ctx := context.Background()

	// Initialize Sentry
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			Release:          "musicgen@" + releaseVersion,
			EnableTracing:    true,
			TracesSampleRate: 1.0,
			EnableLogs:       true,
			Debug:            cfg.Environment != environmentProduction,
			BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
				// Filter out sensitive data
				if event.Request != nil {
					event.Request.Headers = filterSensitiveHeaders(event.Request.Headers)
				}
				return event
			},
		}); err != nil {
			log.Printf("Failed to initialize Sentry: %v", err)
		} else {
			log.Printf("✅ Sentry initialized (environment: %s, release: %s)", cfg.Environment, releaseVersion)
			// Flush on shutdown
			defer sentry.Flush(sentryFlushTimeout)
		}
	} else {
		log.Println("⚠️  Sentry not configured (SENTRY_DSN not set)")
	}

	langfuse := observability.InitializeLangfuse(ctx, cfg)

	cloudwatch, err := metrics.NewClient(ctx, cfg.Environment)
	if err != nil {
		log.Printf("⚠️  CloudWatch metrics unavailable: %v", err)
	}

	// Chat backend
	factory := llm.NewProviderFactory(llm.FactoryConfig{
		ChatAPIURL:    cfg.ChatAPIURL,
		OpenAIAPIKey:  cfg.OpenAIAPIKey,
		OpenAIBaseURL: cfg.OpenAIBaseURL,
		GeminiAPIKey:  cfg.GeminiAPIKey,
		Timeout:       cfg.RequestTimeout,
	})
	provider, err := factory.GetProvider(ctx, cfg.ChatBackend)
	if err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to create chat backend:", err)
	}

	systemPrompt, err := prompt.NewPromptBuilder().BuildPrompt()
	if err != nil {
		log.Fatal("Failed to build system prompt:", err)
	}

	clips := audio.NewStore(cfg.AudioTTL, cfg.AudioMaxEntries)
	states := session.NewStore(cfg.SessionTTL)
	limiter := apimiddleware.NewRateLimiter(cfg.RateLimitPerMinute)

	studio := services.NewStudio(services.StudioConfig{
		Music:        client.NewMusicClient(cfg.MusicAPIURL, cfg.RequestTimeout),
		Clips:        clips,
		Chat:         llm.WithTracing(provider, langfuse),
		SystemPrompt: systemPrompt,
		Model:        cfg.ChatModel,
		CloudWatch:   cloudwatch,
	})

	go sweep(ctx, states, clips, limiter)

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := api.SetupRouter(api.Deps{
		Studio:        studio,
		Sessions:      session.NewManager(cfg.SessionSecret, states, cfg.SessionTTL, cfg.IsProduction()),
		RateLimiter:   limiter,
		CloudWatch:    cloudwatch,
		MusicEndpoint: cfg.MusicAPIURL,
		ChatBackend:   provider.Name(),
		StaticDir:     "./static",
		CORSOrigins:   cfg.CORSAllowedOrigins,
	}, GetVersion())

	log.Printf("🚀 Starting server on port %s (music: %s, chat: %s)", cfg.Port, cfg.MusicAPIURL, provider.Name())
	if err := router.Run(":" + cfg.Port); err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to start server:", err)
	}
}

// sweep drops idle sessions, expired clips and idle rate-limit buckets
func sweep(ctx context.Context, states *session.Store, clips *audio.Store, limiter *apimiddleware.RateLimiter) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			expired := states.Sweep()
			removed := clips.Sweep()
			for _, id := range expired {
				removed += clips.DeleteSession(id)
			}
			limiter.Sweep()
			if len(expired) > 0 || removed > 0 {
				logger.Debug("Swept expired state", logger.Fields{
					"sessions": len(expired),
					"clips":    removed,
				})
			}
		}
	}
}

func filterSensitiveHeaders(headers map[string]string) map[string]string {
	filtered := make(map[string]string)
	sensitiveKeys := map[string]bool{
		"authorization": true,
		"cookie":        true,
		"x-api-key":     true,
	}

	for k, v := range headers {
		if sensitiveKeys[strings.ToLower(k)] {
			filtered[k] = "[REDACTED]"
		} else {
			filtered[k] = v
		}
	}
	return filtered
}
