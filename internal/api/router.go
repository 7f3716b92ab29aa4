package api

import (
	"github.com/createmusic-space/musicgen/internal/api/handlers"
	apimiddleware "github.com/createmusic-space/musicgen/internal/api/middleware"
	"github.com/createmusic-space/musicgen/internal/metrics"
	"github.com/createmusic-space/musicgen/internal/middleware"
	"github.com/createmusic-space/musicgen/internal/services"
	"github.com/createmusic-space/musicgen/internal/session"
	webhandlers "github.com/createmusic-space/musicgen/internal/web/handlers"
	"github.com/gin-gonic/gin"
)

// Deps are the long-lived objects the router hands to handlers
type Deps struct {
	Studio        *services.Studio
	Sessions      *session.Manager
	RateLimiter   *apimiddleware.RateLimiter
	CloudWatch    *metrics.Client // optional
	MusicEndpoint string
	ChatBackend   string
	StaticDir     string
	CORSOrigins   []string // origins allowed to call /api/v1 with credentials
}

func SetupRouter(deps Deps, version string) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking(deps.CloudWatch))

	router.Use(apimiddleware.CORS(deps.CORSOrigins))

	if deps.StaticDir != "" {
		router.Static("/static", deps.StaticDir)
	}

	healthHandler := handlers.NewHealthHandler(deps.MusicEndpoint, deps.ChatBackend)
	router.GET("/health", healthHandler.HealthCheck)

	metricsHandler := handlers.NewMetricsHandler(version, deps.Sessions.States(), deps.Studio.Clips())
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	withSession := middleware.Session(deps.Sessions)
	limited := deps.RateLimiter.Middleware()

	// Web pages
	webHandler := webhandlers.NewWebHandler(deps.Studio)
	web := router.Group("/", withSession)
	{
		web.GET("/", webHandler.Home)
		web.GET("/audio/:id", webHandler.Audio)
		web.GET("/htmx/chat-log", webHandler.ChatLog)
		web.POST("/generate", limited, webHandler.Generate)
		web.POST("/chat/send", limited, webHandler.ChatSend)
	}

	// JSON API for scripted use, same session semantics as the page
	v1 := router.Group("/api/v1", withSession)
	{
		studioHandler := handlers.NewStudioHandler(deps.Studio)
		v1.GET("/scales", handlers.ListScales)
		v1.POST("/generate", limited, studioHandler.Generate)
		v1.POST("/chat", limited, studioHandler.Chat)
	}

	return router
}
