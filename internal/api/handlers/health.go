package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports what this instance talks to
type HealthHandler struct {
	musicEndpoint string
	chatBackend   string
}

func NewHealthHandler(musicEndpoint, chatBackend string) *HealthHandler {
	return &HealthHandler{musicEndpoint: musicEndpoint, chatBackend: chatBackend}
}

// HealthCheck returns the health status of the API
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	musicStatus := "enabled"
	if h.musicEndpoint == "" {
		musicStatus = "disabled"
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"music_endpoint": gin.H{
			"status": musicStatus,
			"url":    h.musicEndpoint,
		},
		"chat_backend": h.chatBackend,
	})
}
