package middleware

import (
	"net/http"

	"github.com/createmusic-space/musicgen/internal/logger"
	"github.com/createmusic-space/musicgen/internal/session"
	"github.com/gin-gonic/gin"
)

const (
	sessionIDKey    = "session_id"
	sessionStateKey = "session_state"
)

// Session loads the browser's State from its signed cookie and attaches it to the context
func Session(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := manager.Load(c.Writer, c.Request)
		if err != nil {
			logger.Error("Failed to load session", err, logger.Fields{
				"path": c.Request.URL.Path,
			})
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session"})
			c.Abort()
			return
		}

		c.Set(sessionIDKey, st.ID)
		c.Set(sessionStateKey, st)

		c.Next()
	}
}

// GetSession retrieves the session state from context
func GetSession(c *gin.Context) (*session.State, bool) {
	val, exists := c.Get(sessionStateKey)
	if !exists {
		return nil, false
	}
	st, ok := val.(*session.State)
	return st, ok
}
