package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/createmusic-space/musicgen/internal/audio"
	"github.com/createmusic-space/musicgen/internal/client"
	apperrors "github.com/createmusic-space/musicgen/internal/errors"
	"github.com/createmusic-space/musicgen/internal/logger"
	"github.com/createmusic-space/musicgen/internal/middleware"
	"github.com/createmusic-space/musicgen/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"
)

// StudioHandler exposes the generator and the chat as JSON endpoints
type StudioHandler struct {
	studio *services.Studio
}

func NewStudioHandler(studio *services.Studio) *StudioHandler {
	return &StudioHandler{studio: studio}
}

// Generate accepts {"scale": "C_Major", "length": 16} and answers with the WAV body.
// length may be a number or a numeric string, as a form would send it.
func (h *StudioHandler) Generate(c *gin.Context) {
	st, ok := middleware.GetSession(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Session not loaded"})
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxRequestBodyBytes))
	if err != nil || !gjson.ValidBytes(body) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	scale := gjson.GetBytes(body, "scale").String()
	length := gjson.GetBytes(body, "length").String()

	clip, err := h.studio.Generate(c.Request.Context(), st, scale, length)
	switch {
	case err == nil:
	case errors.Is(err, apperrors.ErrBusy):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case apperrors.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": client.ValidationMessage, "detail": err.Error()})
		return
	default:
		fields := logger.WithContext(c)
		fields["scale"] = scale
		logger.Error("Generation failed", err, fields)
		c.JSON(http.StatusBadGateway, gin.H{"error": services.GenerationErrorMessage})
		return
	}

	c.Header(clipIDHeader, clip.ID)
	c.Header("X-Audio-Sample-Rate", strconv.Itoa(clip.Info.SampleRate))
	c.Header("X-Audio-Channels", strconv.Itoa(clip.Info.Channels))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, audio.DownloadName))
	c.Data(http.StatusOK, audio.ContentType, clip.Data)
}

type chatRequestJSON struct {
	Message string `json:"message"`
}

// Chat accepts {"message": "..."} and answers with the bot's reply
func (h *StudioHandler) Chat(c *gin.Context) {
	st, ok := middleware.GetSession(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Session not loaded"})
		return
	}

	var req chatRequestJSON
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	turn, err := h.studio.SendChat(c.Request.Context(), st, req.Message)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"reply": turn.Text, "turns": st.Turns()})
	case errors.Is(err, apperrors.ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrBusy):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Chat failed", err, logger.WithContext(c))
		c.JSON(http.StatusBadGateway, gin.H{"reply": turn.Text, "error": err.Error()})
	}
}
