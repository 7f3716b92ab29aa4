package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/a-h/templ"
	"github.com/createmusic-space/musicgen/internal/audio"
	apperrors "github.com/createmusic-space/musicgen/internal/errors"
	"github.com/createmusic-space/musicgen/internal/logger"
	"github.com/createmusic-space/musicgen/internal/middleware"
	"github.com/createmusic-space/musicgen/internal/services"
	"github.com/createmusic-space/musicgen/internal/session"
	"github.com/createmusic-space/musicgen/internal/web/templates"
	"github.com/gin-gonic/gin"
)

type WebHandler struct {
	studio *services.Studio
}

func NewWebHandler(studio *services.Studio) *WebHandler {
	return &WebHandler{studio: studio}
}

// Home renders the console for the current session
func (h *WebHandler) Home(c *gin.Context) {
	st, ok := middleware.GetSession(c)
	if !ok {
		c.String(http.StatusInternalServerError, "Session not loaded")
		return
	}

	snap := st.Snapshot()
	h.renderComponent(c, http.StatusOK, templates.Home(templates.HomeData{
		Generator: generatorData(snap),
		Chat:      chatData(snap),
	}))
}

// Generate handles the generator form. HTMX requests get the panel back,
// plain form posts are redirected to the page.
func (h *WebHandler) Generate(c *gin.Context) {
	st, ok := middleware.GetSession(c)
	if !ok {
		c.String(http.StatusInternalServerError, "Session not loaded")
		return
	}

	_, err := h.studio.Generate(c.Request.Context(), st, c.PostForm("scale"), c.PostForm("length"))
	if !isHTMX(c) {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	if errors.Is(err, apperrors.ErrBusy) {
		// htmx does not swap error responses, the panel stays as is
		c.Status(http.StatusConflict)
		return
	}
	h.renderComponent(c, http.StatusOK, templates.GeneratorPanel(generatorData(st.Snapshot())))
}

// Audio serves a generated clip to the session that created it
func (h *WebHandler) Audio(c *gin.Context) {
	st, ok := middleware.GetSession(c)
	if !ok {
		c.String(http.StatusInternalServerError, "Session not loaded")
		return
	}

	clip, found := h.studio.Clips().Get(st.ID, c.Param("id"))
	if !found {
		fields := logger.WithContext(c)
		fields["clip_id"] = c.Param("id")
		logger.Warn("Audio clip not found", fields)
		c.String(http.StatusNotFound, "Audio not found")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, audio.DownloadName))
	c.Header("Cache-Control", "private, max-age=0")
	c.Data(http.StatusOK, audio.ContentType, clip.Data)
}

// ChatSend handles the chat input
func (h *WebHandler) ChatSend(c *gin.Context) {
	st, ok := middleware.GetSession(c)
	if !ok {
		c.String(http.StatusInternalServerError, "Session not loaded")
		return
	}

	_, err := h.studio.SendChat(c.Request.Context(), st, c.PostForm("message"))
	if !isHTMX(c) {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	if errors.Is(err, apperrors.ErrBusy) {
		c.Status(http.StatusConflict)
		return
	}
	h.renderComponent(c, http.StatusOK, templates.ChatPanel(chatData(st.Snapshot())))
}

// ChatLog renders only the chat log. The log polls it while a reply is pending.
func (h *WebHandler) ChatLog(c *gin.Context) {
	st, ok := middleware.GetSession(c)
	if !ok {
		c.String(http.StatusInternalServerError, "Session not loaded")
		return
	}
	h.renderComponent(c, http.StatusOK, templates.ChatLog(chatData(st.Snapshot())))
}

func (h *WebHandler) renderComponent(c *gin.Context, status int, component templ.Component) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(c.Request.Context(), c.Writer); err != nil {
		logger.Error("Failed to render template", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render template"})
	}
}

func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

func generatorData(snap session.Snapshot) templates.GeneratorData {
	data := templates.GeneratorData{
		Scale:  snap.Scale,
		Length: snap.Length,
		Error:  snap.Error,
		Clip:   snap.Clip,
		Busy:   snap.Busy,
	}
	if snap.Clip != nil {
		data.AudioURL = "/audio/" + snap.Clip.ID
	}
	return data
}

func chatData(snap session.Snapshot) templates.ChatData {
	return templates.ChatData{
		Turns: snap.Turns,
		Draft: snap.Draft,
		Busy:  snap.Busy,
	}
}
