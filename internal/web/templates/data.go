// Package templates holds the server-rendered UI components.
package templates

import (
	"fmt"
	"strings"

	"github.com/createmusic-space/musicgen/internal/models"
)

// DownloadLabel is the text of the download link
const DownloadLabel = "Download WAV File"

// GeneratorData is what the generator panel shows
type GeneratorData struct {
	Scale    string // raw form value, re-selected on render
	Length   string
	Error    string
	Clip     *models.Clip
	AudioURL string
	Busy     bool
}

// ChatData is what the chat panel shows
type ChatData struct {
	Turns []models.ChatTurn
	Draft string
	Busy  bool
}

// HomeData is the full page
type HomeData struct {
	Generator GeneratorData
	Chat      ChatData
}

func isSelected(raw string, s models.Scale) bool {
	selected, ok := models.LookupScale(raw)
	return ok && selected == s
}

func clipSummary(clip *models.Clip) string {
	return fmt.Sprintf("%s · %d notes · %s", clip.Scale.Label(), clip.Length, describeAudio(clip.Info))
}

func describeAudio(info models.AudioInfo) string {
	parts := []string{fmt.Sprintf("%d Hz", info.SampleRate)}
	if info.Channels == 1 {
		parts = append(parts, "mono")
	} else if info.Channels > 1 {
		parts = append(parts, fmt.Sprintf("%d ch", info.Channels))
	}
	if info.Duration > 0 {
		parts = append(parts, fmt.Sprintf("%.1fs", info.Duration.Seconds()))
	}
	return strings.Join(parts, " · ")
}
