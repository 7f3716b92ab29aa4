package prompt

import (
	"strings"

	"github.com/createmusic-space/musicgen/pkg/embedded"
)

type Loader struct{}

func NewPromptLoader() *Loader {
	return &Loader{}
}

// GetChatSystemPrompt loads the MusicBot system prompt
func (l *Loader) GetChatSystemPrompt() (string, error) {
	return strings.TrimSpace(string(embedded.ChatSystemPromptTxt)), nil
}

// GetScaleMoods loads the scale mood table CSV
func (l *Loader) GetScaleMoods() (string, error) {
	return strings.TrimSpace(string(embedded.ScaleMoodsCsv)), nil
}
