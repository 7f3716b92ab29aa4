package prompt

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/createmusic-space/musicgen/internal/models"
)

// Builder builds the system prompt sent to LLM chat backends
type Builder struct {
	loader *Loader
}

// NewPromptBuilder creates a new prompt builder
func NewPromptBuilder() *Builder {
	return &Builder{loader: NewPromptLoader()}
}

// BuildPrompt builds the complete MusicBot system prompt
func (b *Builder) BuildPrompt() (string, error) {
	system, err := b.loader.GetChatSystemPrompt()
	if err != nil {
		return "", err
	}

	scales, err := b.scaleSection()
	if err != nil {
		return "", err
	}

	return strings.Join([]string{system, scales}, "\n\n"), nil
}

// scaleSection lists the scales the generator accepts, with their moods
func (b *Builder) scaleSection() (string, error) {
	raw, err := b.loader.GetScaleMoods()
	if err != nil {
		return "", err
	}

	records, err := csv.NewReader(strings.NewReader(raw)).ReadAll()
	if err != nil {
		return "", fmt.Errorf("failed to parse scale moods: %w", err)
	}

	moods := make(map[models.Scale][]string, len(records))
	for i, rec := range records {
		if i == 0 || len(rec) < 3 {
			continue // header
		}
		if s, ok := models.LookupScale(rec[0]); ok {
			moods[s] = rec[1:]
		}
	}

	var sb strings.Builder
	sb.WriteString("The generator accepts exactly these scales:\n")
	for _, s := range models.Scales {
		if m, ok := moods[s]; ok {
			fmt.Fprintf(&sb, "- %s: %s (try about %s notes)\n", s.Label(), m[0], m[1])
		} else {
			fmt.Fprintf(&sb, "- %s\n", s.Label())
		}
	}
	sb.WriteString("Length is the number of notes and must be a positive whole number.")
	return sb.String(), nil
}
