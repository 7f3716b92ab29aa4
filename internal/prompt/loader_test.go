package prompt

import (
	"strings"
	"testing"
)

func TestNewPromptLoader(t *testing.T) {
	loader := NewPromptLoader()
	if loader == nil {
		t.Fatal("NewPromptLoader() returned nil")
	}
}

func TestGetChatSystemPrompt(t *testing.T) {
	loader := NewPromptLoader()
	content, err := loader.GetChatSystemPrompt()

	if err != nil {
		t.Fatalf("GetChatSystemPrompt() returned error: %v", err)
	}

	if content == "" {
		t.Error("GetChatSystemPrompt() returned empty string")
	}

	if !strings.Contains(content, "MusicBot") {
		t.Error("GetChatSystemPrompt() does not contain expected content")
	}

	if strings.HasSuffix(content, "\n") {
		t.Error("GetChatSystemPrompt() was not trimmed")
	}
}

func TestGetScaleMoods(t *testing.T) {
	loader := NewPromptLoader()
	content, err := loader.GetScaleMoods()

	if err != nil {
		t.Fatalf("GetScaleMoods() returned error: %v", err)
	}

	if !strings.HasPrefix(content, "scale,mood") {
		t.Error("GetScaleMoods() is missing the CSV header")
	}
}
