package embedded

import (
	_ "embed"
)

// Embedded prompt data for the chat backends
//
//go:embed data/chat_system_prompt.txt
var ChatSystemPromptTxt []byte

//go:embed data/scale_moods.csv
var ScaleMoodsCsv []byte
