package main

import (
	"io"
	"log"
	"os"

	"github.com/createmusic-space/musicgen/internal/commands"
	"github.com/joho/godotenv"
)

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

func main() {
	// A .env file is optional for the CLI
	_ = godotenv.Load()

	// Request logs are for the server; keep the terminal clean unless asked
	if os.Getenv("MUSICGEN_DEBUG") == "" {
		log.SetOutput(io.Discard)
	}

	commands.Execute(releaseVersion)
}
