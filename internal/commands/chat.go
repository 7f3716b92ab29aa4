package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	apperrors "github.com/createmusic-space/musicgen/internal/errors"
	"github.com/createmusic-space/musicgen/internal/llm"
	"github.com/createmusic-space/musicgen/internal/observability"
	"github.com/createmusic-space/musicgen/internal/prompt"
	"github.com/createmusic-space/musicgen/internal/services"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const botName = "MusicBot"

func newChatCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "chat [message]",
		Short: "Talk to MusicBot",
		Long: `Talk to MusicBot through the configured chat backend.

With a message argument, sends it and prints the reply. Without one, starts
an interactive session that keeps the conversation. Type 'exit' or 'quit'
to leave. Empty lines are ignored.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := resolveConfig(v)
			chat, err := newChatSession(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			if len(args) == 1 {
				return sendOne(cmd.Context(), chat, args[0], cmd.OutOrStdout())
			}
			return runREPL(cmd.Context(), chat, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func newChatSession(ctx context.Context, cfg cliConfig) (*services.ChatSession, error) {
	factory := llm.NewProviderFactory(llm.FactoryConfig{
		ChatAPIURL:    cfg.ChatAPIURL,
		OpenAIAPIKey:  cfg.OpenAIAPIKey,
		OpenAIBaseURL: cfg.OpenAIBaseURL,
		GeminiAPIKey:  cfg.GeminiAPIKey,
		Timeout:       cfg.Timeout,
	})
	provider, err := factory.GetProvider(ctx, cfg.ChatBackend)
	if err != nil {
		return nil, err
	}

	systemPrompt, err := prompt.NewPromptBuilder().BuildPrompt()
	if err != nil {
		return nil, fmt.Errorf("failed to build system prompt: %w", err)
	}

	return services.NewChatSession(llm.WithTracing(provider, observability.GetClient()), systemPrompt, cfg.ChatModel), nil
}

func sendOne(ctx context.Context, chat *services.ChatSession, message string, out io.Writer) error {
	turn, err := chat.Send(ctx, message)
	if errors.Is(err, apperrors.ErrEmptyMessage) {
		return err
	}
	_, _ = fmt.Fprintf(out, "%s: %s\n", botName, turn.Text)
	return err
}

func runREPL(ctx context.Context, chat *services.ChatSession, in io.Reader, out io.Writer) error {
	_, _ = fmt.Fprintf(out, "Talk to %s. Type 'exit' to quit.\n", botName)
	scanner := bufio.NewScanner(in)
	for {
		_, _ = fmt.Fprint(out, "you> ")
		if !scanner.Scan() {
			_, _ = fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		// Backend failures are already shown as the bot's turn
		turn, _ := chat.Send(ctx, line)
		_, _ = fmt.Fprintf(out, "%s: %s\n", botName, turn.Text)
	}
}
