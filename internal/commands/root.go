// Package commands provides the musicgen command-line interface.
package commands

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Execute runs the root command
func Execute(version string) {
	if err := NewRootCmd(version).Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree. Each call gets its own viper instance.
func NewRootCmd(version string) *cobra.Command {
	v := viper.New()
	var cfgFile string

	root := &cobra.Command{
		Use:   "musicgen",
		Short: "Generate short melodies and chat with MusicBot from the terminal",
		Long: `musicgen talks to the same music and chat endpoints as the web console.

Examples:
  musicgen scales
  musicgen generate --scale "C Major" --length 16 -o melody.wav
  musicgen chat
  musicgen chat "Which scale sounds calm?"`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(v, cfgFile, cmd.ErrOrStderr())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./musicgen.yaml)")
	flags.String("music-url", "", "music generation endpoint")
	flags.String("chat-url", "", "chat endpoint used by the endpoint backend")
	flags.StringP("backend", "b", "", "chat backend (endpoint, openai, gemini)")
	flags.StringP("model", "m", "", "chat model for the openai and gemini backends")
	flags.Int("timeout", 0, "request timeout in seconds")
	bindFlags(v, flags)

	root.AddCommand(newGenerateCmd(v))
	root.AddCommand(newChatCmd(v))
	root.AddCommand(newScalesCmd())
	root.AddCommand(newVersionCmd(version))

	return root
}
