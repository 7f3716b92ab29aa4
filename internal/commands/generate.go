package commands

import (
	"fmt"
	"os"

	"github.com/createmusic-space/musicgen/internal/audio"
	"github.com/createmusic-space/musicgen/internal/client"
	"github.com/createmusic-space/musicgen/internal/services"
	"github.com/createmusic-space/musicgen/internal/session"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const cliSessionID = "cli"

func newGenerateCmd(v *viper.Viper) *cobra.Command {
	var (
		scale  string
		length string
		output string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a melody and save it as a WAV file",
		Long: `Send a scale and a note count to the music endpoint and save the returned WAV.

The scale may be given as shown by 'musicgen scales' ("C Major") or as its
wire value ("C_Major"). Length must be a positive whole number.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := resolveConfig(v)
			studio := services.NewStudio(services.StudioConfig{
				Music: client.NewMusicClient(cfg.MusicAPIURL, cfg.Timeout),
				Clips: audio.NewStore(0, 1),
			})

			st := session.NewState(cliSessionID)
			clip, err := studio.Generate(cmd.Context(), st, scale, length)
			if err != nil {
				return fmt.Errorf("%s: %w", st.Snapshot().Error, err)
			}

			if err := os.WriteFile(output, clip.Data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}

			info := clip.Info
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%s, %d notes, %d Hz, %d ch, %d-bit, %.1fs, %d bytes)\n",
				output, clip.Scale.Label(), clip.Length, info.SampleRate, info.Channels, info.BitDepth,
				info.Duration.Seconds(), info.Size)
			return nil
		},
	}

	cmd.Flags().StringVarP(&scale, "scale", "s", "", "scale to generate in (required)")
	cmd.Flags().StringVarP(&length, "length", "l", "", "number of notes (required)")
	cmd.Flags().StringVarP(&output, "output", "o", audio.DownloadName, "file to write")

	return cmd
}
