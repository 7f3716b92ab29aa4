package commands

import (
	"fmt"

	"github.com/createmusic-space/musicgen/internal/models"
	"github.com/spf13/cobra"
)

func newScalesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scales",
		Short: "List the scales the generator accepts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, s := range models.Scales {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-8s  %s\n", s.Label(), s.Value())
			}
			return nil
		},
	}
}
