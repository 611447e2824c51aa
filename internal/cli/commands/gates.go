package commands

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/qfault/internal/cli/config"
	"github.com/katalvlaran/qfault/internal/cli/output"
)

// NewGatesCommand creates the gates command.
func NewGatesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "gates",
		Short: "List the recognized instruction vocabulary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.FromContext(cmd.Context())
			return output.NewRenderer(cmd.OutOrStdout(), cfg.Output).Gates(output.Vocabulary())
		},
	}
}
