// Package cli provides the qfault command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/qfault/internal/cli/commands"
	"github.com/katalvlaran/qfault/internal/cli/config"
)

// Version is set at build time.
var Version = "0.1.0"

// NewRootCmd creates the root command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "qfault",
		Short: "Single-fault propagation analysis for Clifford circuits",
		Long: `qfault checks whether a stabilizer state-preparation circuit is
fault-tolerant: it injects every single-qubit Pauli fault, propagates it
through the rest of the circuit by Clifford conjugation and reports the
residual errors that are neither correctable nor flagged.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := cfg.NewLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if cfg.FileUsed != "" {
				logger.Debug("using config file", "path", cfg.FileUsed)
			}
			cmd.SetContext(config.WithContext(cmd.Context(), cfg, logger))

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./qfault.yaml)")
	pf.StringP("output", "o", "", "output format (table|json|yaml)")
	pf.String("log-level", "", "log level (debug|info|warn|error)")
	pf.String("log-format", "", "log format (text|json)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{config.OutputTable, config.OutputJSON, config.OutputYAML}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewAnalyzeCommand())
	rootCmd.AddCommand(commands.NewCheckCommand())
	rootCmd.AddCommand(commands.NewGatesCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(Version))

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	return nil
}
