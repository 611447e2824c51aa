package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/qfault/internal/cli/config"
	"github.com/katalvlaran/qfault/internal/cli/output"
	"github.com/katalvlaran/qfault/pauli"
	"github.com/katalvlaran/qfault/stabilizer"
)

// ErrNotPreserved is returned by check when a stabilizer is lost.
var ErrNotPreserved = errors.New("stabilizers not preserved")

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [circuit] --stabilizer XXXXX --stabilizer ZZIII ...",
		Short: "Verify that a circuit prepares the +1 eigenstate of given stabilizers",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCheck,
	}
	cmd.Flags().StringSliceP("stabilizer", "s", nil, "stabilizer as a Pauli string (repeatable)")
	cmd.Flags().Int64("seed", 1, "seed for random measurement outcomes")
	_ = cmd.MarkFlagRequired("stabilizer")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	logger := config.Logger(ctx)

	raw, err := cmd.Flags().GetStringSlice("stabilizer")
	if err != nil {
		return err
	}
	stabs := make([]pauli.Operator, 0, len(raw))
	for _, s := range raw {
		p, err := pauli.Parse(s)
		if err != nil {
			return fmt.Errorf("stabilizer %q: %w", s, err)
		}
		stabs = append(stabs, p)
	}

	fc, name, err := loadCircuit(args, cmd.InOrStdin(), logger)
	if err != nil {
		return err
	}

	runID := output.NewRunID()
	sim := stabilizer.NewCHP(stabilizer.WithSeed(cfg.Seed), stabilizer.WithLogger(logger.With("run_id", runID)))
	rs, err := stabilizer.Check(ctx, sim, fc, stabs)
	if err != nil {
		return fmt.Errorf("check %s: %w", name, err)
	}

	c := output.Check{
		RunID:     runID,
		Source:    name,
		NumQubits: fc.NumQubits,
		Preserved: rs.AllPreserved(),
		Results:   rs,
		Outcomes:  sim.Outcomes(),
	}
	if err := output.NewRenderer(cmd.OutOrStdout(), cfg.Output).Check(c); err != nil {
		return err
	}
	if !c.Preserved {
		return ErrNotPreserved
	}

	return nil
}
