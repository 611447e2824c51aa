package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/qfault/fault"
	"github.com/katalvlaran/qfault/internal/cli/config"
	"github.com/katalvlaran/qfault/internal/cli/output"
	"github.com/katalvlaran/qfault/metrics"
	"github.com/katalvlaran/qfault/verdict"
)

// ErrNotFaultTolerant is returned by analyze under --fail-on-violation.
var ErrNotFaultTolerant = errors.New("circuit is not fault-tolerant")

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [circuit]",
		Short: "Inject every single-qubit fault and judge fault tolerance",
		Long: `Read a circuit (file or stdin), inject X, Y and Z after every gate
location on the selected wires, propagate each to the end of the circuit and
report the residual weights together with the fault-tolerance verdict.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAnalyze,
	}

	f := cmd.Flags()
	f.String("data", "", "data qubits, e.g. 0-4 (default: every non-flag qubit)")
	f.String("flag", "", "flag qubits, e.g. 5,6")
	f.Int("distance", 0, "code distance d (threshold (d-1)/2)")
	f.Int("threshold", -1, "weight threshold, overrides --distance")
	f.Float64("exponent", 1, "weight exponent p in the score")
	f.String("flag-mode", "", "flag detection: x-only|any")
	f.String("injection", "", "fault position relative to its gate: after|before")
	f.String("site-scope", "", "wires faulted: data|all")
	f.Bool("collapse-sites", false, "treat measurements and resets as fault sites")
	f.Int("workers", 0, "parallel workers (default GOMAXPROCS)")
	f.String("strategy", "", "tableau strategy: independent|sweep")
	f.String("metrics-out", "", "write Prometheus metrics to this textfile")
	f.Bool("fail-on-violation", false, "exit non-zero when the circuit is not fault-tolerant")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	logger := config.Logger(ctx)

	fc, name, err := loadCircuit(args, cmd.InOrStdin(), logger)
	if err != nil {
		return err
	}
	part, err := cfg.Partition(fc.NumQubits)
	if err != nil {
		return err
	}
	opts, err := cfg.AnalyzeOptions(logger)
	if err != nil {
		return err
	}

	var col *metrics.Collector
	if cfg.MetricsOut != "" {
		if col, err = metrics.NewCollector(nil); err != nil {
			return err
		}
		defer col.Close()
		opts = append(opts, fault.WithObserver(col))
	}

	runID := output.NewRunID()
	logger = logger.With("run_id", runID)
	logger.Info("analysis started", "source", name, "data", part.Data, "flag", part.Flag)

	events, err := fault.Analyze(ctx, fc, part, opts...)
	if err != nil {
		return fmt.Errorf("analyze %s: %w", name, err)
	}
	report := verdict.Evaluate(events, cfg.VerdictOptions()...)
	logger.Info("analysis finished", "events", report.Total, "violations", len(report.Violations), "score", report.Score)

	if col != nil {
		col.ObserveReport(report)
		if err := col.WriteTextfile(cfg.MetricsOut); err != nil {
			return err
		}
	}

	a := output.Analysis{
		RunID:     runID,
		Source:    name,
		NumQubits: fc.NumQubits,
		Ops:       fc.Len(),
		Partition: part,
		Report:    report,
		Events:    events,
	}
	for _, w := range fc.Warnings {
		a.Warnings = append(a.Warnings, fmt.Sprintf("opaque instruction %s at op %d (step %d)", w.Name, w.Index, w.Step))
	}
	if err := output.NewRenderer(cmd.OutOrStdout(), cfg.Output).Analysis(a); err != nil {
		return err
	}

	if cfg.FailOnViolation && !report.FaultTolerant {
		return ErrNotFaultTolerant
	}

	return nil
}
