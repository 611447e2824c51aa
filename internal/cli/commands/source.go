package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/katalvlaran/qfault/circuit"
)

// loadCircuit reads and flattens the circuit named by args[0] ("-" or no
// argument reads stdin). It returns the display name alongside.
func loadCircuit(args []string, stdin io.Reader, logger *slog.Logger) (circuit.FlatCircuit, string, error) {
	name := "-"
	if len(args) > 0 {
		name = args[0]
	}

	var r io.Reader = stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return circuit.FlatCircuit{}, name, err
		}
		defer f.Close()
		r = f
	} else {
		name = "<stdin>"
	}

	c, err := circuit.Parse(r)
	if err != nil {
		return circuit.FlatCircuit{}, name, fmt.Errorf("%s: %w", name, err)
	}
	fc, err := circuit.Flatten(c, circuit.WithLogger(logger))
	if err != nil {
		return circuit.FlatCircuit{}, name, fmt.Errorf("%s: %w", name, err)
	}
	logger.Debug("circuit loaded", "source", name, "qubits", fc.NumQubits, "ops", fc.Len(), "steps", fc.Steps)

	return fc, name, nil
}
