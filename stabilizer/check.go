package stabilizer

import (
	"context"
	"fmt"

	"github.com/katalvlaran/qfault/circuit"
	"github.com/katalvlaran/qfault/pauli"
)

// Expectation is the expectation value of a Pauli observable on a stabilizer
// state: +1, -1, or 0 when a measurement would be random.
type Expectation int8

// Expectation values.
const (
	Minus  Expectation = -1
	Random Expectation = 0
	Plus   Expectation = 1
)

// String renders "+1", "-1" or "0".
func (e Expectation) String() string {
	switch e {
	case Plus:
		return "+1"
	case Minus:
		return "-1"
	default:
		return "0"
	}
}

// MarshalText encodes the String form.
func (e Expectation) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

// Simulator is a phase-aware stabilizer-state simulator.
//
// Prepare runs fc from |0…0⟩ and replaces any previous state.
// PeekObservableExpectation must not disturb the prepared state.
type Simulator interface {
	Prepare(ctx context.Context, fc circuit.FlatCircuit) error
	PeekObservableExpectation(p pauli.Operator) (Expectation, error)
}

// Result is the outcome for one stabilizer.
type Result struct {
	Stabilizer  pauli.Operator `json:"stabilizer" yaml:"stabilizer"`
	Expectation Expectation    `json:"expectation" yaml:"expectation"`
	Preserved   bool           `json:"preserved" yaml:"preserved"`
}

// Results is the per-stabilizer outcome list, in input order.
type Results []Result

// AllPreserved reports whether every stabilizer has expectation +1.
func (rs Results) AllPreserved() bool {
	for _, r := range rs {
		if !r.Preserved {
			return false
		}
	}

	return true
}

// Failed returns the entries whose expectation is not +1.
func (rs Results) Failed() Results {
	var out Results
	for _, r := range rs {
		if !r.Preserved {
			out = append(out, r)
		}
	}

	return out
}

// Check prepares fc on sim and reports, for each stabilizer, whether the
// prepared state is its +1 eigenstate.
func Check(ctx context.Context, sim Simulator, fc circuit.FlatCircuit, stabilizers []pauli.Operator) (Results, error) {
	if err := sim.Prepare(ctx, fc); err != nil {
		return nil, fmt.Errorf("Check: %w", err)
	}
	out := make(Results, 0, len(stabilizers))
	for i, s := range stabilizers {
		e, err := sim.PeekObservableExpectation(s)
		if err != nil {
			return nil, fmt.Errorf("Check: stabilizer %d (%s): %w", i, s, err)
		}
		out = append(out, Result{Stabilizer: s, Expectation: e, Preserved: e == Plus})
	}

	return out, nil
}
