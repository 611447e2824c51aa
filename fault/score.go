// SPDX-License-Identifier: MIT
// Package: qfault/fault
//
// score.go: propagation of one injected Pauli and weight scoring.
//
// Algorithm:
//   1. Cut the suffix: ops strictly after the location's op (InjectAfterGate)
//      or from the op on (InjectBeforeGate).
//   2. Empty suffix: the final operator is the injected single-qubit Pauli.
//      Otherwise build the suffix tableau and apply it.
//   3. DataWeight = non-identity residuals on data qubits; FlagWeight per the
//      configured detection rule on flag qubits.

package fault

import (
	"fmt"

	"github.com/katalvlaran/qfault/circuit"
	"github.com/katalvlaran/qfault/pauli"
	"github.com/katalvlaran/qfault/tableau"
)

// Score propagates injected from loc to the end of fc.
//
// Errors: ErrInvalidLetter, ErrInconsistentPartition,
// circuit.ErrMalformedCircuit (location outside fc), tableau.ErrUnsupportedGate
// (non-Clifford op in the suffix).
func Score(fc circuit.FlatCircuit, loc Location, injected pauli.Letter, part Partition, opts ...Option) (Event, error) {
	cfg := gatherOptions(opts...)
	if injected == pauli.I || injected > pauli.Y {
		return Event{}, fmt.Errorf("Score: %v: %w", injected, ErrInvalidLetter)
	}
	if err := part.Validate(fc.NumQubits); err != nil {
		return Event{}, fmt.Errorf("Score: %w", err)
	}
	if loc.Index < 0 || loc.Index >= fc.Len() || loc.Qubit < 0 || loc.Qubit >= fc.NumQubits {
		return Event{}, fmt.Errorf("Score: location op=%d qubit=%d outside circuit: %w",
			loc.Index, loc.Qubit, circuit.ErrMalformedCircuit)
	}

	fault, err := pauli.Single(fc.NumQubits, loc.Qubit, injected)
	if err != nil {
		return Event{}, fmt.Errorf("Score: %w", err)
	}
	suffix := suffixOf(fc, loc.Index, cfg.injection)
	final := fault
	if len(suffix) > 0 {
		t, err := tableau.Build(suffix, fc.NumQubits)
		if err != nil {
			return Event{}, fmt.Errorf("Score: %w", err)
		}
		if final, err = t.Apply(fault); err != nil {
			return Event{}, fmt.Errorf("Score: %w", err)
		}
	}

	return newEvent(loc, injected, final, part, cfg.flagDetection), nil
}

// suffixOf returns the ops a fault at op index i propagates through.
func suffixOf(fc circuit.FlatCircuit, i int, inj Injection) []circuit.Op {
	if inj == InjectBeforeGate {
		return fc.From(i)
	}

	return fc.Suffix(i)
}

func newEvent(loc Location, injected pauli.Letter, final pauli.Operator, part Partition, mode FlagDetection) Event {
	e := Event{
		Location:   loc,
		Injected:   injected,
		Final:      final,
		DataWeight: final.WeightOn(part.Data),
	}
	if mode == DetectAnyNonIdentity {
		e.FlagWeight = final.WeightOn(part.Flag)
	} else {
		e.FlagWeight = final.XWeightOn(part.Flag)
	}

	return e
}

// propagate applies t (nil = identity) to a single-qubit fault and scores
// every configured letter at loc.
func propagate(t *tableau.Tableau, n int, loc Location, part Partition, cfg config) ([]Event, error) {
	out := make([]Event, 0, len(cfg.paulis))
	for _, l := range cfg.paulis {
		fault, err := pauli.Single(n, loc.Qubit, l)
		if err != nil {
			return nil, err
		}
		final := fault
		if t != nil {
			if final, err = t.Apply(fault); err != nil {
				return nil, err
			}
		}
		out = append(out, newEvent(loc, l, final, part, cfg.flagDetection))
	}

	return out, nil
}
