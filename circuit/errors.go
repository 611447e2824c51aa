// SPDX-License-Identifier: MIT
// Package: qfault/circuit
//
// errors.go: sentinel errors for circuit construction and flattening.
//
// Error policy:
//   • Only sentinel variables are exposed; callers branch with errors.Is.
//   • Context (instruction name, index, line) is attached with %w at the
//     method boundary, never baked into the sentinel text.
//   • Opaque instructions are NOT errors: they are retained and reported as
//     Warnings unless WithStrict() is set.

package circuit

import "errors"

var (
	// ErrMalformedCircuit covers bad qubit indices, odd target counts for
	// two-qubit gates, a pair naming the same qubit twice, REPEAT counts < 1 and
	// text that cannot be read as an instruction.
	ErrMalformedCircuit = errors.New("circuit: malformed circuit")

	// ErrEmptyRegister is returned where a register of at least one qubit is
	// required but zero (or fewer) qubits were declared or inferred.
	ErrEmptyRegister = errors.New("circuit: empty register")

	// ErrTooLarge is returned when unrolling REPEAT blocks would exceed the
	// configured op budget (see WithMaxOps).
	ErrTooLarge = errors.New("circuit: flattened circuit exceeds op limit")
)
