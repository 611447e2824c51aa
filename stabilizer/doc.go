// Package stabilizer checks that a circuit prepares a +1 eigenstate of given
// Pauli stabilizers.
//
// The check needs signs, which the phase-free tableau package drops, so it
// runs against a Simulator: anything that can prepare a flat circuit and
// report the expectation of a Pauli observable as +1, -1 or 0 (random).
// CHP is the bundled implementation, an Aaronson–Gottesman stabilizer
// tableau with sign bits that also executes measurements and resets.
package stabilizer
