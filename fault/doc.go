// Package fault enumerates single-fault locations in a flat Clifford circuit,
// propagates each injected Pauli to the end of the circuit and scores the
// residual error on data and flag qubits.
//
// Three entry points, from narrow to wide:
//
//   - Enumerate lists the candidate locations in deterministic order.
//   - Score evaluates one (location, Pauli) pair.
//   - Analyze evaluates every location with every injectable Pauli on a
//     bounded worker pool and returns the merged, ordered event list.
//
// Behavior that differs between checkers of the same family is configuration,
// not separate code paths:
//
//   - WithInjection selects whether the fault sits after its gate (suffix
//     starts at the next op) or before it (suffix includes the gate).
//   - WithFlagDetection selects whether a flag fires on an X component only
//     (Z-basis flag readout) or on any non-identity residual.
//
// Events are ordered by (Step, Index, Qubit, Injected) with X < Y < Z.
// The order is independent of the worker count and of the strategy.
//
// Complexity (StrategyIndependent): O(L·S·n²/w) for L locations, mean suffix
// length S and register size n. StrategySweep builds all suffix tableaux in
// one backward pass: O(N·n + L·n²/w) for N ops.
package fault
