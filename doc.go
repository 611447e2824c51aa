// Package qfault is a single-fault propagation analyzer for Clifford
// state-preparation circuits.
//
// 🚀 What is qfault?
//
//	A pure-Go library (plus a small debug CLI) that answers one question:
//	if any single gate in this circuit misfires with a Pauli error, does the
//	damage on the data qubits stay correctable or get caught by a flag?
//
//		• Circuits: stim-style text reader, REPEAT unrolling, step markers
//		• Tableaux: phase-free symplectic Clifford tableaux over bitsets
//		• Faults: every X/Y/Z at every gate location, propagated in parallel
//		• Verdict: weighted score, threshold from code distance, violations
//		• Stabilizers: phase-aware CHP simulation to check the prepared state
//
// Under the hood, everything is organized into one package per stage:
//
//	pauli/       phase-free n-qubit Pauli operators (x/z bitsets)
//	circuit/     gate vocabulary, Instruction/Circuit, Flatten, Parse
//	tableau/     Identity, Build, Apply, Prepend, Then
//	fault/       Enumerate, Score, Analyze (errgroup worker pool or sweep)
//	verdict/     Evaluate, Threshold, Report
//	stabilizer/  Simulator, CHP, Check
//	metrics/     Prometheus collector for analyses and verdicts
//	cmd/qfault   `qfault analyze|check|gates`
//
// Quick example (3-qubit cat state with one flag on qubit 3):
//
//	H 0
//	CX 0 3      ┐ the flag sees a fault on the control
//	CX 0 1      │ between its two CX gates
//	CX 0 2      │
//	CX 0 3      ┘
//
//	qfault analyze cat.stim --data 0-2 --flag 3
//
//	go get github.com/katalvlaran/qfault
package qfault
