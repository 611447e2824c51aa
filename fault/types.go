// SPDX-License-Identifier: MIT
// Package: qfault/fault
//
// types.go: locations, events, the data/flag partition and the mode enums.

package fault

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/katalvlaran/qfault/circuit"
	"github.com/katalvlaran/qfault/pauli"
)

// Location is a candidate injection point: qubit Qubit right after (or
// before, see WithInjection) op Index executes.
type Location struct {
	Step      int              `json:"step" yaml:"step"`
	Index     int              `json:"index" yaml:"index"`
	Qubit     int              `json:"qubit" yaml:"qubit"`
	Gate      circuit.GateKind `json:"gate" yaml:"gate"`
	CoTargets []int            `json:"co_targets,omitempty" yaml:"co_targets,omitempty"`
}

// Event is the outcome of propagating one injected Pauli from a Location to
// the end of the circuit.
type Event struct {
	Location   Location       `json:"location" yaml:"location"`
	Injected   pauli.Letter   `json:"injected" yaml:"injected"`
	Final      pauli.Operator `json:"final" yaml:"final"`
	DataWeight int            `json:"data_weight" yaml:"data_weight"`
	FlagWeight int            `json:"flag_weight" yaml:"flag_weight"`
}

// FinalPaulis returns the non-identity entries of Final keyed by qubit.
func (e Event) FinalPaulis() map[int]pauli.Letter {
	out := make(map[int]pauli.Letter)
	for _, q := range e.Final.Support() {
		out[q] = e.Final.At(q)
	}

	return out
}

// Flagged reports whether at least one flag qubit detected the fault.
func (e Event) Flagged() bool { return e.FlagWeight > 0 }

// String renders "X@H[0] step=0 -> XXXXX data=5 flag=0".
func (e Event) String() string {
	return fmt.Sprintf("%s@%s[%d] step=%d -> %s data=%d flag=%d",
		e.Injected, e.Location.Gate, e.Location.Qubit, e.Location.Step,
		e.Final, e.DataWeight, e.FlagWeight)
}

// compareEvents orders by (Step, Index, Qubit, Injected rank).
func compareEvents(a, b Event) int {
	if c := cmp.Compare(a.Location.Step, b.Location.Step); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Location.Index, b.Location.Index); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Location.Qubit, b.Location.Qubit); c != 0 {
		return c
	}

	return cmp.Compare(a.Injected.Rank(), b.Injected.Rank())
}

// Sort orders events in place by the report key (Step, Index, Qubit,
// Injected) with X < Y < Z.
func Sort(events []Event) {
	slices.SortStableFunc(events, compareEvents)
}

// IsSorted reports whether events follow the report key.
func IsSorted(events []Event) bool {
	return slices.IsSortedFunc(events, compareEvents)
}

// Partition splits the register into data qubits (whose residual weight is
// scored) and flag qubits (whose residual signals detection). Qubits in
// neither set are plain ancillas.
type Partition struct {
	Data []int `json:"data" yaml:"data"`
	Flag []int `json:"flag" yaml:"flag"`
}

// Validate checks the partition against an n-qubit register.
//
// Errors: circuit.ErrEmptyRegister (n <= 0), ErrInconsistentPartition
// (index outside [0,n), repeated index, data/flag overlap).
func (p Partition) Validate(n int) error {
	if n <= 0 {
		return fmt.Errorf("Validate: n=%d: %w", n, circuit.ErrEmptyRegister)
	}
	seen := make([]byte, n) // 1 = data, 2 = flag
	mark := func(role byte, label string, qs []int) error {
		for _, q := range qs {
			if q < 0 || q >= n {
				return fmt.Errorf("Validate: %s qubit %d outside [0,%d): %w", label, q, n, ErrInconsistentPartition)
			}
			switch seen[q] {
			case 0:
				seen[q] = role
			case role:
				return fmt.Errorf("Validate: %s qubit %d listed twice: %w", label, q, ErrInconsistentPartition)
			default:
				return fmt.Errorf("Validate: qubit %d is both data and flag: %w", q, ErrInconsistentPartition)
			}
		}

		return nil
	}
	if err := mark(1, "data", p.Data); err != nil {
		return err
	}

	return mark(2, "flag", p.Flag)
}

// Injection selects where a fault sits relative to its gate.
type Injection uint8

const (
	// InjectAfterGate places the fault after the gate; the suffix starts at
	// the next op.
	InjectAfterGate Injection = iota
	// InjectBeforeGate places the fault before the gate; the suffix includes
	// the gate itself.
	InjectBeforeGate
)

// FlagDetection selects which residual components a flag qubit detects.
type FlagDetection uint8

const (
	// DetectXOnly counts flag qubits whose residual has an X component
	// (X or Y); Z-basis flag readout cannot see Z.
	DetectXOnly FlagDetection = iota
	// DetectAnyNonIdentity counts every flag qubit with a non-identity
	// residual.
	DetectAnyNonIdentity
)

// SiteScope selects which wires are fault sites.
type SiteScope uint8

const (
	// DataSites restricts sites to data qubits.
	DataSites SiteScope = iota
	// AllSites faults every wire a gate touches, ancillas and flags included.
	AllSites
)

// Strategy selects how Analyze obtains the suffix tableaux.
type Strategy uint8

const (
	// StrategyIndependent builds one suffix tableau per op on a worker pool.
	StrategyIndependent Strategy = iota
	// StrategySweep builds all suffix tableaux in one backward prepend pass on
	// the calling goroutine.
	StrategySweep
)

var (
	injectionNames = []string{"after", "before"}
	detectionNames = []string{"x-only", "any"}
	scopeNames     = []string{"data", "all"}
	strategyNames  = []string{"independent", "sweep"}
)

func (i Injection) String() string     { return enumName(injectionNames, int(i)) }
func (d FlagDetection) String() string { return enumName(detectionNames, int(d)) }
func (s SiteScope) String() string     { return enumName(scopeNames, int(s)) }
func (s Strategy) String() string      { return enumName(strategyNames, int(s)) }

// ParseInjection reads "after" or "before".
func ParseInjection(s string) (Injection, error) {
	i, err := parseEnum(injectionNames, s)
	return Injection(i), err
}

// ParseFlagDetection reads "x-only" or "any".
func ParseFlagDetection(s string) (FlagDetection, error) {
	i, err := parseEnum(detectionNames, s)
	return FlagDetection(i), err
}

// ParseSiteScope reads "data" or "all".
func ParseSiteScope(s string) (SiteScope, error) {
	i, err := parseEnum(scopeNames, s)
	return SiteScope(i), err
}

// ParseStrategy reads "independent" or "sweep".
func ParseStrategy(s string) (Strategy, error) {
	i, err := parseEnum(strategyNames, s)
	return Strategy(i), err
}

func enumName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("mode(%d)", i)
	}

	return names[i]
}

func parseEnum(names []string, s string) (int, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, name := range names {
		if key == name {
			return i, nil
		}
	}

	return 0, fmt.Errorf("%q (want one of %s): %w", s, strings.Join(names, ", "), ErrUnknownMode)
}

// Stats summarizes one Analyze call for observers.
type Stats struct {
	Locations int
	Events    int
	Workers   int
	Strategy  Strategy
	Duration  time.Duration
}

// Observer receives progress from Analyze. ObserveLocation is called from
// worker goroutines and must be safe for concurrent use.
type Observer interface {
	ObserveLocation(loc Location, events []Event)
	ObserveAnalysis(stats Stats)
}
