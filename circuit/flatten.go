// SPDX-License-Identifier: MIT
// Package: qfault/circuit
//
// flatten.go: normalize an instruction stream into atomic ops.
//
// Algorithm:
//   1. Resolve the register size (declared, or inferred as max target + 1).
//   2. Walk the instruction tree depth-first; REPEAT bodies are walked Count
//      times, TICK increments the step counter.
//   3. Each recognized instruction is split into Arity-sized ops and its
//      targets are range-checked; unrecognized names become one opaque op
//      and a Warning.
//
// Complexity: O(total flattened targets) time and space.

package circuit

import (
	"fmt"
	"strings"
)

// Op is one atomic gate application in a FlatCircuit.
//
//   - Kind: resolved gate kind (GateOpaque for unrecognized names).
//   - Name: the instruction name as written (upper-cased).
//   - Targets: Arity targets for split kinds, the full list otherwise.
//   - Step: value of the step counter when the op executed.
//   - Index: occurrence position in FlatCircuit.Ops.
type Op struct {
	Kind    GateKind `json:"kind"`
	Name    string   `json:"name"`
	Targets []int    `json:"targets"`
	Step    int      `json:"step"`
	Index   int      `json:"index"`
}

// String renders the op as "NAME t0 t1".
func (o Op) String() string {
	var sb strings.Builder
	sb.WriteString(o.Name)
	for _, t := range o.Targets {
		fmt.Fprintf(&sb, " %d", t)
	}

	return sb.String()
}

// Warning records an instruction that was retained as an opaque op.
type Warning struct {
	Name  string `json:"name"`
	Index int    `json:"index"`
	Step  int    `json:"step"`
}

// FlatCircuit is the normalized, atomic form of a Circuit. It is produced once
// per analysis and treated as read-only afterwards.
type FlatCircuit struct {
	NumQubits int       `json:"num_qubits"`
	Ops       []Op      `json:"ops"`
	Steps     int       `json:"steps"` // step markers encountered
	Warnings  []Warning `json:"warnings,omitempty"`
}

// Len returns the number of atomic ops.
func (f FlatCircuit) Len() int { return len(f.Ops) }

// Suffix returns the ops strictly after index i. i may be -1 (whole circuit)
// or Len()-1 (empty suffix). The slice shares storage with f.Ops.
func (f FlatCircuit) Suffix(i int) []Op {
	return f.From(i + 1)
}

// From returns the ops starting at index i (inclusive), clamped to [0, Len()].
func (f FlatCircuit) From(i int) []Op {
	if i < 0 {
		i = 0
	}
	if i > len(f.Ops) {
		i = len(f.Ops)
	}

	return f.Ops[i:]
}

// Flatten unrolls REPEAT blocks, splits multi-target instructions into atomic
// ops and resolves every name to a GateKind.
//
// Errors:
//   - ErrMalformedCircuit: negative declared size, target outside [0,n),
//     odd target count for a two-qubit kind (or not a multiple of 3 for
//     three-qubit kinds), repeated qubit inside one op, REPEAT count < 1,
//     unrecognized name under WithStrict.
//   - ErrTooLarge: more than the configured op budget, or more TICK markers
//     and REPEAT passes than that same budget (bodies that emit no ops still
//     cost one unit per pass).
func Flatten(c Circuit, opts ...Option) (FlatCircuit, error) {
	cfg := newFlattenConfig(opts...)

	// Stage 1: register size.
	n := c.NumQubits
	if n < 0 {
		return FlatCircuit{}, fmt.Errorf("Flatten: NumQubits=%d: %w", n, ErrMalformedCircuit)
	}
	if n == 0 {
		n = inferQubits(c.Instructions)
	}

	// Stage 2: walk.
	f := flattener{cfg: cfg, out: FlatCircuit{NumQubits: n}}
	if err := f.walk(c.Instructions); err != nil {
		return FlatCircuit{}, err
	}
	f.out.Steps = f.step

	return f.out, nil
}

type flattener struct {
	cfg  flattenConfig
	out  FlatCircuit
	step int
	work int // TICKs and REPEAT passes walked so far
}

// charge counts one unit of non-emitting work against the budget.
func (f *flattener) charge() error {
	f.work++
	if f.work > f.cfg.maxOps {
		return fmt.Errorf("Flatten: %d markers and REPEAT passes exceed limit %d: %w",
			f.work, f.cfg.maxOps, ErrTooLarge)
	}

	return nil
}

func (f *flattener) walk(ins []Instruction) error {
	var err error
	for i := range ins {
		in := &ins[i]
		name := strings.ToUpper(strings.TrimSpace(in.Name))
		switch name {
		case NameTick:
			if err = f.charge(); err != nil {
				return err
			}
			f.step++
			continue
		case NameRepeat:
			if in.Count < 1 {
				return fmt.Errorf("Flatten: REPEAT count %d: %w", in.Count, ErrMalformedCircuit)
			}
			for r := 0; r < in.Count; r++ {
				if err = f.charge(); err != nil {
					return err
				}
				if err = f.walk(in.Body); err != nil {
					return err
				}
			}
			continue
		}

		kind, ok := Lookup(name)
		if !ok {
			if err = f.opaque(name, in.Targets); err != nil {
				return err
			}
			continue
		}
		if err = f.emit(kind, name, in.Targets); err != nil {
			return err
		}
	}

	return nil
}

// opaque retains an unrecognized instruction as a pass-through op.
func (f *flattener) opaque(name string, targets []int) error {
	if f.cfg.strict {
		return fmt.Errorf("Flatten: unrecognized instruction %q: %w", name, ErrMalformedCircuit)
	}
	idx := len(f.out.Ops)
	f.cfg.logger.Warn("circuit: retaining unrecognized instruction as opaque op",
		"name", name, "index", idx, "step", f.step)
	f.out.Warnings = append(f.out.Warnings, Warning{Name: name, Index: idx, Step: f.step})

	return f.push(Op{Kind: GateOpaque, Name: name, Targets: cloneInts(targets), Step: f.step})
}

// emit splits a recognized instruction by arity and validates its targets.
func (f *flattener) emit(kind GateKind, name string, targets []int) error {
	arity := kind.Arity()
	if arity == 0 {
		// annotations keep their whole target list and are not range-checked:
		// their targets are not necessarily qubits.
		return f.push(Op{Kind: kind, Name: name, Targets: cloneInts(targets), Step: f.step})
	}
	if len(targets)%arity != 0 {
		return fmt.Errorf("Flatten: %s has %d targets, need a multiple of %d: %w",
			name, len(targets), arity, ErrMalformedCircuit)
	}
	n := f.out.NumQubits
	for i := 0; i < len(targets); i += arity {
		group := targets[i : i+arity]
		for j, q := range group {
			if q < 0 || q >= n {
				return fmt.Errorf("Flatten: %s target %d outside register of %d qubits: %w",
					name, q, n, ErrMalformedCircuit)
			}
			for _, p := range group[:j] {
				if p == q {
					return fmt.Errorf("Flatten: %s repeats qubit %d within one application: %w",
						name, q, ErrMalformedCircuit)
				}
			}
		}
		if err := f.push(Op{Kind: kind, Name: name, Targets: cloneInts(group), Step: f.step}); err != nil {
			return err
		}
	}

	return nil
}

func (f *flattener) push(op Op) error {
	if len(f.out.Ops) >= f.cfg.maxOps {
		return fmt.Errorf("Flatten: limit %d: %w", f.cfg.maxOps, ErrTooLarge)
	}
	op.Index = len(f.out.Ops)
	f.out.Ops = append(f.out.Ops, op)

	return nil
}

// inferQubits returns max target + 1 over gate-class instructions; opaque
// and annotation targets are ignored since they need not be qubits.
func inferQubits(ins []Instruction) int {
	n := 0
	for i := range ins {
		in := &ins[i]
		if strings.EqualFold(in.Name, NameRepeat) {
			if m := inferQubits(in.Body); m > n {
				n = m
			}
			continue
		}
		kind, ok := Lookup(in.Name)
		if !ok || kind.Arity() == 0 {
			continue
		}
		for _, q := range in.Targets {
			if q+1 > n {
				n = q + 1
			}
		}
	}

	return n
}

func cloneInts(in []int) []int {
	if len(in) == 0 {
		return nil
	}
	out := make([]int, len(in))
	copy(out, in)

	return out
}
