// SPDX-License-Identifier: MIT
// Package: qfault/tableau
//
// build.go: folding ops into a tableau from either end.
//
// Forward (ApplyOp, Build): each primitive rule rewrites the columns of the
// qubits it touches, for all 2n rows at once.
//
// Backward (Prepend): T' = T∘g, so row R' = T(g(P_R)). For the nine
// primitives g(P_R) is a product of at most two generators, which turns each
// rule into a row swap or a row XOR.
//
// Both directions validate an op completely before touching storage, so a
// rejected op leaves the tableau unchanged.

package tableau

import (
	"fmt"

	"github.com/katalvlaran/qfault/circuit"
)

// Build returns the tableau of ops (program order) on an n-qubit register.
//
// Errors: circuit.ErrEmptyRegister (n <= 0), circuit.ErrMalformedCircuit
// (target outside [0,n) or wrong target count), ErrUnsupportedGate.
func Build(ops []circuit.Op, n int) (*Tableau, error) {
	t, err := Identity(n)
	if err != nil {
		return nil, fmt.Errorf("Build: %w", err)
	}
	for i := range ops {
		if err = t.ApplyOp(ops[i]); err != nil {
			return nil, fmt.Errorf("Build: %w", err)
		}
	}

	return t, nil
}

// ApplyOp appends op to the circuit the tableau describes.
func (t *Tableau) ApplyOp(op circuit.Op) error {
	apply, err := t.check(op)
	if err != nil || !apply {
		return err
	}
	for _, r := range op.Kind.Rules() {
		t.forward(r, op.Targets)
	}

	return nil
}

// Prepend inserts op in front of the circuit the tableau describes.
func (t *Tableau) Prepend(op circuit.Op) error {
	apply, err := t.check(op)
	if err != nil || !apply {
		return err
	}
	rules := op.Kind.Rules()
	for i := len(rules) - 1; i >= 0; i-- {
		t.backward(rules[i], op.Targets)
	}

	return nil
}

// Then returns the tableau of "t's circuit followed by next's circuit".
// Neither operand is modified.
func (t *Tableau) Then(next *Tableau) (*Tableau, error) {
	if next == nil || next.n != t.n {
		return nil, fmt.Errorf("Then: %w", ErrSizeMismatch)
	}
	out := zero(t.n)
	for r := 0; r < 2*t.n; r++ {
		img, err := next.Apply(t.row(r))
		if err != nil {
			return nil, fmt.Errorf("Then: %w", err)
		}
		for _, q := range img.Support() {
			l := img.At(q)
			if l.XBit() {
				out.xcol[q].Set(uint(r))
			}
			if l.ZBit() {
				out.zcol[q].Set(uint(r))
			}
		}
	}

	return out, nil
}

// check reports whether op changes the tableau, rejecting ops that cannot be
// applied.
func (t *Tableau) check(op circuit.Op) (bool, error) {
	switch op.Kind.Class() {
	case circuit.ClassClifford1, circuit.ClassClifford2:
	case circuit.ClassNonClifford:
		return false, fmt.Errorf("op %d %s: %w", op.Index, op.Name, ErrUnsupportedGate)
	default:
		// collapse, annotation and opaque ops: ignore-measurement mode
		return false, nil
	}
	if len(op.Targets) != op.Kind.Arity() {
		return false, fmt.Errorf("op %d %s: %d targets: %w",
			op.Index, op.Name, len(op.Targets), circuit.ErrMalformedCircuit)
	}
	for i, q := range op.Targets {
		if q < 0 || q >= t.n {
			return false, fmt.Errorf("op %d %s: target %d outside %d qubits: %w",
				op.Index, op.Name, q, t.n, circuit.ErrMalformedCircuit)
		}
		if i > 0 && q == op.Targets[0] {
			return false, fmt.Errorf("op %d %s: repeated qubit %d: %w",
				op.Index, op.Name, q, circuit.ErrMalformedCircuit)
		}
	}

	return true, nil
}

func (t *Tableau) forward(r circuit.Rule, targets []int) {
	a := targets[r.A]
	switch r.Prim {
	case circuit.PrimH:
		t.xcol[a], t.zcol[a] = t.zcol[a], t.xcol[a]
	case circuit.PrimS, circuit.PrimSDag:
		t.zcol[a].InPlaceSymmetricDifference(t.xcol[a])
	case circuit.PrimCX:
		b := targets[r.B]
		t.xcol[b].InPlaceSymmetricDifference(t.xcol[a])
		t.zcol[a].InPlaceSymmetricDifference(t.zcol[b])
	case circuit.PrimCZ:
		b := targets[r.B]
		t.zcol[a].InPlaceSymmetricDifference(t.xcol[b])
		t.zcol[b].InPlaceSymmetricDifference(t.xcol[a])
	case circuit.PrimSwap:
		b := targets[r.B]
		t.xcol[a], t.xcol[b] = t.xcol[b], t.xcol[a]
		t.zcol[a], t.zcol[b] = t.zcol[b], t.zcol[a]
	}
	// PrimX, PrimY, PrimZ only flip signs
}

func (t *Tableau) backward(r circuit.Rule, targets []int) {
	n := t.n
	a := targets[r.A]
	switch r.Prim {
	case circuit.PrimH:
		t.swapRows(a, n+a)
	case circuit.PrimS, circuit.PrimSDag:
		t.xorRow(a, n+a)
	case circuit.PrimCX:
		b := targets[r.B]
		t.xorRow(a, b)
		t.xorRow(n+b, n+a)
	case circuit.PrimCZ:
		b := targets[r.B]
		t.xorRow(a, n+b)
		t.xorRow(b, n+a)
	case circuit.PrimSwap:
		b := targets[r.B]
		t.swapRows(a, b)
		t.swapRows(n+a, n+b)
	}
}

// xorRow sets row dst to row dst XOR row src.
func (t *Tableau) xorRow(dst, src int) {
	d, s := uint(dst), uint(src)
	for j := 0; j < t.n; j++ {
		if t.xcol[j].Test(s) {
			t.xcol[j].Flip(d)
		}
		if t.zcol[j].Test(s) {
			t.zcol[j].Flip(d)
		}
	}
}

func (t *Tableau) swapRows(i, k int) {
	a, b := uint(i), uint(k)
	for j := 0; j < t.n; j++ {
		xa, xb := t.xcol[j].Test(a), t.xcol[j].Test(b)
		t.xcol[j].SetTo(a, xb).SetTo(b, xa)
		za, zb := t.zcol[j].Test(a), t.zcol[j].Test(b)
		t.zcol[j].SetTo(a, zb).SetTo(b, za)
	}
}
