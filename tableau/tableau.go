// SPDX-License-Identifier: MIT
// Package: qfault/tableau
//
// tableau.go: the Tableau type, identity construction and Pauli mapping.
//
// Layout:
//   Row r < n   is the image of X_r.
//   Row n + r   is the image of Z_r.
//   xcol[j] bit r is the x-component of row r on output qubit j (zcol alike).

package tableau

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/qfault/circuit"
	"github.com/katalvlaran/qfault/pauli"
)

// Tableau is the phase-free Clifford tableau of a circuit over n qubits.
// The zero value is not usable; construct with Identity or Build.
type Tableau struct {
	n    int
	xcol []*bitset.BitSet
	zcol []*bitset.BitSet
}

// Identity returns the tableau of the empty circuit on n qubits.
//
// Errors: circuit.ErrEmptyRegister if n <= 0.
func Identity(n int) (*Tableau, error) {
	if n <= 0 {
		return nil, fmt.Errorf("Identity: n=%d: %w", n, circuit.ErrEmptyRegister)
	}
	t := zero(n)
	for j := 0; j < n; j++ {
		t.xcol[j].Set(uint(j))
		t.zcol[j].Set(uint(n + j))
	}

	return t, nil
}

// zero allocates an all-zero tableau; it is not symplectic until filled.
func zero(n int) *Tableau {
	t := &Tableau{
		n:    n,
		xcol: make([]*bitset.BitSet, n),
		zcol: make([]*bitset.BitSet, n),
	}
	rows := uint(2 * n)
	for j := 0; j < n; j++ {
		t.xcol[j] = bitset.New(rows)
		t.zcol[j] = bitset.New(rows)
	}

	return t
}

// N returns the register size.
func (t *Tableau) N() int { return t.n }

// X returns the image of X_k.
func (t *Tableau) X(k int) (pauli.Operator, error) {
	if k < 0 || k >= t.n {
		return pauli.Operator{}, fmt.Errorf("X: k=%d: %w", k, pauli.ErrOutOfRange)
	}

	return t.row(k), nil
}

// Z returns the image of Z_k.
func (t *Tableau) Z(k int) (pauli.Operator, error) {
	if k < 0 || k >= t.n {
		return pauli.Operator{}, fmt.Errorf("Z: k=%d: %w", k, pauli.ErrOutOfRange)
	}

	return t.row(t.n + k), nil
}

// Apply maps p through the circuit: the product of the X rows over p's
// x-support and the Z rows over its z-support.
//
// Complexity: O(n²/w) with w the machine word size.
func (t *Tableau) Apply(p pauli.Operator) (pauli.Operator, error) {
	if p.Len() != t.n {
		return pauli.Operator{}, fmt.Errorf("Apply: operator on %d qubits, tableau on %d: %w",
			p.Len(), t.n, ErrSizeMismatch)
	}
	sel := bitset.New(uint(2 * t.n))
	for _, q := range p.Support() {
		l := p.At(q)
		if l.XBit() {
			sel.Set(uint(q))
		}
		if l.ZBit() {
			sel.Set(uint(t.n + q))
		}
	}

	return t.combine(sel), nil
}

// combine XORs the rows selected in sel.
func (t *Tableau) combine(sel *bitset.BitSet) pauli.Operator {
	x := bitset.New(uint(t.n))
	z := bitset.New(uint(t.n))
	for j := 0; j < t.n; j++ {
		if t.xcol[j].IntersectionCardinality(sel)&1 == 1 {
			x.Set(uint(j))
		}
		if t.zcol[j].IntersectionCardinality(sel)&1 == 1 {
			z.Set(uint(j))
		}
	}

	return pauli.FromBitSets(t.n, x, z)
}

// row extracts row r as an operator.
func (t *Tableau) row(r int) pauli.Operator {
	x := bitset.New(uint(t.n))
	z := bitset.New(uint(t.n))
	for j := 0; j < t.n; j++ {
		if t.xcol[j].Test(uint(r)) {
			x.Set(uint(j))
		}
		if t.zcol[j].Test(uint(r)) {
			z.Set(uint(j))
		}
	}

	return pauli.FromBitSets(t.n, x, z)
}

// Clone returns a deep copy.
func (t *Tableau) Clone() *Tableau {
	c := &Tableau{
		n:    t.n,
		xcol: make([]*bitset.BitSet, t.n),
		zcol: make([]*bitset.BitSet, t.n),
	}
	for j := 0; j < t.n; j++ {
		c.xcol[j] = t.xcol[j].Clone()
		c.zcol[j] = t.zcol[j].Clone()
	}

	return c
}

// Equal reports whether both tableaux describe the same phase-free map.
func (t *Tableau) Equal(o *Tableau) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.n != o.n {
		return false
	}
	for j := 0; j < t.n; j++ {
		if !t.xcol[j].Equal(o.xcol[j]) || !t.zcol[j].Equal(o.zcol[j]) {
			return false
		}
	}

	return true
}

// IsSymplectic reports whether the rows satisfy the Pauli commutation
// relations: images of X_i and Z_i anticommute, every other pair commutes.
// Every tableau produced by Build is symplectic.
//
// Complexity: O(n³/w).
func (t *Tableau) IsSymplectic() bool {
	rows := make([]pauli.Operator, 2*t.n)
	for r := range rows {
		rows[r] = t.row(r)
	}
	for i := 0; i < len(rows); i++ {
		for j := i + 1; j < len(rows); j++ {
			commutes, err := rows[i].Commutes(rows[j])
			if err != nil {
				return false
			}
			conjugate := j == i+t.n
			if commutes == conjugate {
				return false
			}
		}
	}

	return true
}
