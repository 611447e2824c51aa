// SPDX-License-Identifier: MIT

package pauli

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Operator is an immutable, phase-free n-qubit Pauli operator.
// The zero value is the operator over an empty register.
type Operator struct {
	n int
	x *bitset.BitSet
	z *bitset.BitSet
}

const panicNegativeSize = "pauli: New(n<0)"

// New returns the identity over n qubits. Panics if n < 0 (programmer error).
//
// Complexity: O(n/64).
func New(n int) Operator {
	if n < 0 {
		panic(panicNegativeSize)
	}

	return Operator{n: n, x: bitset.New(uint(n)), z: bitset.New(uint(n))}
}

// Single returns the weight-one operator carrying l on qubit q and I elsewhere.
func Single(n, q int, l Letter) (Operator, error) {
	if q < 0 || q >= n {
		return Operator{}, fmt.Errorf("Single(n=%d, q=%d): %w", n, q, ErrOutOfRange)
	}
	o := New(n)
	o.x.SetTo(uint(q), l.XBit())
	o.z.SetTo(uint(q), l.ZBit())

	return o, nil
}

// FromLetters builds an operator whose qubit k carries ls[k].
func FromLetters(ls []Letter) Operator {
	o := New(len(ls))
	for k, l := range ls {
		o.x.SetTo(uint(k), l.XBit())
		o.z.SetTo(uint(k), l.ZBit())
	}

	return o
}

// FromBitSets copies x and z (each of length ≥ n is fine, extra bits are
// dropped) into a new n-qubit operator. Nil sets are read as all-zero.
//
// Complexity: O(n).
func FromBitSets(n int, x, z *bitset.BitSet) Operator {
	o := New(n)
	var i uint
	if x != nil {
		for i = 0; i < uint(n); i++ {
			if x.Test(i) {
				o.x.Set(i)
			}
		}
	}
	if z != nil {
		for i = 0; i < uint(n); i++ {
			if z.Test(i) {
				o.z.Set(i)
			}
		}
	}

	return o
}

// Parse reads a letter string such as "XIZY" (qubit 0 first). Whitespace is
// not allowed; '_' is read as I.
func Parse(s string) (Operator, error) {
	rs := []rune(s)
	ls := make([]Letter, len(rs))
	var err error
	for i, r := range rs {
		if ls[i], err = ParseLetter(r); err != nil {
			return Operator{}, fmt.Errorf("Parse(%q) at %d: %w", s, i, ErrInvalidLetter)
		}
	}

	return FromLetters(ls), nil
}

// MustParse is Parse that panics on error. Intended for tests and literals.
func MustParse(s string) Operator {
	o, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return o
}

// Len returns the register size n.
func (o Operator) Len() int { return o.n }

// At returns the letter on qubit q. Qubits outside [0, n) read as I.
func (o Operator) At(q int) Letter {
	if q < 0 || q >= o.n {
		return I
	}

	return FromBits(o.x.Test(uint(q)), o.z.Test(uint(q)))
}

// With returns a copy of o with qubit q replaced by l.
func (o Operator) With(q int, l Letter) (Operator, error) {
	if q < 0 || q >= o.n {
		return Operator{}, fmt.Errorf("With(q=%d): %w", q, ErrOutOfRange)
	}
	c := o.clone()
	c.x.SetTo(uint(q), l.XBit())
	c.z.SetTo(uint(q), l.ZBit())

	return c, nil
}

// Mul returns the phase-free product o·p (componentwise XOR).
//
// Complexity: O(n/64).
func (o Operator) Mul(p Operator) (Operator, error) {
	if o.n != p.n {
		return Operator{}, fmt.Errorf("Mul(%d, %d): %w", o.n, p.n, ErrSizeMismatch)
	}
	c := o.clone()
	if o.n == 0 {
		return c, nil
	}
	c.x.InPlaceSymmetricDifference(p.x)
	c.z.InPlaceSymmetricDifference(p.z)

	return c, nil
}

// Commutes reports whether o and p commute, i.e. the symplectic inner product
// Σ (x_o·z_p + z_o·x_p) is even.
func (o Operator) Commutes(p Operator) (bool, error) {
	if o.n != p.n {
		return false, fmt.Errorf("Commutes(%d, %d): %w", o.n, p.n, ErrSizeMismatch)
	}
	if o.n == 0 {
		return true, nil
	}
	odd := o.x.IntersectionCardinality(p.z) + o.z.IntersectionCardinality(p.x)

	return odd%2 == 0, nil
}

// Weight counts the non-identity qubits.
func (o Operator) Weight() int {
	if o.n == 0 {
		return 0
	}

	return int(o.x.UnionCardinality(o.z))
}

// WeightOn counts the non-identity qubits among qs. Indices outside the
// register contribute nothing.
func (o Operator) WeightOn(qs []int) int {
	w := 0
	for _, q := range qs {
		if o.At(q) != I {
			w++
		}
	}

	return w
}

// XWeightOn counts the qubits among qs whose letter has an X component
// (X or Y); these are the errors a Z-basis measurement detects.
func (o Operator) XWeightOn(qs []int) int {
	w := 0
	for _, q := range qs {
		if o.At(q).XBit() {
			w++
		}
	}

	return w
}

// Support lists the non-identity qubits in ascending order.
func (o Operator) Support() []int {
	if o.n == 0 {
		return nil
	}
	u := o.x.Union(o.z)
	out := make([]int, 0, u.Count())
	for i, ok := u.NextSet(0); ok; i, ok = u.NextSet(i + 1) {
		out = append(out, int(i))
	}

	return out
}

// IsIdentity reports whether every qubit carries I.
func (o Operator) IsIdentity() bool { return o.Weight() == 0 }

// Equal reports whether o and p have the same size and letters.
func (o Operator) Equal(p Operator) bool {
	if o.n != p.n {
		return false
	}
	if o.n == 0 {
		return true
	}

	return o.x.Equal(p.x) && o.z.Equal(p.z)
}

// Letters expands o into one Letter per qubit.
func (o Operator) Letters() []Letter {
	ls := make([]Letter, o.n)
	for q := range ls {
		ls[q] = o.At(q)
	}

	return ls
}

// String renders o as a letter string, qubit 0 first.
func (o Operator) String() string {
	var sb strings.Builder
	sb.Grow(o.n)
	for q := 0; q < o.n; q++ {
		sb.WriteString(o.At(q).String())
	}

	return sb.String()
}

// MarshalText implements encoding.TextMarshaler.
func (o Operator) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Operator) UnmarshalText(b []byte) error {
	p, err := Parse(string(b))
	if err != nil {
		return err
	}
	*o = p

	return nil
}

// clone deep-copies the bit storage; a zero Operator clones to New(0).
func (o Operator) clone() Operator {
	if o.x == nil || o.z == nil {
		return New(o.n)
	}

	return Operator{n: o.n, x: o.x.Clone(), z: o.z.Clone()}
}
