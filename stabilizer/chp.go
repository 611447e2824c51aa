// SPDX-License-Identifier: MIT
// Package: qfault/stabilizer
//
// chp.go: Aaronson–Gottesman (CHP) stabilizer simulation with signs.
//
// Layout (column-major, as in package tableau):
//   Rows 0..n-1    destabilizers.
//   Rows n..2n-1   stabilizers.
//   Row  2n        scratch for deterministic measurement and peeks.
//   x[q], z[q]     bit r is the x (z) component of row r on qubit q.
//   sign           bit r set means row r carries a −1 phase.
//
// Gates update whole columns with word-wide operations. Measurement and
// peeks combine rows with rowsum, which tracks the phase through the
// g-function of Aaronson & Gottesman (2004).

package stabilizer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"

	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/qfault/circuit"
	"github.com/katalvlaran/qfault/pauli"
	"github.com/katalvlaran/qfault/tableau"
)

// DefaultSeed drives random measurement outcomes unless WithSeed is given.
const DefaultSeed int64 = 1

const panicNilLogger = "stabilizer: WithLogger(nil)"

// CHPOption customizes NewCHP.
type CHPOption func(*CHP)

// WithSeed fixes the source of random measurement outcomes. Every Prepare
// restarts the source, so equal seeds give equal outcomes.
func WithSeed(seed int64) CHPOption {
	return func(c *CHP) { c.seed = seed }
}

// WithLogger routes debug records (random outcomes) to l. Panics on nil.
func WithLogger(l *slog.Logger) CHPOption {
	if l == nil {
		panic(panicNilLogger)
	}
	return func(c *CHP) { c.logger = l }
}

// CHP is a stabilizer-state simulator. It is not safe for concurrent use.
type CHP struct {
	n        int
	x, z     []*bitset.BitSet
	sign     *bitset.BitSet
	rng      *rand.Rand
	seed     int64
	logger   *slog.Logger
	prepared bool
	outcomes []bool
}

var _ Simulator = (*CHP)(nil)

// NewCHP returns an unprepared simulator.
func NewCHP(opts ...CHPOption) *CHP {
	c := &CHP{
		seed:   DefaultSeed,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c
}

// N returns the register size of the prepared state (0 before Prepare).
func (c *CHP) N() int { return c.n }

// Outcomes returns the measurement results of the last Prepare in op order
// (true = −1 eigenvalue / bit 1). Resets record their internal measurement.
func (c *CHP) Outcomes() []bool {
	out := make([]bool, len(c.outcomes))
	copy(out, c.outcomes)

	return out
}

// Prepare runs fc from |0…0⟩.
//
// Errors: circuit.ErrEmptyRegister, circuit.ErrMalformedCircuit (bad
// targets), tableau.ErrUnsupportedGate, ctx.Err().
func (c *CHP) Prepare(ctx context.Context, fc circuit.FlatCircuit) error {
	c.prepared = false
	if fc.NumQubits <= 0 {
		return fmt.Errorf("Prepare: n=%d: %w", fc.NumQubits, circuit.ErrEmptyRegister)
	}
	c.reset(fc.NumQubits)

	for _, op := range fc.Ops {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.apply(op); err != nil {
			return fmt.Errorf("Prepare: op %d %s: %w", op.Index, op.Name, err)
		}
	}
	c.prepared = true

	return nil
}

// PeekObservableExpectation returns the expectation of p (phase +1) on the
// prepared state without changing it.
func (c *CHP) PeekObservableExpectation(p pauli.Operator) (Expectation, error) {
	if !c.prepared {
		return Random, ErrNotPrepared
	}
	if p.Len() != c.n {
		return Random, fmt.Errorf("PeekObservableExpectation: %d qubits, state has %d: %w",
			p.Len(), c.n, pauli.ErrSizeMismatch)
	}

	// anti[r] = row r anticommutes with p
	rows := uint(2*c.n + 1)
	anti := bitset.New(rows)
	for _, q := range p.Support() {
		l := p.At(q)
		if l.ZBit() {
			anti.InPlaceSymmetricDifference(c.x[q])
		}
		if l.XBit() {
			anti.InPlaceSymmetricDifference(c.z[q])
		}
	}
	for r := c.n; r < 2*c.n; r++ {
		if anti.Test(uint(r)) {
			return Random, nil
		}
	}

	// p is ± the product of the stabilizers paired with anticommuting
	// destabilizers.
	s := 2 * c.n
	c.clearRow(s)
	for i := 0; i < c.n; i++ {
		if anti.Test(uint(i)) {
			c.rowsum(s, i+c.n)
		}
	}
	if c.sign.Test(uint(s)) {
		return Minus, nil
	}

	return Plus, nil
}

func (c *CHP) reset(n int) {
	c.n = n
	rows := uint(2*n + 1)
	c.x = make([]*bitset.BitSet, n)
	c.z = make([]*bitset.BitSet, n)
	for q := 0; q < n; q++ {
		c.x[q] = bitset.New(rows).Set(uint(q))
		c.z[q] = bitset.New(rows).Set(uint(n + q))
	}
	c.sign = bitset.New(rows)
	c.rng = rand.New(rand.NewSource(c.seed))
	c.outcomes = c.outcomes[:0]
}

func (c *CHP) apply(op circuit.Op) error {
	switch op.Kind.Class() {
	case circuit.ClassClifford1, circuit.ClassClifford2, circuit.ClassCollapse:
	case circuit.ClassNonClifford:
		return tableau.ErrUnsupportedGate
	default:
		return nil
	}
	if len(op.Targets) != op.Kind.Arity() {
		return circuit.ErrMalformedCircuit
	}
	for i, q := range op.Targets {
		if q < 0 || q >= c.n || (i > 0 && q == op.Targets[0]) {
			return circuit.ErrMalformedCircuit
		}
	}

	if op.Kind.Class() == circuit.ClassCollapse {
		c.collapse(op.Kind, op.Targets[0])
		return nil
	}
	for _, r := range op.Kind.Rules() {
		c.primitive(r.Prim, op.Targets[r.A], op.Targets[r.B])
	}

	return nil
}

// primitive applies one conjugation rule with its sign update. b is ignored
// by single-qubit primitives.
func (c *CHP) primitive(p circuit.Primitive, a, b int) {
	switch p {
	case circuit.PrimH:
		c.sign.InPlaceSymmetricDifference(c.x[a].Intersection(c.z[a]))
		c.x[a], c.z[a] = c.z[a], c.x[a]
	case circuit.PrimS:
		c.sign.InPlaceSymmetricDifference(c.x[a].Intersection(c.z[a]))
		c.z[a].InPlaceSymmetricDifference(c.x[a])
	case circuit.PrimSDag:
		c.sign.InPlaceSymmetricDifference(c.x[a].Difference(c.z[a]))
		c.z[a].InPlaceSymmetricDifference(c.x[a])
	case circuit.PrimX:
		c.sign.InPlaceSymmetricDifference(c.z[a])
	case circuit.PrimY:
		c.sign.InPlaceSymmetricDifference(c.x[a].SymmetricDifference(c.z[a]))
	case circuit.PrimZ:
		c.sign.InPlaceSymmetricDifference(c.x[a])
	case circuit.PrimCX:
		c.cx(a, b)
	case circuit.PrimCZ:
		c.primitive(circuit.PrimH, b, 0)
		c.cx(a, b)
		c.primitive(circuit.PrimH, b, 0)
	case circuit.PrimSwap:
		c.x[a], c.x[b] = c.x[b], c.x[a]
		c.z[a], c.z[b] = c.z[b], c.z[a]
	}
}

func (c *CHP) cx(a, b int) {
	t := c.x[b].SymmetricDifference(c.z[a]).Complement()
	t.InPlaceIntersection(c.x[a])
	t.InPlaceIntersection(c.z[b])
	c.sign.InPlaceSymmetricDifference(t)
	c.x[b].InPlaceSymmetricDifference(c.x[a])
	c.z[a].InPlaceSymmetricDifference(c.z[b])
}

// collapse executes a single-qubit measurement or reset in the basis of k.
func (c *CHP) collapse(k circuit.GateKind, q int) {
	toZ, fromZ := basisChange(k)
	for _, p := range toZ {
		c.primitive(p, q, 0)
	}
	switch k {
	case circuit.GateM, circuit.GateMX, circuit.GateMY:
		c.outcomes = append(c.outcomes, c.measure(q))
	case circuit.GateR, circuit.GateRX, circuit.GateRY:
		if c.measure(q) {
			c.primitive(circuit.PrimX, q, 0)
		}
	case circuit.GateMR, circuit.GateMRX, circuit.GateMRY:
		bit := c.measure(q)
		c.outcomes = append(c.outcomes, bit)
		if bit {
			c.primitive(circuit.PrimX, q, 0)
		}
	}
	for _, p := range fromZ {
		c.primitive(p, q, 0)
	}
}

// basisChange returns the primitives rotating k's basis onto Z and back.
func basisChange(k circuit.GateKind) (toZ, fromZ []circuit.Primitive) {
	switch k {
	case circuit.GateMX, circuit.GateRX, circuit.GateMRX:
		return []circuit.Primitive{circuit.PrimH}, []circuit.Primitive{circuit.PrimH}
	case circuit.GateMY, circuit.GateRY, circuit.GateMRY:
		return []circuit.Primitive{circuit.PrimSDag, circuit.PrimH},
			[]circuit.Primitive{circuit.PrimH, circuit.PrimS}
	default:
		return nil, nil
	}
}

// measure performs a Z measurement on q and returns true for outcome 1.
func (c *CHP) measure(q int) bool {
	n := c.n
	p := -1
	for r := n; r < 2*n; r++ {
		if c.x[q].Test(uint(r)) {
			p = r
			break
		}
	}

	if p >= 0 {
		for r := 0; r < 2*n; r++ {
			if r != p && c.x[q].Test(uint(r)) {
				c.rowsum(r, p)
			}
		}
		c.copyRow(p-n, p)
		c.clearRow(p)
		c.z[q].Set(uint(p))
		bit := c.rng.Intn(2) == 1
		c.sign.SetTo(uint(p), bit)
		c.logger.Debug("stabilizer: random measurement outcome", "qubit", q, "outcome", bit)

		return bit
	}

	s := 2 * n
	c.clearRow(s)
	for r := 0; r < n; r++ {
		if c.x[q].Test(uint(r)) {
			c.rowsum(s, r+n)
		}
	}

	return c.sign.Test(uint(s))
}

// rowsum replaces row h with row h · row i, tracking the phase.
func (c *CHP) rowsum(h, i int) {
	uh, ui := uint(h), uint(i)
	sum := 0
	if c.sign.Test(uh) {
		sum += 2
	}
	if c.sign.Test(ui) {
		sum += 2
	}
	for q := 0; q < c.n; q++ {
		sum += g(c.x[q].Test(ui), c.z[q].Test(ui), c.x[q].Test(uh), c.z[q].Test(uh))
	}
	c.sign.SetTo(uh, ((sum%4)+4)%4 == 2)
	for q := 0; q < c.n; q++ {
		if c.x[q].Test(ui) {
			c.x[q].Flip(uh)
		}
		if c.z[q].Test(ui) {
			c.z[q].Flip(uh)
		}
	}
}

// g is the exponent of i picked up when multiplying the single-qubit Paulis
// (x1,z1)·(x2,z2).
func g(x1, z1, x2, z2 bool) int {
	switch {
	case !x1 && !z1:
		return 0
	case x1 && z1:
		return b2i(z2) - b2i(x2)
	case x1:
		return b2i(z2) * (2*b2i(x2) - 1)
	default:
		return b2i(x2) * (1 - 2*b2i(z2))
	}
}

func b2i(b bool) int {
	if b {
		return 1
	}

	return 0
}

func (c *CHP) copyRow(dst, src int) {
	d, s := uint(dst), uint(src)
	for q := 0; q < c.n; q++ {
		c.x[q].SetTo(d, c.x[q].Test(s))
		c.z[q].SetTo(d, c.z[q].Test(s))
	}
	c.sign.SetTo(d, c.sign.Test(s))
}

func (c *CHP) clearRow(row int) {
	r := uint(row)
	for q := 0; q < c.n; q++ {
		c.x[q].Clear(r)
		c.z[q].Clear(r)
	}
	c.sign.Clear(r)
}
