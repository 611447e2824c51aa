package stabilizer_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qfault/circuit"
	"github.com/katalvlaran/qfault/pauli"
	"github.com/katalvlaran/qfault/stabilizer"
)

// flat parses and flattens src.
func flat(tb testing.TB, src string) circuit.FlatCircuit {
	tb.Helper()
	c, err := circuit.ParseString(src)
	require.NoError(tb, err)
	fc, err := circuit.Flatten(c)
	require.NoError(tb, err)

	return fc
}

// prepared returns a seeded CHP that has run src.
func prepared(tb testing.TB, src string, opts ...stabilizer.CHPOption) *stabilizer.CHP {
	tb.Helper()
	sim := stabilizer.NewCHP(opts...)
	require.NoError(tb, sim.Prepare(context.Background(), flat(tb, src)))

	return sim
}

// peek is PeekObservableExpectation on a parsed operator.
func peek(tb testing.TB, sim *stabilizer.CHP, p string) stabilizer.Expectation {
	tb.Helper()
	e, err := sim.PeekObservableExpectation(pauli.MustParse(p))
	require.NoError(tb, err)

	return e
}

// randomClifford draws count Clifford ops on n >= 2 qubits.
func randomClifford(n, count int, seed int64) circuit.FlatCircuit {
	rng := rand.New(rand.NewSource(seed))
	var kinds []circuit.GateKind
	for _, k := range circuit.Kinds() {
		if k.IsClifford() {
			kinds = append(kinds, k)
		}
	}
	fc := circuit.FlatCircuit{NumQubits: n}
	for i := 0; i < count; i++ {
		k := kinds[rng.Intn(len(kinds))]
		a := rng.Intn(n)
		targets := []int{a}
		if k.Arity() == 2 {
			b := rng.Intn(n - 1)
			if b >= a {
				b++
			}
			targets = append(targets, b)
		}
		fc.Ops = append(fc.Ops, circuit.Op{Kind: k, Name: k.Name(), Targets: targets, Index: i})
	}

	return fc
}

type mockSimulator struct {
	mock.Mock
}

// Prepare implements stabilizer.Simulator.
func (m *mockSimulator) Prepare(ctx context.Context, fc circuit.FlatCircuit) error {
	args := m.Called(ctx, fc)
	return args.Error(0)
}

// PeekObservableExpectation implements stabilizer.Simulator.
func (m *mockSimulator) PeekObservableExpectation(p pauli.Operator) (stabilizer.Expectation, error) {
	args := m.Called(p)
	return args.Get(0).(stabilizer.Expectation), args.Error(1)
}
