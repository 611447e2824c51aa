package tableau_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qfault/circuit"
	"github.com/katalvlaran/qfault/pauli"
)

// op resolves name and builds a single atomic op at index idx.
func op(tb testing.TB, idx int, name string, targets ...int) circuit.Op {
	tb.Helper()
	kind, ok := circuit.Lookup(name)
	require.True(tb, ok, "unknown gate %s", name)

	return circuit.Op{Kind: kind, Name: kind.Name(), Targets: targets, Index: idx}
}

// cliffordKinds lists every kind the tableau accepts.
func cliffordKinds() []circuit.GateKind {
	var out []circuit.GateKind
	for _, k := range circuit.Kinds() {
		if k.IsClifford() {
			out = append(out, k)
		}
	}

	return out
}

// randomOps draws count Clifford ops on n >= 2 qubits from a seeded source.
func randomOps(n, count int, seed int64) []circuit.Op {
	rng := rand.New(rand.NewSource(seed))
	kinds := cliffordKinds()
	ops := make([]circuit.Op, 0, count)
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
		ops = append(ops, circuit.Op{Kind: k, Name: k.Name(), Targets: targets, Index: i})
	}

	return ops
}

// randomPauli draws a uniformly random phase-free operator.
func randomPauli(n int, rng *rand.Rand) pauli.Operator {
	ls := make([]pauli.Letter, n)
	for i := range ls {
		ls[i] = pauli.Letter(rng.Intn(4))
	}

	return pauli.FromLetters(ls)
}
