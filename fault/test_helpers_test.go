package fault_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qfault/circuit"
	"github.com/katalvlaran/qfault/fault"
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

const catState = `
H 0
CX 0 1
CX 0 2
CX 0 3
CX 0 4
`

func catPartition() fault.Partition {
	return fault.Partition{Data: []int{0, 1, 2, 3, 4}}
}

// randomFlat draws a seeded Clifford circuit with step markers and the odd
// measurement, over n >= 2 qubits.
func randomFlat(tb testing.TB, n, count int, seed int64) circuit.FlatCircuit {
	tb.Helper()
	rng := rand.New(rand.NewSource(seed))
	single := []string{"H", "S", "S_DAG", "X", "Y", "Z", "SQRT_X", "SQRT_Y_DAG", "I"}
	double := []string{"CX", "CZ", "CY", "SWAP", "ISWAP", "SQRT_XX", "XCZ"}

	c := circuit.New(n)
	for i := 0; i < count; i++ {
		a := rng.Intn(n)
		switch r := rng.Intn(10); {
		case r < 4:
			c = c.Append(circuit.Gate(single[rng.Intn(len(single))], a))
		case r < 8:
			b := rng.Intn(n - 1)
			if b >= a {
				b++
			}
			c = c.Append(circuit.Gate(double[rng.Intn(len(double))], a, b))
		case r < 9:
			c = c.Append(circuit.Tick())
		default:
			c = c.Append(circuit.Gate("M", a))
		}
	}
	fc, err := circuit.Flatten(c)
	require.NoError(tb, err)

	return fc
}

// eventKey is a comparable projection of an Event.
type eventKey struct {
	Step, Index, Qubit     int
	Injected, Final        string
	DataWeight, FlagWeight int
}

func keys(events []fault.Event) []eventKey {
	out := make([]eventKey, len(events))
	for i, e := range events {
		out[i] = eventKey{
			Step:       e.Location.Step,
			Index:      e.Location.Index,
			Qubit:      e.Location.Qubit,
			Injected:   e.Injected.String(),
			Final:      e.Final.String(),
			DataWeight: e.DataWeight,
			FlagWeight: e.FlagWeight,
		}
	}

	return out
}
