// Package tableau_test benchmarks forward and backward tableau construction
// on seeded random Clifford circuits.
package tableau_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/katalvlaran/qfault/pauli"
	"github.com/katalvlaran/qfault/tableau"
)

var benchQubits = []int{16, 64, 256}

// sinks to defeat dead-code elimination
var (
	sinkT *tableau.Tableau
	sinkP pauli.Operator
)

func BenchmarkBuild(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchQubits {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			ops := randomOps(n, 10*n, 1337)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				t, err := tableau.Build(ops, n)
				if err != nil {
					b.Fatal(err)
				}
				sinkT = t
			}
		})
	}
}

func BenchmarkPrependSweep(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchQubits {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			ops := randomOps(n, 10*n, 1337)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				t, err := tableau.Identity(n)
				if err != nil {
					b.Fatal(err)
				}
				for j := len(ops) - 1; j >= 0; j-- {
					if err = t.Prepend(ops[j]); err != nil {
						b.Fatal(err)
					}
				}
				sinkT = t
			}
		})
	}
}

func BenchmarkApply(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchQubits {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			t, err := tableau.Build(randomOps(n, 10*n, 4242), n)
			if err != nil {
				b.Fatal(err)
			}
			p := randomPauli(n, rand.New(rand.NewSource(11)))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				out, err := t.Apply(p)
				if err != nil {
					b.Fatal(err)
				}
				sinkP = out
			}
		})
	}
}
