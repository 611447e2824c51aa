// Package fault_test benchmarks Analyze under both strategies.
package fault_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/katalvlaran/qfault/fault"
)

var sinkEvents []fault.Event

func BenchmarkAnalyze(b *testing.B) {
	b.ReportAllocs()
	for _, n := range []int{8, 32} {
		fc := randomFlat(b, n, 20*n, 1337)
		data := make([]int, n)
		for q := range data {
			data[q] = q
		}
		part := fault.Partition{Data: data}

		for _, s := range []fault.Strategy{fault.StrategyIndependent, fault.StrategySweep} {
			b.Run(fmt.Sprintf("n=%d/%s", n, s), func(b *testing.B) {
				for i := 0; i < b.N; i++ {
					events, err := fault.Analyze(context.Background(), fc, part, fault.WithStrategy(s))
					if err != nil {
						b.Fatal(err)
					}
					sinkEvents = events
				}
			})
		}
	}
}
