package circuit_test

import (
	"fmt"

	"github.com/katalvlaran/qfault/circuit"
)

// ExampleFlatten prepares a 5-qubit cat state and prints its atomic ops.
func ExampleFlatten() {
	c, err := circuit.ParseString(`
H 0
TICK
CX 0 1 0 2
`)
	if err != nil {
		fmt.Println(err)
		return
	}
	fc, err := circuit.Flatten(c)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, op := range fc.Ops {
		fmt.Printf("%d@%d %s\n", op.Index, op.Step, op)
	}
	// Output:
	// 0@0 H 0
	// 1@1 CX 0 1
	// 2@1 CX 0 2
}
