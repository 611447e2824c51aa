package stabilizer_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/qfault/circuit"
	"github.com/katalvlaran/qfault/pauli"
	"github.com/katalvlaran/qfault/stabilizer"
)

// ExampleCheck verifies the Bell pair stabilizers.
func ExampleCheck() {
	c, _ := circuit.ParseString("H 0\nCX 0 1\n")
	fc, _ := circuit.Flatten(c)

	stabs := []pauli.Operator{pauli.MustParse("XX"), pauli.MustParse("ZZ"), pauli.MustParse("YY")}
	rs, err := stabilizer.Check(context.Background(), stabilizer.NewCHP(), fc, stabs)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, r := range rs {
		fmt.Printf("%s %s preserved=%v\n", r.Stabilizer, r.Expectation, r.Preserved)
	}
	fmt.Println("all:", rs.AllPreserved())
	// Output:
	// XX +1 preserved=true
	// ZZ +1 preserved=true
	// YY -1 preserved=false
	// all: false
}
