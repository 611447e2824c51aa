// Command qfault is the debug front-end for single-fault propagation
// analysis.
package main

import (
	"os"

	"github.com/katalvlaran/qfault/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
