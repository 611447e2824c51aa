// SPDX-License-Identifier: MIT
// Package: qfault/circuit
//
// options.go: functional options for Flatten.
//
// Contract:
//   • Options are functional (type Option func(*flattenConfig)).
//   • Option constructors validate and PANIC on meaningless inputs;
//     Flatten itself never panics on user input.
//   • Defaults are deterministic and documented below; no globals are mutated.

package circuit

import (
	"io"
	"log/slog"
)

// DefaultMaxOps bounds the number of atomic ops a single Flatten may emit.
// REPEAT blocks make the flattened size multiplicative in nesting depth.
const DefaultMaxOps = 1 << 22

// Panic messages of the option constructors.
const (
	panicNilLogger     = "circuit: WithLogger(nil)"
	panicMaxOpsInvalid = "circuit: WithMaxOps(n<=0)"
)

// Option customizes Flatten.
type Option func(*flattenConfig)

type flattenConfig struct {
	logger *slog.Logger // warnings for opaque instructions
	strict bool         // opaque names become ErrMalformedCircuit
	maxOps int          // > 0
}

// discardLogger keeps library use silent unless a logger is supplied.
var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// WithLogger routes warning-level records (opaque instructions) to l.
// Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicNilLogger)
	}
	return func(c *flattenConfig) {
		c.logger = l
	}
}

// WithStrict turns unrecognized instruction names into ErrMalformedCircuit
// instead of opaque pass-through ops.
func WithStrict() Option {
	return func(c *flattenConfig) {
		c.strict = true
	}
}

// WithMaxOps sets the flattened op budget. Panics if n <= 0.
func WithMaxOps(n int) Option {
	if n <= 0 {
		panic(panicMaxOpsInvalid)
	}
	return func(c *flattenConfig) {
		c.maxOps = n
	}
}

// newFlattenConfig applies opts in order over the defaults.
func newFlattenConfig(opts ...Option) flattenConfig {
	cfg := flattenConfig{
		logger: discardLogger,
		strict: false,
		maxOps: DefaultMaxOps,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
