// SPDX-License-Identifier: MIT
// Package: qfault/verdict
//
// options.go: functional options for Evaluate.
//
// Contract:
//   • Option constructors validate and PANIC on meaningless inputs;
//     Evaluate itself never panics.
//   • Threshold resolution, first match wins:
//       1. WithThreshold(t)            → t
//       2. WithDistance(d)             → ⌊(d−1)/2⌋
//       3. neither                     → DefaultThreshold

package verdict

import "math"

const (
	// DefaultThreshold applies when neither a distance nor a threshold is
	// given: an unflagged residual of weight 2 or more is a violation.
	DefaultThreshold = 1

	// DefaultExponent weighs over-threshold events linearly by DataWeight.
	DefaultExponent = 1.0
)

// Panic messages of the option constructors.
const (
	panicDistanceInvalid  = "verdict: WithDistance(d<1)"
	panicThresholdInvalid = "verdict: WithThreshold(t<0)"
	panicExponentInvalid  = "verdict: WithExponent(p) requires finite p >= 0"
)

// Option customizes Evaluate.
type Option func(*config)

type config struct {
	distance  int // 0 = absent
	threshold int // -1 = derive
	exponent  float64
}

// WithDistance sets the code distance d. Panics if d < 1.
func WithDistance(d int) Option {
	if d < 1 {
		panic(panicDistanceInvalid)
	}
	return func(c *config) {
		c.distance = d
	}
}

// WithThreshold overrides the weight threshold directly. Panics if t < 0.
func WithThreshold(t int) Option {
	if t < 0 {
		panic(panicThresholdInvalid)
	}
	return func(c *config) {
		c.threshold = t
	}
}

// WithExponent sets p in w^p. Panics on NaN, ±Inf or p < 0.
func WithExponent(p float64) Option {
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
		panic(panicExponentInvalid)
	}
	return func(c *config) {
		c.exponent = p
	}
}

func gatherOptions(opts ...Option) config {
	cfg := config{threshold: -1, exponent: DefaultExponent}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// resolveThreshold applies the precedence documented above.
func (c config) resolveThreshold() int {
	switch {
	case c.threshold >= 0:
		return c.threshold
	case c.distance > 0:
		return Threshold(c.distance)
	default:
		return DefaultThreshold
	}
}
