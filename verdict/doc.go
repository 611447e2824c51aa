// Package verdict reduces an ordered fault event list to a fault-tolerance
// report: a boolean verdict with its violating events, and a continuous
// score in [0,1] usable as a reward signal.
//
// An event is over threshold when its DataWeight exceeds t = ⌊(d−1)/2⌋ for
// code distance d. An over-threshold event with no flag is a violation.
// The score weighs undetected over-threshold events by DataWeight^p:
//
//	score = 1 − Σ_{violations} w^p / Σ_{over threshold} w^p
//
// and is 1 when nothing is over threshold. Both outputs come from one pass
// over the same slice, so FaultTolerant == (Score == 1) always holds.
package verdict
