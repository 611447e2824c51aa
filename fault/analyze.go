// SPDX-License-Identifier: MIT
// Package: qfault/fault
//
// analyze.go: full single-fault analysis of a flat circuit.
//
// Work is grouped by op: all locations on one op share one suffix tableau.
// StrategyIndependent evaluates the groups on an errgroup pool, each group
// into its own pre-sized slot. StrategySweep walks the ops backwards once,
// prepending each op to a running tableau and evaluating a group when the
// sweep reaches its op. Both merge the slots in op order and sort by the
// report key, so neither the pool size nor scheduling affects the output.
//
// Cancellation is checked before each group; a group is either fully
// evaluated or absent.

package fault

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/qfault/circuit"
	"github.com/katalvlaran/qfault/tableau"
)

// group is the set of locations on one op.
type group struct {
	index int
	locs  []Location
}

// Analyze enumerates every location of fc, injects every configured Pauli
// (X, Y, Z by default) and returns the ordered event list.
//
// Errors: ErrInconsistentPartition, tableau.ErrUnsupportedGate for a
// non-Clifford op after any location, and ctx.Err() on cancellation (no
// partial result is returned).
func Analyze(ctx context.Context, fc circuit.FlatCircuit, part Partition, opts ...Option) ([]Event, error) {
	cfg := gatherOptions(opts...)
	if err := part.Validate(fc.NumQubits); err != nil {
		return nil, fmt.Errorf("Analyze: %w", err)
	}
	start := time.Now()

	groups := groupByOp(enumerate(fc, part, cfg))
	cfg.logger.Debug("fault: analysis started",
		"ops", fc.Len(), "qubits", fc.NumQubits, "groups", len(groups),
		"strategy", cfg.strategy, "workers", cfg.workers, "injection", cfg.injection)

	var (
		slots [][]Event
		err   error
	)
	if cfg.strategy == StrategySweep {
		slots, err = sweep(ctx, fc, groups, part, cfg)
	} else {
		slots, err = independent(ctx, fc, groups, part, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("Analyze: %w", err)
	}

	var events []Event
	locations := 0
	for gi := range slots {
		events = append(events, slots[gi]...)
		locations += len(groups[gi].locs)
	}
	Sort(events)

	stats := Stats{
		Locations: locations,
		Events:    len(events),
		Workers:   cfg.workers,
		Strategy:  cfg.strategy,
		Duration:  time.Since(start),
	}
	if cfg.strategy == StrategySweep {
		stats.Workers = 1
	}
	cfg.observer.ObserveAnalysis(stats)
	cfg.logger.Debug("fault: analysis finished",
		"locations", stats.Locations, "events", stats.Events, "duration", stats.Duration)

	return events, nil
}

// groupByOp splits locations (already in op order) into per-op groups.
func groupByOp(locs []Location) []group {
	var groups []group
	for _, loc := range locs {
		if n := len(groups); n > 0 && groups[n-1].index == loc.Index {
			groups[n-1].locs = append(groups[n-1].locs, loc)
			continue
		}
		groups = append(groups, group{index: loc.Index, locs: []Location{loc}})
	}

	return groups
}

func independent(ctx context.Context, fc circuit.FlatCircuit, groups []group, part Partition, cfg config) ([][]Event, error) {
	slots := make([][]Event, len(groups))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers)

	for gi := range groups {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			gr := groups[gi]
			var t *tableau.Tableau
			if suffix := suffixOf(fc, gr.index, cfg.injection); len(suffix) > 0 {
				var err error
				if t, err = tableau.Build(suffix, fc.NumQubits); err != nil {
					return err
				}
			}
			out, err := evaluate(t, fc.NumQubits, gr, part, cfg)
			if err != nil {
				return err
			}
			slots[gi] = out

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// the loop may stop early without any goroutine failing
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return slots, nil
}

func sweep(ctx context.Context, fc circuit.FlatCircuit, groups []group, part Partition, cfg config) ([][]Event, error) {
	slots := make([][]Event, len(groups))
	if len(groups) == 0 {
		return slots, nil
	}
	t, err := tableau.Identity(fc.NumQubits)
	if err != nil {
		return nil, err
	}

	gi := len(groups) - 1
	for i := fc.Len() - 1; i >= groups[0].index; i-- {
		op := fc.Ops[i]
		if cfg.injection == InjectBeforeGate {
			if err = t.Prepend(op); err != nil {
				return nil, err
			}
		}
		if gi >= 0 && groups[gi].index == i {
			if err = ctx.Err(); err != nil {
				return nil, err
			}
			if slots[gi], err = evaluate(t, fc.NumQubits, groups[gi], part, cfg); err != nil {
				return nil, err
			}
			gi--
		}
		if cfg.injection == InjectAfterGate && i > groups[0].index {
			if err = t.Prepend(op); err != nil {
				return nil, err
			}
		}
	}

	return slots, nil
}

// evaluate scores every location of gr through t (nil = empty suffix).
func evaluate(t *tableau.Tableau, n int, gr group, part Partition, cfg config) ([]Event, error) {
	var out []Event
	for _, loc := range gr.locs {
		evs, err := propagate(t, n, loc, part, cfg)
		if err != nil {
			return nil, err
		}
		cfg.observer.ObserveLocation(loc, evs)
		out = append(out, evs...)
	}

	return out, nil
}
