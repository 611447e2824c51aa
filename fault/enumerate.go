package fault

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/qfault/circuit"
)

// Enumerate lists the fault locations of fc.
//
// Every single- and two-qubit Clifford op contributes one location per
// target wire in the site set (data qubits by default, see WithSiteScope).
// Collapse ops contribute only under WithCollapseSites. Step markers,
// annotations, opaque and non-Clifford ops are never sites.
//
// Order: (Step, Index, Qubit).
func Enumerate(fc circuit.FlatCircuit, part Partition, opts ...Option) ([]Location, error) {
	cfg := gatherOptions(opts...)
	if err := part.Validate(fc.NumQubits); err != nil {
		return nil, fmt.Errorf("Enumerate: %w", err)
	}

	return enumerate(fc, part, cfg), nil
}

func enumerate(fc circuit.FlatCircuit, part Partition, cfg config) []Location {
	site := make([]bool, fc.NumQubits)
	if cfg.siteScope == AllSites {
		for q := range site {
			site[q] = true
		}
	} else {
		for _, q := range part.Data {
			site[q] = true
		}
	}

	var locs []Location
	for _, op := range fc.Ops {
		if !isSite(op.Kind.Class(), cfg.collapseSites) {
			continue
		}
		qubits := slices.Clone(op.Targets)
		slices.Sort(qubits)
		for _, q := range qubits {
			if q < 0 || q >= len(site) || !site[q] {
				continue
			}
			locs = append(locs, Location{
				Step:      op.Step,
				Index:     op.Index,
				Qubit:     q,
				Gate:      op.Kind,
				CoTargets: coTargets(op.Targets, q),
			})
		}
	}

	return locs
}

func isSite(c circuit.Class, collapse bool) bool {
	switch c {
	case circuit.ClassClifford1, circuit.ClassClifford2:
		return true
	case circuit.ClassCollapse:
		return collapse
	default:
		return false
	}
}

// coTargets returns the op's other targets, nil for single-qubit ops.
func coTargets(targets []int, q int) []int {
	var out []int
	for _, t := range targets {
		if t != q {
			out = append(out, t)
		}
	}

	return out
}
