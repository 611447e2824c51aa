package verdict

import (
	"fmt"
	"math"

	"github.com/katalvlaran/qfault/fault"
)

// Report is the fault-tolerance verdict over one event list.
//
// Threshold is the effective weight compared against DataWeight, after
// WithThreshold, WithDistance and DefaultThreshold are resolved in that
// order. With no distance it reads 1, not 0: weight 1 is correctable.
type Report struct {
	FaultTolerant bool          `json:"fault_tolerant" yaml:"fault_tolerant"`
	Score         float64       `json:"score" yaml:"score"`
	Violations    []fault.Event `json:"violations" yaml:"violations"`
	Threshold     int           `json:"threshold" yaml:"threshold"`
	Distance      int           `json:"distance,omitempty" yaml:"distance,omitempty"`
	Exponent      float64       `json:"exponent" yaml:"exponent"`
	Total         int           `json:"total" yaml:"total"`
	OverThreshold int           `json:"over_threshold" yaml:"over_threshold"`
}

// Threshold returns ⌊(d−1)/2⌋, the number of faults a distance-d code
// corrects. d < 1 yields 0.
func Threshold(d int) int {
	if d < 1 {
		return 0
	}

	return (d - 1) / 2
}

// Evaluate judges events in a single pass. Violations keep the input order.
func Evaluate(events []fault.Event, opts ...Option) Report {
	cfg := gatherOptions(opts...)
	thr := cfg.resolveThreshold()

	r := Report{
		Threshold:  thr,
		Distance:   cfg.distance,
		Exponent:   cfg.exponent,
		Total:      len(events),
		Violations: []fault.Event{},
	}
	var undetected, over float64
	for _, e := range events {
		if e.DataWeight <= thr {
			continue
		}
		w := math.Pow(float64(e.DataWeight), cfg.exponent)
		over += w
		r.OverThreshold++
		if e.FlagWeight == 0 {
			undetected += w
			r.Violations = append(r.Violations, e)
		}
	}

	r.FaultTolerant = len(r.Violations) == 0
	r.Score = 1
	if !r.FaultTolerant {
		r.Score = 1 - undetected/over
		if r.Score >= 1 {
			// keep Score < 1 whenever a violation exists
			r.Score = math.Nextafter(1, 0)
		}
	}

	return r
}

// Summary renders a one-line description.
func (r Report) Summary() string {
	verdict := "NOT fault-tolerant"
	if r.FaultTolerant {
		verdict = "fault-tolerant"
	}

	return fmt.Sprintf("%s: score=%.4f threshold=%d events=%d over_threshold=%d violations=%d",
		verdict, r.Score, r.Threshold, r.Total, r.OverThreshold, len(r.Violations))
}
