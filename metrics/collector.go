// SPDX-License-Identifier: MIT
// Package: qfault/metrics
//
// collector.go: Prometheus collector for Analyze and Evaluate.
//
// Cardinality: every label value comes from a closed set (gate names,
// Pauli letters, strategy names, booleans).

package metrics

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/qfault/fault"
	"github.com/katalvlaran/qfault/verdict"
)

var (
	// ErrInvalidConfig is returned when Namespace or Subsystem is empty.
	ErrInvalidConfig = errors.New("metrics: invalid configuration")

	// ErrRegistrationFailed wraps a registry rejection.
	ErrRegistrationFailed = errors.New("metrics: registration failed")
)

// Default metric name prefixes: qfault_analysis_*.
const (
	DefaultNamespace = "qfault"
	DefaultSubsystem = "analysis"
)

// DefaultDurationBuckets spans sub-millisecond analyses up to minutes.
var DefaultDurationBuckets = []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30, 120}

// DefaultWeightBuckets covers residual weights of small codes.
var DefaultWeightBuckets = []float64{0, 1, 2, 3, 4, 6, 8, 12, 16}

// Config configures NewCollector. Zero fields take the defaults above; a nil
// Registry gets a fresh private registry.
type Config struct {
	Namespace       string
	Subsystem       string
	Registry        *prometheus.Registry
	DurationBuckets []float64
	WeightBuckets   []float64
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.Namespace == "" {
		return fmt.Errorf("namespace is empty: %w", ErrInvalidConfig)
	}
	if c.Subsystem == "" {
		return fmt.Errorf("subsystem is empty: %w", ErrInvalidConfig)
	}

	return nil
}

// Collector records analysis progress and verdicts. Safe for concurrent use.
type Collector struct {
	registry *prometheus.Registry

	locations  *prometheus.CounterVec   // gate
	events     *prometheus.CounterVec   // injected, flagged
	dataWeight prometheus.Histogram     // residual data weight per event
	analyses   *prometheus.CounterVec   // strategy
	duration   *prometheus.HistogramVec // strategy
	verdicts   *prometheus.CounterVec   // fault_tolerant
	score      prometheus.Gauge
	violations prometheus.Gauge

	mu         sync.Mutex
	collectors []prometheus.Collector
}

var _ fault.Observer = (*Collector)(nil)

// NewCollector builds and registers every metric. A nil cfg uses defaults.
func NewCollector(cfg *Config) (*Collector, error) {
	c := Config{Namespace: DefaultNamespace, Subsystem: DefaultSubsystem}
	if cfg != nil {
		c = *cfg
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.DurationBuckets == nil {
		c.DurationBuckets = DefaultDurationBuckets
	}
	if c.WeightBuckets == nil {
		c.WeightBuckets = DefaultWeightBuckets
	}
	if c.Registry == nil {
		c.Registry = prometheus.NewRegistry()
	}

	col := &Collector{registry: c.Registry}
	col.locations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: c.Namespace,
		Subsystem: c.Subsystem,
		Name:      "locations_total",
		Help:      "Fault locations evaluated, by gate kind.",
	}, []string{"gate"})
	col.events = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: c.Namespace,
		Subsystem: c.Subsystem,
		Name:      "events_total",
		Help:      "Propagated fault events, by injected Pauli and flag outcome.",
	}, []string{"injected", "flagged"})
	col.dataWeight = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: c.Namespace,
		Subsystem: c.Subsystem,
		Name:      "residual_data_weight",
		Help:      "Residual weight on data qubits per event.",
		Buckets:   c.WeightBuckets,
	})
	col.analyses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: c.Namespace,
		Subsystem: c.Subsystem,
		Name:      "runs_total",
		Help:      "Completed Analyze calls, by strategy.",
	}, []string{"strategy"})
	col.duration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: c.Namespace,
		Subsystem: c.Subsystem,
		Name:      "duration_seconds",
		Help:      "Wall time of Analyze calls.",
		Buckets:   c.DurationBuckets,
	}, []string{"strategy"})
	col.verdicts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: c.Namespace,
		Subsystem: c.Subsystem,
		Name:      "verdicts_total",
		Help:      "Verdicts produced, by outcome.",
	}, []string{"fault_tolerant"})
	col.score = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: c.Namespace,
		Subsystem: c.Subsystem,
		Name:      "score",
		Help:      "Score of the most recent verdict.",
	})
	col.violations = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: c.Namespace,
		Subsystem: c.Subsystem,
		Name:      "violations",
		Help:      "Violations in the most recent verdict.",
	})

	for _, pc := range []prometheus.Collector{
		col.locations, col.events, col.dataWeight, col.analyses,
		col.duration, col.verdicts, col.score, col.violations,
	} {
		if err := col.registry.Register(pc); err != nil {
			col.Close()
			return nil, fmt.Errorf("%w: %v", ErrRegistrationFailed, err)
		}
		col.collectors = append(col.collectors, pc)
	}

	return col, nil
}

// ObserveLocation implements fault.Observer.
func (c *Collector) ObserveLocation(loc fault.Location, events []fault.Event) {
	c.locations.WithLabelValues(loc.Gate.Name()).Inc()
	for _, e := range events {
		c.events.WithLabelValues(e.Injected.String(), strconv.FormatBool(e.Flagged())).Inc()
		c.dataWeight.Observe(float64(e.DataWeight))
	}
}

// ObserveAnalysis implements fault.Observer.
func (c *Collector) ObserveAnalysis(stats fault.Stats) {
	s := stats.Strategy.String()
	c.analyses.WithLabelValues(s).Inc()
	c.duration.WithLabelValues(s).Observe(stats.Duration.Seconds())
}

// ObserveReport records a verdict.
func (c *Collector) ObserveReport(r verdict.Report) {
	c.verdicts.WithLabelValues(strconv.FormatBool(r.FaultTolerant)).Inc()
	c.score.Set(r.Score)
	c.violations.Set(float64(len(r.Violations)))
}

// Registry returns the registry the metrics live in.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// WriteTextfile writes the registry to path in the text exposition format,
// atomically (temp file + rename).
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("WriteTextfile %s: %w", path, err)
	}

	return nil
}

// Close unregisters every metric. Safe to call more than once.
func (c *Collector) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, pc := range c.collectors {
		c.registry.Unregister(pc)
	}
	c.collectors = nil
}
