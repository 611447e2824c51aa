package fault

import (
	"io"
	"log/slog"
	"runtime"

	"github.com/katalvlaran/qfault/pauli"
)

// Panic messages of the option constructors.
const (
	panicNilLogger            = "fault: WithLogger(nil)"
	panicNilObserver          = "fault: WithObserver(nil)"
	panicWorkersInvalid       = "fault: WithWorkers(k<1)"
	panicStrategyUnknown      = "fault: WithStrategy(unknown)"
	panicInjectionUnknown     = "fault: WithInjection(unknown)"
	panicFlagDetectionUnknown = "fault: WithFlagDetection(unknown)"
	panicSiteScopeUnknown     = "fault: WithSiteScope(unknown)"
	panicPaulisEmpty          = "fault: WithPaulis()"
	panicPaulisLetter         = "fault: WithPaulis: letter must be X, Y or Z"
)

// Option configures Enumerate, Score and Analyze. Each entry point reads
// only the fields it needs.
type Option func(*config)

type config struct {
	logger        *slog.Logger
	observer      Observer
	workers       int
	strategy      Strategy
	injection     Injection
	flagDetection FlagDetection
	siteScope     SiteScope
	collapseSites bool
	paulis        []pauli.Letter
}

// DefaultWorkers is the pool size when WithWorkers is not given.
func DefaultWorkers() int { return runtime.GOMAXPROCS(0) }

func defaultConfig() config {
	return config{
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		observer:      nopObserver{},
		workers:       DefaultWorkers(),
		strategy:      StrategyIndependent,
		injection:     InjectAfterGate,
		flagDetection: DetectXOnly,
		siteScope:     DataSites,
		paulis:        pauli.Injectable[:],
	}
}

func gatherOptions(opts ...Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// WithLogger sets the logger for debug-level progress records. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicNilLogger)
	}
	return func(c *config) { c.logger = l }
}

// WithObserver registers a progress observer (e.g. metrics). Panics on nil.
func WithObserver(o Observer) Option {
	if o == nil {
		panic(panicNilObserver)
	}
	return func(c *config) { c.observer = o }
}

// WithWorkers bounds the Analyze worker pool. Panics if k < 1.
func WithWorkers(k int) Option {
	if k < 1 {
		panic(panicWorkersInvalid)
	}
	return func(c *config) { c.workers = k }
}

// WithStrategy selects how suffix tableaux are obtained. Panics on an
// undefined value.
func WithStrategy(s Strategy) Option {
	if s > StrategySweep {
		panic(panicStrategyUnknown)
	}
	return func(c *config) { c.strategy = s }
}

// WithInjection selects the injection offset. Panics on an undefined value.
func WithInjection(i Injection) Option {
	if i > InjectBeforeGate {
		panic(panicInjectionUnknown)
	}
	return func(c *config) { c.injection = i }
}

// WithFlagDetection selects the flag rule. Panics on an undefined value.
func WithFlagDetection(d FlagDetection) Option {
	if d > DetectAnyNonIdentity {
		panic(panicFlagDetectionUnknown)
	}
	return func(c *config) { c.flagDetection = d }
}

// WithSiteScope selects which wires are fault sites. Panics on an undefined
// value.
func WithSiteScope(s SiteScope) Option {
	if s > AllSites {
		panic(panicSiteScopeUnknown)
	}
	return func(c *config) { c.siteScope = s }
}

// WithCollapseSites makes measurement and reset ops fault sites too.
func WithCollapseSites() Option {
	return func(c *config) { c.collapseSites = true }
}

// WithPaulis restricts the injected letters used by Analyze. The set is
// deduplicated and kept in X < Y < Z order. Panics on an empty set or on I.
func WithPaulis(ls ...pauli.Letter) Option {
	if len(ls) == 0 {
		panic(panicPaulisEmpty)
	}
	var keep [4]bool
	for _, l := range ls {
		if l == pauli.I || l > pauli.Y {
			panic(panicPaulisLetter)
		}
		keep[l] = true
	}
	set := make([]pauli.Letter, 0, 3)
	for _, l := range pauli.Injectable {
		if keep[l] {
			set = append(set, l)
		}
	}
	return func(c *config) { c.paulis = set }
}

type nopObserver struct{}

func (nopObserver) ObserveLocation(Location, []Event) {}
func (nopObserver) ObserveAnalysis(Stats)             {}
