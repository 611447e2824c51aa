package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/katalvlaran/qfault/fault"
	"github.com/katalvlaran/qfault/verdict"
)

// ErrInvalid marks a configuration value that cannot be used.
var ErrInvalid = errors.New("config: invalid value")

// MaxQubit is the largest qubit index a qubit list may name.
const MaxQubit = 1<<20 - 1

// Output formats.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// Validate checks every value that does not depend on the circuit.
func (c *Config) Validate() error {
	var errs []error
	if _, err := ParseQubits(c.Data); err != nil {
		errs = append(errs, fmt.Errorf("data: %w", err))
	}
	if _, err := ParseQubits(c.Flag); err != nil {
		errs = append(errs, fmt.Errorf("flag: %w", err))
	}
	if c.Distance < 0 {
		errs = append(errs, fmt.Errorf("distance %d: %w", c.Distance, ErrInvalid))
	}
	if math.IsNaN(c.Exponent) || math.IsInf(c.Exponent, 0) || c.Exponent < 0 {
		errs = append(errs, fmt.Errorf("exponent %g: %w", c.Exponent, ErrInvalid))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers %d: %w", c.Workers, ErrInvalid))
	}
	if _, err := fault.ParseFlagDetection(c.FlagMode); err != nil {
		errs = append(errs, fmt.Errorf("flag_mode: %w", err))
	}
	if _, err := fault.ParseInjection(c.Injection); err != nil {
		errs = append(errs, fmt.Errorf("injection: %w", err))
	}
	if _, err := fault.ParseSiteScope(c.SiteScope); err != nil {
		errs = append(errs, fmt.Errorf("site_scope: %w", err))
	}
	if _, err := fault.ParseStrategy(c.Strategy); err != nil {
		errs = append(errs, fmt.Errorf("strategy: %w", err))
	}
	if !slices.Contains([]string{OutputTable, OutputJSON, OutputYAML}, c.Output) {
		errs = append(errs, fmt.Errorf("output %q (want table, json or yaml): %w", c.Output, ErrInvalid))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("log_format %q (want text or json): %w", c.LogFormat, ErrInvalid))
	}

	return errors.Join(errs...)
}

// ParseQubits reads a qubit list such as "0-4,7". Entries may repeat; the
// result is sorted and deduplicated. Empty input yields nil. Indices above
// MaxQubit are rejected before any range is expanded.
func ParseQubits(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		lo, hi, isRange := strings.Cut(part, "-")
		a, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil || a < 0 || a > MaxQubit {
			return nil, fmt.Errorf("qubit %q: %w", part, ErrInvalid)
		}
		b := a
		if isRange {
			b, err = strconv.Atoi(strings.TrimSpace(hi))
			if err != nil || b < a || b > MaxQubit {
				return nil, fmt.Errorf("range %q: %w", part, ErrInvalid)
			}
		}
		for q := a; q <= b; q++ {
			out = append(out, q)
		}
	}
	slices.Sort(out)

	return slices.Compact(out), nil
}

// Partition resolves the data and flag lists for an n-qubit circuit. An
// empty data list means every qubit that is not a flag.
func (c *Config) Partition(n int) (fault.Partition, error) {
	data, err := ParseQubits(c.Data)
	if err != nil {
		return fault.Partition{}, err
	}
	flag, err := ParseQubits(c.Flag)
	if err != nil {
		return fault.Partition{}, err
	}
	if len(data) == 0 {
		for q := 0; q < n; q++ {
			if !slices.Contains(flag, q) {
				data = append(data, q)
			}
		}
	}
	p := fault.Partition{Data: data, Flag: flag}
	if err := p.Validate(n); err != nil {
		return fault.Partition{}, err
	}

	return p, nil
}

// AnalyzeOptions translates the analysis keys into fault options.
func (c *Config) AnalyzeOptions(logger *slog.Logger) ([]fault.Option, error) {
	mode, err := fault.ParseFlagDetection(c.FlagMode)
	if err != nil {
		return nil, err
	}
	inj, err := fault.ParseInjection(c.Injection)
	if err != nil {
		return nil, err
	}
	scope, err := fault.ParseSiteScope(c.SiteScope)
	if err != nil {
		return nil, err
	}
	strat, err := fault.ParseStrategy(c.Strategy)
	if err != nil {
		return nil, err
	}

	opts := []fault.Option{
		fault.WithLogger(logger),
		fault.WithFlagDetection(mode),
		fault.WithInjection(inj),
		fault.WithSiteScope(scope),
		fault.WithStrategy(strat),
	}
	if c.Workers > 0 {
		opts = append(opts, fault.WithWorkers(c.Workers))
	}
	if c.CollapseSites {
		opts = append(opts, fault.WithCollapseSites())
	}

	return opts, nil
}

// VerdictOptions translates the verdict keys. A negative threshold means
// "derive from distance".
func (c *Config) VerdictOptions() []verdict.Option {
	opts := []verdict.Option{verdict.WithExponent(c.Exponent)}
	if c.Distance > 0 {
		opts = append(opts, verdict.WithDistance(c.Distance))
	}
	if c.Threshold >= 0 {
		opts = append(opts, verdict.WithThreshold(c.Threshold))
	}

	return opts
}

// NewLogger builds the stderr-style logger described by log_level and
// log_format.
func (c *Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}

	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log_level %q: %w", s, ErrInvalid)
	}

	return l, nil
}
