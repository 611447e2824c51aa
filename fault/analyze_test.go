package fault_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qfault/fault"
	"github.com/katalvlaran/qfault/pauli"
	"github.com/katalvlaran/qfault/tableau"
)

func TestAnalyze_CatState(t *testing.T) {
	fc := flat(t, catState)
	events, err := fault.Analyze(context.Background(), fc, catPartition())
	require.NoError(t, err)
	require.Len(t, events, 27) // 9 locations × {X, Y, Z}
	assert.True(t, fault.IsSorted(events))

	first := events[0]
	assert.Equal(t, pauli.X, first.Injected)
	assert.Equal(t, "XXXXX", first.Final.String())
	assert.Equal(t, pauli.Y, events[1].Injected)
	assert.Equal(t, pauli.Z, events[2].Injected)
	assert.Equal(t, "ZIIII", events[2].Final.String())
}

// TestAnalyze_MatchesScore checks every analyzed event against Score.
func TestAnalyze_MatchesScore(t *testing.T) {
	fc := randomFlat(t, 5, 60, 17)
	part := fault.Partition{Data: []int{0, 1, 2}, Flag: []int{4}}

	for _, inj := range []fault.Injection{fault.InjectAfterGate, fault.InjectBeforeGate} {
		events, err := fault.Analyze(context.Background(), fc, part, fault.WithInjection(inj))
		require.NoError(t, err)
		for _, ev := range events {
			want, err := fault.Score(fc, ev.Location, ev.Injected, part, fault.WithInjection(inj))
			require.NoError(t, err)
			assert.Equal(t, keys([]fault.Event{want}), keys([]fault.Event{ev}))
		}
	}
}

// TestAnalyze_Determinism runs the same analysis under every pool size and
// strategy and expects identical ordered output.
func TestAnalyze_Determinism(t *testing.T) {
	fc := randomFlat(t, 7, 150, 2024)
	part := fault.Partition{Data: []int{0, 1, 2, 3, 4}, Flag: []int{5, 6}}

	for _, inj := range []fault.Injection{fault.InjectAfterGate, fault.InjectBeforeGate} {
		base, err := fault.Analyze(context.Background(), fc, part,
			fault.WithInjection(inj), fault.WithWorkers(1))
		require.NoError(t, err)
		require.NotEmpty(t, base)
		want := keys(base)

		runs := [][]fault.Option{
			{fault.WithWorkers(1)},
			{fault.WithWorkers(3)},
			{fault.WithWorkers(16)},
			{fault.WithStrategy(fault.StrategySweep)},
		}
		for i, opts := range runs {
			opts = append(opts, fault.WithInjection(inj))
			got, err := fault.Analyze(context.Background(), fc, part, opts...)
			require.NoError(t, err)
			assert.Equal(t, want, keys(got), "run %d injection %s", i, inj)
		}
	}
}

func TestAnalyze_Cancelled(t *testing.T) {
	fc := randomFlat(t, 4, 40, 5)
	part := fault.Partition{Data: []int{0, 1, 2, 3}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, s := range []fault.Strategy{fault.StrategyIndependent, fault.StrategySweep} {
		events, err := fault.Analyze(ctx, fc, part, fault.WithStrategy(s))
		assert.ErrorIs(t, err, context.Canceled, s.String())
		assert.Nil(t, events)
	}
}

// TestAnalyze_UnsupportedGate fails only when a non-Clifford op lies in some
// location's suffix.
func TestAnalyze_UnsupportedGate(t *testing.T) {
	part := fault.Partition{Data: []int{0, 1}}
	for _, s := range []fault.Strategy{fault.StrategyIndependent, fault.StrategySweep} {
		_, err := fault.Analyze(context.Background(), flat(t, "H 0\nT 1\nCX 0 1\n"), part, fault.WithStrategy(s))
		assert.ErrorIs(t, err, tableau.ErrUnsupportedGate, s.String())

		events, err := fault.Analyze(context.Background(), flat(t, "T 0\nH 0\nCX 0 1\n"), part, fault.WithStrategy(s))
		require.NoError(t, err, s.String())
		assert.Len(t, events, 9)
	}
}

func TestAnalyze_WithPaulis(t *testing.T) {
	fc := flat(t, catState)
	events, err := fault.Analyze(context.Background(), fc, catPartition(),
		fault.WithPaulis(pauli.Z, pauli.X, pauli.Z))
	require.NoError(t, err)
	require.Len(t, events, 18)
	assert.Equal(t, pauli.X, events[0].Injected)
	assert.Equal(t, pauli.Z, events[1].Injected)
}

func TestAnalyze_NoLocations(t *testing.T) {
	fc := flat(t, "M 0 1\n")
	for _, s := range []fault.Strategy{fault.StrategyIndependent, fault.StrategySweep} {
		events, err := fault.Analyze(context.Background(), fc, fault.Partition{Data: []int{0, 1}}, fault.WithStrategy(s))
		require.NoError(t, err)
		assert.Empty(t, events)
	}
}

type countingObserver struct {
	mu        sync.Mutex
	locations int
	events    int
	stats     []fault.Stats
}

func (o *countingObserver) ObserveLocation(_ fault.Location, evs []fault.Event) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.locations++
	o.events += len(evs)
}

func (o *countingObserver) ObserveAnalysis(s fault.Stats) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stats = append(o.stats, s)
}

func TestAnalyze_Observer(t *testing.T) {
	obs := &countingObserver{}
	fc := flat(t, catState)
	_, err := fault.Analyze(context.Background(), fc, catPartition(),
		fault.WithObserver(obs), fault.WithWorkers(4))
	require.NoError(t, err)

	assert.Equal(t, 9, obs.locations)
	assert.Equal(t, 27, obs.events)
	require.Len(t, obs.stats, 1)
	assert.Equal(t, 9, obs.stats[0].Locations)
	assert.Equal(t, 27, obs.stats[0].Events)
	assert.Equal(t, 4, obs.stats[0].Workers)
	assert.Equal(t, fault.StrategyIndependent, obs.stats[0].Strategy)
}

func TestSort(t *testing.T) {
	fc := flat(t, catState)
	events, err := fault.Analyze(context.Background(), fc, catPartition())
	require.NoError(t, err)

	shuffled := make([]fault.Event, len(events))
	for i := range events {
		shuffled[len(events)-1-i] = events[i]
	}
	assert.False(t, fault.IsSorted(shuffled))
	fault.Sort(shuffled)
	assert.Equal(t, keys(events), keys(shuffled))
}

func TestParseModes(t *testing.T) {
	inj, err := fault.ParseInjection("Before")
	require.NoError(t, err)
	assert.Equal(t, fault.InjectBeforeGate, inj)

	det, err := fault.ParseFlagDetection("x-only")
	require.NoError(t, err)
	assert.Equal(t, fault.DetectXOnly, det)

	scope, err := fault.ParseSiteScope("all")
	require.NoError(t, err)
	assert.Equal(t, fault.AllSites, scope)

	st, err := fault.ParseStrategy("sweep")
	require.NoError(t, err)
	assert.Equal(t, fault.StrategySweep, st)

	_, err = fault.ParseStrategy("magic")
	assert.ErrorIs(t, err, fault.ErrUnknownMode)

	assert.Equal(t, "any", fault.DetectAnyNonIdentity.String())
}

func TestOptions_Panics(t *testing.T) {
	assert.PanicsWithValue(t, "fault: WithWorkers(k<1)", func() { fault.WithWorkers(0) })
	assert.Panics(t, func() { fault.WithLogger(nil) })
	assert.Panics(t, func() { fault.WithObserver(nil) })
	assert.Panics(t, func() { fault.WithPaulis() })
	assert.Panics(t, func() { fault.WithPaulis(pauli.I) })
	assert.Panics(t, func() { fault.WithStrategy(fault.Strategy(9)) })
}
