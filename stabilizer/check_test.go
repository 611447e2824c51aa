package stabilizer_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qfault/circuit"
	"github.com/katalvlaran/qfault/pauli"
	"github.com/katalvlaran/qfault/stabilizer"
	"github.com/katalvlaran/qfault/tableau"
)

func ops(ss ...string) []pauli.Operator {
	out := make([]pauli.Operator, len(ss))
	for i, s := range ss {
		out[i] = pauli.MustParse(s)
	}

	return out
}

func TestCheck_CatState(t *testing.T) {
	fc := flat(t, "H 0\nCX 0 1\nCX 0 2\nCX 0 3\nCX 0 4")
	rs, err := stabilizer.Check(context.Background(), stabilizer.NewCHP(), fc,
		ops("XXXXX", "ZZIII", "IZZII", "IIZZI", "IIIZZ"))
	require.NoError(t, err)
	require.Len(t, rs, 5)
	assert.True(t, rs.AllPreserved())
	assert.Empty(t, rs.Failed())
	for _, r := range rs {
		assert.Equal(t, stabilizer.Plus, r.Expectation)
	}
}

func TestCheck_Failures(t *testing.T) {
	// a trailing Z flips XXXXX; ZIIII is not in the group
	fc := flat(t, "H 0\nCX 0 1\nCX 0 2\nCX 0 3\nCX 0 4\nZ 2")
	rs, err := stabilizer.Check(context.Background(), stabilizer.NewCHP(), fc,
		ops("XXXXX", "ZZIII", "ZIIII"))
	require.NoError(t, err)
	assert.False(t, rs.AllPreserved())

	assert.Equal(t, stabilizer.Minus, rs[0].Expectation)
	assert.Equal(t, stabilizer.Plus, rs[1].Expectation)
	assert.Equal(t, stabilizer.Random, rs[2].Expectation)

	failed := rs.Failed()
	require.Len(t, failed, 2)
	assert.Equal(t, "XXXXX", failed[0].Stabilizer.String())
	assert.Equal(t, "ZIIII", failed[1].Stabilizer.String())
}

func TestCheck_Empty(t *testing.T) {
	rs, err := stabilizer.Check(context.Background(), stabilizer.NewCHP(), flat(t, "H 0"), nil)
	require.NoError(t, err)
	assert.Empty(t, rs)
	assert.True(t, rs.AllPreserved())
}

func TestCheck_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := stabilizer.Check(ctx, stabilizer.NewCHP(), flat(t, "T 0"), ops("Z"))
	assert.ErrorIs(t, err, tableau.ErrUnsupportedGate)

	_, err = stabilizer.Check(ctx, stabilizer.NewCHP(), flat(t, "H 0\nCX 0 1"), ops("XX", "Z"))
	assert.ErrorIs(t, err, pauli.ErrSizeMismatch)
}

// TestCheck_Simulator drives Check through the interface only.
func TestCheck_Simulator(t *testing.T) {
	fc := circuit.FlatCircuit{NumQubits: 1}
	boom := errors.New("boom")

	sim := new(mockSimulator)
	sim.On("Prepare", mock.Anything, fc).Return(nil).Once()
	sim.On("PeekObservableExpectation", pauli.MustParse("X")).Return(stabilizer.Minus, nil).Once()
	sim.On("PeekObservableExpectation", pauli.MustParse("Z")).Return(stabilizer.Plus, nil).Once()

	rs, err := stabilizer.Check(context.Background(), sim, fc, ops("X", "Z"))
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true}, []bool{rs[0].Preserved, rs[1].Preserved})
	sim.AssertExpectations(t)

	sim = new(mockSimulator)
	sim.On("Prepare", mock.Anything, fc).Return(boom).Once()
	_, err = stabilizer.Check(context.Background(), sim, fc, ops("X"))
	assert.ErrorIs(t, err, boom)
	sim.AssertNotCalled(t, "PeekObservableExpectation", mock.Anything)

	sim = new(mockSimulator)
	sim.On("Prepare", mock.Anything, fc).Return(nil).Once()
	sim.On("PeekObservableExpectation", mock.Anything).Return(stabilizer.Random, boom).Once()
	_, err = stabilizer.Check(context.Background(), sim, fc, ops("Y", "Z"))
	assert.ErrorIs(t, err, boom)
	sim.AssertExpectations(t)
}

func TestResults_JSON(t *testing.T) {
	rs := stabilizer.Results{
		{Stabilizer: pauli.MustParse("XX"), Expectation: stabilizer.Minus},
		{Stabilizer: pauli.MustParse("ZZ"), Expectation: stabilizer.Plus, Preserved: true},
	}
	b, err := json.Marshal(rs)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"stabilizer":"XX","expectation":"-1","preserved":false},
		{"stabilizer":"ZZ","expectation":"+1","preserved":true}
	]`, string(b))
}

func TestExpectation_String(t *testing.T) {
	assert.Equal(t, "+1", stabilizer.Plus.String())
	assert.Equal(t, "-1", stabilizer.Minus.String())
	assert.Equal(t, "0", stabilizer.Random.String())
}
