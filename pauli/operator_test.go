package pauli_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qfault/pauli"
)

// TestParse_RoundTrip verifies that letter strings survive Parse/String and
// that '_' is read as identity.
func TestParse_RoundTrip(t *testing.T) {
	p, err := pauli.Parse("XIZY")
	require.NoError(t, err)
	assert.Equal(t, 4, p.Len())
	assert.Equal(t, "XIZY", p.String())
	assert.Equal(t, []pauli.Letter{pauli.X, pauli.I, pauli.Z, pauli.Y}, p.Letters())

	q, err := pauli.Parse("X_Z_")
	require.NoError(t, err)
	assert.Equal(t, "XIZI", q.String())
}

// TestParse_InvalidLetter ensures unknown runes surface ErrInvalidLetter.
func TestParse_InvalidLetter(t *testing.T) {
	_, err := pauli.Parse("XQZ")
	assert.ErrorIs(t, err, pauli.ErrInvalidLetter)
}

// TestSingle checks placement and range validation of weight-one operators.
func TestSingle(t *testing.T) {
	p, err := pauli.Single(3, 1, pauli.Y)
	require.NoError(t, err)
	assert.Equal(t, "IYI", p.String())
	assert.Equal(t, 1, p.Weight())

	_, err = pauli.Single(3, 3, pauli.X)
	assert.ErrorIs(t, err, pauli.ErrOutOfRange)
	_, err = pauli.Single(3, -1, pauli.X)
	assert.ErrorIs(t, err, pauli.ErrOutOfRange)
}

// TestMul_PhaseFree verifies XOR multiplication, including X·Z = Y with the
// phase dropped, and that operands are left untouched.
func TestMul_PhaseFree(t *testing.T) {
	a := pauli.MustParse("XXIZ")
	b := pauli.MustParse("IZZZ")

	c, err := a.Mul(b)
	require.NoError(t, err)
	assert.Equal(t, "XYZI", c.String())
	assert.Equal(t, "XXIZ", a.String(), "receiver must stay immutable")
	assert.Equal(t, "IZZZ", b.String(), "argument must stay immutable")

	_, err = a.Mul(pauli.New(3))
	assert.ErrorIs(t, err, pauli.ErrSizeMismatch)
}

// TestCommutes covers commuting, anti-commuting and size-mismatch cases.
func TestCommutes(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"XX", "ZZ", true},
		{"XI", "ZI", false},
		{"XYZ", "XYZ", true},
		{"YI", "XI", false},
		{"III", "XYZ", true},
		{"XXXX", "ZZII", true},
	}
	for _, tc := range cases {
		got, err := pauli.MustParse(tc.a).Commutes(pauli.MustParse(tc.b))
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s vs %s", tc.a, tc.b)
	}

	_, err := pauli.MustParse("X").Commutes(pauli.MustParse("XX"))
	assert.ErrorIs(t, err, pauli.ErrSizeMismatch)
}

// TestWeights checks the data/flag counting helpers the scorer relies on.
func TestWeights(t *testing.T) {
	p := pauli.MustParse("XZYIZ")
	assert.Equal(t, 4, p.Weight())
	assert.Equal(t, []int{0, 1, 2, 4}, p.Support())
	assert.Equal(t, 2, p.WeightOn([]int{1, 3, 4}))
	assert.Equal(t, 2, p.XWeightOn([]int{0, 1, 2}), "Z on qubit 1 has no X component")
	assert.Equal(t, 0, p.WeightOn([]int{9}), "out-of-range qubits count as identity")
}

// TestWith verifies copy-on-write replacement.
func TestWith(t *testing.T) {
	p := pauli.New(3)
	q, err := p.With(2, pauli.Z)
	require.NoError(t, err)
	assert.Equal(t, "IIZ", q.String())
	assert.True(t, p.IsIdentity())

	_, err = p.With(5, pauli.X)
	assert.ErrorIs(t, err, pauli.ErrOutOfRange)
}

// TestEqual_ZeroValue ensures the zero Operator behaves like New(0).
func TestEqual_ZeroValue(t *testing.T) {
	var z pauli.Operator
	assert.True(t, z.Equal(pauli.New(0)))
	assert.Equal(t, 0, z.Weight())
	assert.Equal(t, "", z.String())
	assert.False(t, pauli.New(2).Equal(pauli.New(3)))
}

// TestJSON ensures operators and letters serialize as compact strings.
func TestJSON(t *testing.T) {
	type rec struct {
		Op     pauli.Operator `json:"op"`
		Letter pauli.Letter   `json:"letter"`
	}
	in := rec{Op: pauli.MustParse("IXYZ"), Letter: pauli.Y}
	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"op":"IXYZ","letter":"Y"}`, string(b))

	var out rec
	require.NoError(t, json.Unmarshal(b, &out))
	assert.True(t, in.Op.Equal(out.Op))
	assert.Equal(t, pauli.Y, out.Letter)
}

// TestLetterRank locks the I<X<Y<Z report order.
func TestLetterRank(t *testing.T) {
	assert.Less(t, pauli.X.Rank(), pauli.Y.Rank())
	assert.Less(t, pauli.Y.Rank(), pauli.Z.Rank())
	assert.Equal(t, pauli.Y, pauli.FromBits(true, true))
}
