package fault_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qfault/circuit"
	"github.com/katalvlaran/qfault/fault"
)

func TestEnumerate_CatState(t *testing.T) {
	fc := flat(t, catState)
	locs, err := fault.Enumerate(fc, catPartition())
	require.NoError(t, err)
	require.Len(t, locs, 9)

	assert.Equal(t, fault.Location{Index: 0, Qubit: 0, Gate: circuit.GateH}, locs[0])
	assert.Equal(t, fault.Location{Index: 1, Qubit: 0, Gate: circuit.GateCX, CoTargets: []int{1}}, locs[1])
	assert.Equal(t, fault.Location{Index: 1, Qubit: 1, Gate: circuit.GateCX, CoTargets: []int{0}}, locs[2])
	assert.Equal(t, 4, locs[8].Index)
	assert.Equal(t, 4, locs[8].Qubit)
}

// TestEnumerate_QubitOrderWithinOp sorts the wires of a reversed pair.
func TestEnumerate_QubitOrderWithinOp(t *testing.T) {
	fc := flat(t, "CX 3 1\n")
	locs, err := fault.Enumerate(fc, fault.Partition{Data: []int{0, 1, 2, 3}})
	require.NoError(t, err)
	require.Len(t, locs, 2)
	assert.Equal(t, 1, locs[0].Qubit)
	assert.Equal(t, 3, locs[1].Qubit)
}

func TestEnumerate_SiteScope(t *testing.T) {
	fc := flat(t, catState)
	part := fault.Partition{Data: []int{0}, Flag: []int{4}}

	dataOnly, err := fault.Enumerate(fc, part)
	require.NoError(t, err)
	assert.Len(t, dataOnly, 5)
	for _, l := range dataOnly {
		assert.Equal(t, 0, l.Qubit)
	}

	all, err := fault.Enumerate(fc, part, fault.WithSiteScope(fault.AllSites))
	require.NoError(t, err)
	assert.Len(t, all, 9)
}

// TestEnumerate_NonSites covers markers, annotations, opaque, non-Clifford
// and collapse ops.
func TestEnumerate_NonSites(t *testing.T) {
	fc := flat(t, `
H 0
TICK
DETECTOR rec[-1]
MYSTERY 0 1
T 1
M 0
R 1
CZ 0 1
`)
	part := fault.Partition{Data: []int{0, 1}}

	locs, err := fault.Enumerate(fc, part)
	require.NoError(t, err)
	require.Len(t, locs, 3)
	assert.Equal(t, circuit.GateH, locs[0].Gate)
	assert.Equal(t, circuit.GateCZ, locs[1].Gate)
	assert.Equal(t, 1, locs[0].Step+locs[1].Step) // H at step 0, CZ at step 1

	withCollapse, err := fault.Enumerate(fc, part, fault.WithCollapseSites())
	require.NoError(t, err)
	require.Len(t, withCollapse, 5)
	assert.Equal(t, circuit.GateM, withCollapse[1].Gate)
	assert.Equal(t, circuit.GateR, withCollapse[2].Gate)
}

func TestEnumerate_InvalidPartition(t *testing.T) {
	fc := flat(t, catState)
	_, err := fault.Enumerate(fc, fault.Partition{Data: []int{0, 1}, Flag: []int{1}})
	assert.ErrorIs(t, err, fault.ErrInconsistentPartition)
}

func TestPartition_Validate(t *testing.T) {
	tests := []struct {
		name string
		part fault.Partition
		n    int
		want error
	}{
		{"ok", fault.Partition{Data: []int{0, 1}, Flag: []int{2}}, 3, nil},
		{"empty sets", fault.Partition{}, 1, nil},
		{"overlap", fault.Partition{Data: []int{0, 2}, Flag: []int{2}}, 3, fault.ErrInconsistentPartition},
		{"data out of range", fault.Partition{Data: []int{3}}, 3, fault.ErrInconsistentPartition},
		{"negative flag", fault.Partition{Flag: []int{-1}}, 3, fault.ErrInconsistentPartition},
		{"duplicate data", fault.Partition{Data: []int{1, 1}}, 3, fault.ErrInconsistentPartition},
		{"empty register", fault.Partition{}, 0, circuit.ErrEmptyRegister},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.part.Validate(tt.n)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
