// SPDX-License-Identifier: MIT
// Package: qfault/circuit
//
// gates.go: the closed gate vocabulary.
//
// Contract:
//   • GateKind is a tagged enumeration; every recognized instruction name maps
//     to exactly one kind at parse/flatten time. No string dispatch happens
//     after Flatten.
//   • Each kind has one fixed table row: canonical name, arity, class and a
//     decomposition into the nine primitive conjugation rules. Both the
//     phase-free tableau engine and the phase-aware simulator consume the same
//     decomposition, so the two models cannot drift apart on gate semantics.
//   • Decompositions are in circuit order (first rule executes first) and use
//     local target positions (0 = first target of the pair, 1 = second).

package circuit

import "strings"

// Primitive is one of the nine elementary conjugation rules every Clifford
// kind is expressed in.
type Primitive uint8

const (
	// PrimH swaps the X and Z components of a qubit.
	PrimH Primitive = iota + 1
	// PrimS maps X→Y, Y→-X.
	PrimS
	// PrimSDag maps X→-Y, Y→X.
	PrimSDag
	// PrimX is the Pauli X gate (sign-only effect).
	PrimX
	// PrimY is the Pauli Y gate (sign-only effect).
	PrimY
	// PrimZ is the Pauli Z gate (sign-only effect).
	PrimZ
	// PrimCX is the controlled-X; A is the control, B the target.
	PrimCX
	// PrimCZ is the controlled-Z.
	PrimCZ
	// PrimSwap exchanges two qubits.
	PrimSwap
)

// IsTwoQubit reports whether p acts on a pair.
func (p Primitive) IsTwoQubit() bool {
	return p == PrimCX || p == PrimCZ || p == PrimSwap
}

// Rule is one primitive application on local target positions A (and B for
// two-qubit primitives).
type Rule struct {
	Prim Primitive
	A, B int
}

// Class partitions the vocabulary by how analysis treats a kind.
type Class uint8

const (
	// ClassOpaque marks an unrecognized instruction: no tableau effect, never a fault site.
	ClassOpaque Class = iota
	// ClassClifford1 is a single-qubit Clifford gate.
	ClassClifford1
	// ClassClifford2 is a two-qubit Clifford gate.
	ClassClifford2
	// ClassCollapse is a measurement and/or reset (state preparation).
	ClassCollapse
	// ClassNonClifford is recognized but has no conjugation rule.
	ClassNonClifford
	// ClassAnnotation covers detectors, coordinates and noise channels.
	ClassAnnotation
)

// String names the class.
func (c Class) String() string {
	switch c {
	case ClassClifford1:
		return "clifford1"
	case ClassClifford2:
		return "clifford2"
	case ClassCollapse:
		return "collapse"
	case ClassNonClifford:
		return "non-clifford"
	case ClassAnnotation:
		return "annotation"
	default:
		return "opaque"
	}
}

// GateKind enumerates the recognized instruction vocabulary.
type GateKind uint8

// Gate kinds. GateOpaque is the zero value.
const (
	GateOpaque GateKind = iota

	// single-qubit Clifford
	GateI
	GateH
	GateX
	GateY
	GateZ
	GateS
	GateSDag
	GateSqrtX
	GateSqrtXDag
	GateSqrtY
	GateSqrtYDag

	// two-qubit Clifford
	GateCX
	GateCY
	GateCZ
	GateSwap
	GateISwap
	GateISwapDag
	GateSqrtXX
	GateSqrtXXDag
	GateSqrtYY
	GateSqrtYYDag
	GateSqrtZZ
	GateSqrtZZDag
	GateXCZ
	GateYCZ

	// collapse
	GateM
	GateMX
	GateMY
	GateR
	GateRX
	GateRY
	GateMR
	GateMRX
	GateMRY

	// non-Clifford (recognized, unsupported)
	GateT
	GateTDag
	GateCCX
	GateCCZ

	// annotations / noise
	GateDetector
	GateObservableInclude
	GateQubitCoords
	GateShiftCoords
	GateXError
	GateYError
	GateZError
	GateDepolarize1
	GateDepolarize2
	GatePauliChannel1
	GatePauliChannel2

	numGateKinds
)

type gateInfo struct {
	name  string
	arity int // 1, 2 or 3 split targets; 0 keeps the whole list
	class Class
	rules []Rule
}

// r1/r2 keep the table below readable.
func r1(p Primitive) Rule { return Rule{Prim: p, A: 0} }

func r1b(p Primitive) Rule { return Rule{Prim: p, A: 1} }

func r2(p Primitive, a, b int) Rule { return Rule{Prim: p, A: a, B: b} }

var gateTable = [numGateKinds]gateInfo{
	GateOpaque: {name: "OPAQUE", arity: 0, class: ClassOpaque},

	GateI:        {name: "I", arity: 1, class: ClassClifford1},
	GateH:        {name: "H", arity: 1, class: ClassClifford1, rules: []Rule{r1(PrimH)}},
	GateX:        {name: "X", arity: 1, class: ClassClifford1, rules: []Rule{r1(PrimX)}},
	GateY:        {name: "Y", arity: 1, class: ClassClifford1, rules: []Rule{r1(PrimY)}},
	GateZ:        {name: "Z", arity: 1, class: ClassClifford1, rules: []Rule{r1(PrimZ)}},
	GateS:        {name: "S", arity: 1, class: ClassClifford1, rules: []Rule{r1(PrimS)}},
	GateSDag:     {name: "S_DAG", arity: 1, class: ClassClifford1, rules: []Rule{r1(PrimSDag)}},
	GateSqrtX:    {name: "SQRT_X", arity: 1, class: ClassClifford1, rules: []Rule{r1(PrimH), r1(PrimS), r1(PrimH)}},
	GateSqrtXDag: {name: "SQRT_X_DAG", arity: 1, class: ClassClifford1, rules: []Rule{r1(PrimH), r1(PrimSDag), r1(PrimH)}},
	GateSqrtY:    {name: "SQRT_Y", arity: 1, class: ClassClifford1, rules: []Rule{r1(PrimZ), r1(PrimH)}},
	GateSqrtYDag: {name: "SQRT_Y_DAG", arity: 1, class: ClassClifford1, rules: []Rule{r1(PrimH), r1(PrimZ)}},

	GateCX:   {name: "CX", arity: 2, class: ClassClifford2, rules: []Rule{r2(PrimCX, 0, 1)}},
	GateCY:   {name: "CY", arity: 2, class: ClassClifford2, rules: []Rule{r1b(PrimSDag), r2(PrimCX, 0, 1), r1b(PrimS)}},
	GateCZ:   {name: "CZ", arity: 2, class: ClassClifford2, rules: []Rule{r2(PrimCZ, 0, 1)}},
	GateSwap: {name: "SWAP", arity: 2, class: ClassClifford2, rules: []Rule{r2(PrimSwap, 0, 1)}},
	GateISwap: {name: "ISWAP", arity: 2, class: ClassClifford2, rules: []Rule{
		r1(PrimH), r2(PrimCX, 0, 1), r2(PrimCX, 1, 0), r1b(PrimH), r1b(PrimS), r1(PrimS),
	}},
	GateISwapDag: {name: "ISWAP_DAG", arity: 2, class: ClassClifford2, rules: []Rule{
		r1(PrimSDag), r1b(PrimSDag), r1b(PrimH), r2(PrimCX, 1, 0), r2(PrimCX, 0, 1), r1(PrimH),
	}},
	GateSqrtXX: {name: "SQRT_XX", arity: 2, class: ClassClifford2, rules: []Rule{
		r1(PrimH), r1b(PrimH), r2(PrimCZ, 0, 1), r1(PrimS), r1b(PrimS), r1(PrimH), r1b(PrimH),
	}},
	GateSqrtXXDag: {name: "SQRT_XX_DAG", arity: 2, class: ClassClifford2, rules: []Rule{
		r1(PrimH), r1b(PrimH), r2(PrimCZ, 0, 1), r1(PrimSDag), r1b(PrimSDag), r1(PrimH), r1b(PrimH),
	}},
	// SQRT_YY is SQRT_ZZ moved into the Y basis: SQRT_X ⊗ SQRT_X first, SQRT_X_DAG ⊗ SQRT_X_DAG last.
	GateSqrtYY: {name: "SQRT_YY", arity: 2, class: ClassClifford2, rules: []Rule{
		r1(PrimH), r1(PrimS), r1(PrimH), r1b(PrimH), r1b(PrimS), r1b(PrimH),
		r2(PrimCZ, 0, 1), r1(PrimS), r1b(PrimS),
		r1(PrimH), r1(PrimSDag), r1(PrimH), r1b(PrimH), r1b(PrimSDag), r1b(PrimH),
	}},
	GateSqrtYYDag: {name: "SQRT_YY_DAG", arity: 2, class: ClassClifford2, rules: []Rule{
		r1(PrimH), r1(PrimS), r1(PrimH), r1b(PrimH), r1b(PrimS), r1b(PrimH),
		r2(PrimCZ, 0, 1), r1(PrimSDag), r1b(PrimSDag),
		r1(PrimH), r1(PrimSDag), r1(PrimH), r1b(PrimH), r1b(PrimSDag), r1b(PrimH),
	}},
	GateSqrtZZ:    {name: "SQRT_ZZ", arity: 2, class: ClassClifford2, rules: []Rule{r2(PrimCZ, 0, 1), r1(PrimS), r1b(PrimS)}},
	GateSqrtZZDag: {name: "SQRT_ZZ_DAG", arity: 2, class: ClassClifford2, rules: []Rule{r2(PrimCZ, 0, 1), r1(PrimSDag), r1b(PrimSDag)}},
	// XCZ a b is CX b a; YCZ a b is CY b a.
	GateXCZ: {name: "XCZ", arity: 2, class: ClassClifford2, rules: []Rule{r2(PrimCX, 1, 0)}},
	GateYCZ: {name: "YCZ", arity: 2, class: ClassClifford2, rules: []Rule{r1(PrimSDag), r2(PrimCX, 1, 0), r1(PrimS)}},

	GateM:   {name: "M", arity: 1, class: ClassCollapse},
	GateMX:  {name: "MX", arity: 1, class: ClassCollapse},
	GateMY:  {name: "MY", arity: 1, class: ClassCollapse},
	GateR:   {name: "R", arity: 1, class: ClassCollapse},
	GateRX:  {name: "RX", arity: 1, class: ClassCollapse},
	GateRY:  {name: "RY", arity: 1, class: ClassCollapse},
	GateMR:  {name: "MR", arity: 1, class: ClassCollapse},
	GateMRX: {name: "MRX", arity: 1, class: ClassCollapse},
	GateMRY: {name: "MRY", arity: 1, class: ClassCollapse},

	GateT:    {name: "T", arity: 1, class: ClassNonClifford},
	GateTDag: {name: "T_DAG", arity: 1, class: ClassNonClifford},
	GateCCX:  {name: "CCX", arity: 3, class: ClassNonClifford},
	GateCCZ:  {name: "CCZ", arity: 3, class: ClassNonClifford},

	GateDetector:          {name: "DETECTOR", class: ClassAnnotation},
	GateObservableInclude: {name: "OBSERVABLE_INCLUDE", class: ClassAnnotation},
	GateQubitCoords:       {name: "QUBIT_COORDS", class: ClassAnnotation},
	GateShiftCoords:       {name: "SHIFT_COORDS", class: ClassAnnotation},
	GateXError:            {name: "X_ERROR", class: ClassAnnotation},
	GateYError:            {name: "Y_ERROR", class: ClassAnnotation},
	GateZError:            {name: "Z_ERROR", class: ClassAnnotation},
	GateDepolarize1:       {name: "DEPOLARIZE1", class: ClassAnnotation},
	GateDepolarize2:       {name: "DEPOLARIZE2", class: ClassAnnotation},
	GatePauliChannel1:     {name: "PAULI_CHANNEL_1", class: ClassAnnotation},
	GatePauliChannel2:     {name: "PAULI_CHANNEL_2", class: ClassAnnotation},
}

// aliases maps alternative spellings onto canonical kinds.
var aliases = map[string]GateKind{
	"CNOT":       GateCX,
	"ZCX":        GateCX,
	"ZCY":        GateCY,
	"ZCZ":        GateCZ,
	"H_XZ":       GateH,
	"SQRT_Z":     GateS,
	"SQRT_Z_DAG": GateSDag,
	"MZ":         GateM,
	"RZ":         GateR,
	"MRZ":        GateMR,
}

var byName = func() map[string]GateKind {
	m := make(map[string]GateKind, int(numGateKinds)+len(aliases))
	for k := GateKind(1); k < numGateKinds; k++ {
		m[gateTable[k].name] = k
	}
	for name, k := range aliases {
		m[name] = k
	}

	return m
}()

// Step-marker and block instruction names. They are structural and never
// become ops.
const (
	NameTick   = "TICK"
	NameRepeat = "REPEAT"
)

// Lookup resolves an instruction name (case-insensitive, aliases included).
// Unknown names return (GateOpaque, false).
func Lookup(name string) (GateKind, bool) {
	k, ok := byName[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return GateOpaque, false
	}

	return k, true
}

// Aliases returns a copy of the alternative-spelling table.
func Aliases() map[string]GateKind {
	out := make(map[string]GateKind, len(aliases))
	for name, k := range aliases {
		out[name] = k
	}

	return out
}

// Kinds lists every recognized kind in declaration order (GateOpaque excluded).
func Kinds() []GateKind {
	out := make([]GateKind, 0, numGateKinds-1)
	for k := GateKind(1); k < numGateKinds; k++ {
		out = append(out, k)
	}

	return out
}

// Name returns the canonical instruction name.
func (k GateKind) Name() string { return k.info().name }

// String implements fmt.Stringer.
func (k GateKind) String() string { return k.Name() }

// Arity is the number of targets one atomic op consumes; 0 means the op keeps
// the instruction's whole target list.
func (k GateKind) Arity() int { return k.info().arity }

// Class returns the analysis class of k.
func (k GateKind) Class() Class { return k.info().class }

// Rules returns the primitive decomposition in circuit order. The returned
// slice is shared table storage and must not be modified. Non-Clifford,
// collapse, annotation and opaque kinds return nil.
func (k GateKind) Rules() []Rule { return k.info().rules }

// IsClifford reports whether k has a conjugation rule.
func (k GateKind) IsClifford() bool {
	c := k.Class()

	return c == ClassClifford1 || c == ClassClifford2
}

// MarshalText encodes the canonical name.
func (k GateKind) MarshalText() ([]byte, error) { return []byte(k.Name()), nil }

func (k GateKind) info() gateInfo {
	if k >= numGateKinds {
		return gateTable[GateOpaque]
	}

	return gateTable[k]
}
