// Package circuit holds the instruction vocabulary and the Flat Circuit
// Builder: it turns a raw, possibly nested instruction stream into the flat
// sequence of atomic ops every analysis in qfault consumes.
//
// 🚀 What does Flatten do?
//
//	REPEAT 2 { CX 0 1 2 3 }  ──►  CX 0 1 · CX 2 3 · CX 0 1 · CX 2 3
//	TICK                      ──►  (no op, step counter + 1)
//	FOO 0 1                   ──►  opaque op + Warning (best-effort analysis)
//
// ✨ Key properties:
//   - GateKind is a closed enumeration resolved once; each kind carries a
//     fixed decomposition into nine primitive conjugation rules
//     (H, S, S_DAG, X, Y, Z, CX, CZ, SWAP).
//   - Ops are tagged with Step (TICK count) and Index (occurrence order), the
//     two leading components of every deterministic report key.
//   - Malformed input fails with ErrMalformedCircuit; nothing panics.
//
// ⚙️ Usage:
//
//	c, err := circuit.ParseString("H 0\nCX 0 1 0 2\n")
//	fc, err := circuit.Flatten(c, circuit.WithLogger(logger))
//	for _, op := range fc.Ops { ... }
//
// The text reader (Parse) understands the common stim-like line format; it is
// a convenience front-end, the library itself only needs Instruction values.
package circuit
