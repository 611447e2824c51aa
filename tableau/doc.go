// Package tableau implements the phase-free symplectic tableau of a Clifford
// circuit: for every qubit k it records the images of X_k and Z_k under
// conjugation by the circuit, with signs discarded.
//
// The tableau package provides:
//
//   - Identity and Build, which fold a flat op slice into a Tableau in
//     program order.
//   - Apply, which maps any Pauli operator through the recorded circuit by
//     XOR-ing the rows selected by its support.
//   - Then and Prepend for composing circuits from either end; Prepend is
//     what makes a single backward sweep over a circuit produce every suffix
//     tableau.
//
// Collapse ops (measurements and resets), annotations and opaque ops do not
// change the tableau. Non-Clifford kinds are rejected with ErrUnsupportedGate.
//
// Storage is column-major: one bitset per qubit holding the x (resp. z) bit
// of all 2n rows, so a gate touches at most four bitsets with word-wide XORs.
package tableau
