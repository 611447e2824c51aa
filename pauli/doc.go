// Package pauli provides the phase-free n-qubit Pauli operator used by every
// propagation routine in qfault.
//
// What is modelled:
//
//	An operator P = P_0 ⊗ P_1 ⊗ … ⊗ P_{n-1}, each P_k ∈ {I, X, Y, Z}, stored as
//	two n-bit vectors x and z. Qubit k carries
//	  I ↔ (0,0)   X ↔ (1,0)   Z ↔ (0,1)   Y ↔ (1,1)
//	The global sign/phase is NOT tracked. Multiplication is bitwise XOR, so
//	X·Z and Y are the same value here. Code that needs signs (state
//	preparation checks) lives in package stabilizer.
//
// Guarantees:
//   - Operator is an immutable value type: every method returns a new value,
//     nothing aliases the receiver's storage.
//   - Text form is one letter per qubit, qubit 0 first ("XIZY"); '_' is read as I.
//   - Sentinel errors only (ErrInvalidLetter, ErrSizeMismatch, ErrOutOfRange).
//
// Usage:
//
//	p := pauli.MustParse("XXIZ")
//	q := pauli.MustParse("IZZI")
//	ok, _ := p.Commutes(q)   // false: they overlap anti-commuting on qubit 1 only
//	r, _ := p.Mul(q)          // "XYZZ" up to phase
package pauli
