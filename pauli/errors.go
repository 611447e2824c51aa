// SPDX-License-Identifier: MIT

package pauli

import "errors"

var (
	// ErrInvalidLetter is returned when a rune is not one of I, X, Y, Z (or '_').
	ErrInvalidLetter = errors.New("pauli: invalid letter")

	// ErrSizeMismatch indicates two operators over different register sizes.
	ErrSizeMismatch = errors.New("pauli: register size mismatch")

	// ErrOutOfRange indicates a qubit index outside [0, n).
	ErrOutOfRange = errors.New("pauli: qubit index out of range")
)
