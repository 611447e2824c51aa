// SPDX-License-Identifier: MIT
// Package: qfault/tableau
//
// errors.go: sentinel errors for tableau construction and application.
// Callers match with errors.Is; context is wrapped at the method boundary.

package tableau

import "errors"

var (
	// ErrUnsupportedGate is returned for ops without a Clifford conjugation
	// rule (T, CCX, ...).
	ErrUnsupportedGate = errors.New("tableau: unsupported gate")

	// ErrSizeMismatch indicates an operator or tableau over a different
	// register size.
	ErrSizeMismatch = errors.New("tableau: register size mismatch")
)
