package fault

import "errors"

var (
	// ErrInconsistentPartition is returned when data and flag qubits overlap,
	// repeat, or fall outside the register.
	ErrInconsistentPartition = errors.New("fault: inconsistent data/flag partition")

	// ErrInvalidLetter is returned when the injected Pauli is not X, Y or Z.
	ErrInvalidLetter = errors.New("fault: injected Pauli must be X, Y or Z")

	// ErrUnknownMode is returned by the Parse* helpers for unrecognized mode
	// names.
	ErrUnknownMode = errors.New("fault: unknown mode")
)
