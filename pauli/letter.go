package pauli

import "fmt"

// Letter is a single-qubit Pauli in the (x,z) bit encoding: bit 0 is the
// X component, bit 1 the Z component.
type Letter uint8

const (
	// I is the identity (0,0).
	I Letter = 0
	// X is the bit flip (1,0).
	X Letter = 1
	// Z is the phase flip (0,1).
	Z Letter = 2
	// Y is the combined flip (1,1).
	Y Letter = 3
)

// Injectable lists the non-identity letters in canonical report order.
var Injectable = [3]Letter{X, Y, Z}

// FromBits assembles a Letter from its x and z components.
func FromBits(x, z bool) Letter {
	var l Letter
	if x {
		l |= X
	}
	if z {
		l |= Z
	}

	return l
}

// XBit reports whether l has an X component (X or Y).
func (l Letter) XBit() bool { return l&X != 0 }

// ZBit reports whether l has a Z component (Z or Y).
func (l Letter) ZBit() bool { return l&Z != 0 }

// Rank orders letters as I < X < Y < Z. Reports and sort keys use it instead of
// the raw bit value, which would place Z before Y.
func (l Letter) Rank() int {
	switch l {
	case X:
		return 1
	case Y:
		return 2
	case Z:
		return 3
	default:
		return 0
	}
}

// String returns "I", "X", "Y" or "Z".
func (l Letter) String() string {
	switch l & 3 {
	case X:
		return "X"
	case Y:
		return "Y"
	case Z:
		return "Z"
	default:
		return "I"
	}
}

// ParseLetter reads one of I, X, Y, Z (case-insensitive); '_' is accepted as I.
func ParseLetter(r rune) (Letter, error) {
	switch r {
	case 'I', 'i', '_':
		return I, nil
	case 'X', 'x':
		return X, nil
	case 'Y', 'y':
		return Y, nil
	case 'Z', 'z':
		return Z, nil
	}

	return I, fmt.Errorf("ParseLetter(%q): %w", r, ErrInvalidLetter)
}

// MarshalText encodes the letter as its single-character name.
func (l Letter) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText decodes a single-character letter name.
func (l *Letter) UnmarshalText(b []byte) error {
	s := string(b)
	if len([]rune(s)) != 1 {
		return fmt.Errorf("UnmarshalText(%q): %w", s, ErrInvalidLetter)
	}
	v, err := ParseLetter([]rune(s)[0])
	if err != nil {
		return err
	}
	*l = v

	return nil
}
