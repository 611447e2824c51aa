package circuit

import (
	"fmt"
	"strings"
)

// Instruction is one entry of a raw (not yet flattened) instruction stream.
//
//   - Name: gate, annotation, TICK or REPEAT; matched case-insensitively.
//   - Targets: qubit indices in instruction order.
//   - Args: parenthesized numeric arguments (noise probabilities, coords).
//   - Count: repetitions, REPEAT only.
//   - Body: nested instructions, REPEAT only.
type Instruction struct {
	Name    string
	Targets []int
	Args    []float64
	Count   int
	Body    []Instruction
}

// Circuit is a parsed instruction stream over a register of NumQubits qubits.
// NumQubits == 0 means "infer from the largest target".
type Circuit struct {
	NumQubits    int
	Instructions []Instruction
}

// New returns a circuit with an explicit register size.
func New(numQubits int, ins ...Instruction) Circuit {
	return Circuit{NumQubits: numQubits, Instructions: ins}
}

// Gate builds a plain instruction.
func Gate(name string, targets ...int) Instruction {
	return Instruction{Name: name, Targets: targets}
}

// Tick builds a step marker.
func Tick() Instruction {
	return Instruction{Name: NameTick}
}

// Repeat builds a REPEAT block.
func Repeat(count int, body ...Instruction) Instruction {
	return Instruction{Name: NameRepeat, Count: count, Body: body}
}

// Append returns a copy of c with ins appended.
func (c Circuit) Append(ins ...Instruction) Circuit {
	out := make([]Instruction, 0, len(c.Instructions)+len(ins))
	out = append(out, c.Instructions...)
	out = append(out, ins...)

	return Circuit{NumQubits: c.NumQubits, Instructions: out}
}

// String renders the circuit in the same line format Parse reads.
func (c Circuit) String() string {
	var sb strings.Builder
	writeInstructions(&sb, c.Instructions, 0)

	return sb.String()
}

func writeInstructions(sb *strings.Builder, ins []Instruction, depth int) {
	indent := strings.Repeat("    ", depth)
	for _, in := range ins {
		sb.WriteString(indent)
		if strings.EqualFold(in.Name, NameRepeat) {
			fmt.Fprintf(sb, "%s %d {\n", NameRepeat, in.Count)
			writeInstructions(sb, in.Body, depth+1)
			sb.WriteString(indent)
			sb.WriteString("}\n")
			continue
		}
		sb.WriteString(in.Name)
		if len(in.Args) > 0 {
			sb.WriteByte('(')
			for i, a := range in.Args {
				if i > 0 {
					sb.WriteString(", ")
				}
				fmt.Fprintf(sb, "%g", a)
			}
			sb.WriteByte(')')
		}
		for _, t := range in.Targets {
			fmt.Fprintf(sb, " %d", t)
		}
		sb.WriteByte('\n')
	}
}
