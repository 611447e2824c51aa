package circuit

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parse reads the line-oriented instruction format:
//
//	# comment
//	H 0
//	CX 0 1 0 2
//	X_ERROR(0.01) 0 1
//	TICK
//	REPEAT 3 {
//	    CX 0 3
//	}
//
// Targets are non-negative integers; "!q" is read as q. Record and sweep
// references (rec[-1], sweep[0]) and Pauli-product targets (X0*Z1) are
// dropped on annotation and unrecognized instructions and rejected on gates.
// The returned circuit has NumQubits == 0 (inferred at Flatten time).
func Parse(r io.Reader) (Circuit, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	// stack[0] collects top-level instructions; each open REPEAT pushes a frame.
	type frame struct {
		ins   []Instruction
		count int
		line  int
	}
	stack := []frame{{}}
	lineNo := 0

	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if line == "}" {
			if len(stack) == 1 {
				return Circuit{}, fmt.Errorf("Parse: line %d: unmatched '}': %w", lineNo, ErrMalformedCircuit)
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			parent := &stack[len(stack)-1]
			parent.ins = append(parent.ins, Repeat(top.count, top.ins...))
			continue
		}

		name, args, rest, err := splitHead(line)
		if err != nil {
			return Circuit{}, fmt.Errorf("Parse: line %d: %w", lineNo, err)
		}

		if strings.EqualFold(name, NameRepeat) {
			count, err := parseRepeatHeader(rest)
			if err != nil {
				return Circuit{}, fmt.Errorf("Parse: line %d: %w", lineNo, err)
			}
			stack = append(stack, frame{count: count, line: lineNo})
			continue
		}

		kind, known := Lookup(name)
		lenient := !known || kind.Arity() == 0
		targets, err := parseTargets(rest, lenient)
		if err != nil {
			return Circuit{}, fmt.Errorf("Parse: line %d: %s: %w", lineNo, name, err)
		}
		top := &stack[len(stack)-1]
		top.ins = append(top.ins, Instruction{Name: strings.ToUpper(name), Targets: targets, Args: args})
	}
	if err := sc.Err(); err != nil {
		return Circuit{}, fmt.Errorf("Parse: %w", err)
	}
	if len(stack) != 1 {
		return Circuit{}, fmt.Errorf("Parse: REPEAT opened on line %d is never closed: %w",
			stack[len(stack)-1].line, ErrMalformedCircuit)
	}

	return Circuit{Instructions: stack[0].ins}, nil
}

// ParseString is Parse over a string.
func ParseString(s string) (Circuit, error) {
	return Parse(strings.NewReader(s))
}

// splitHead separates "NAME(a, b) rest" into its parts.
func splitHead(line string) (name string, args []float64, rest string, err error) {
	end := strings.IndexAny(line, " \t(")
	if end < 0 {
		return line, nil, "", nil
	}
	name, rest = line[:end], line[end:]
	if rest[0] != '(' {
		return name, nil, rest, nil
	}
	closeAt := strings.IndexByte(rest, ')')
	if closeAt < 0 {
		return "", nil, "", fmt.Errorf("unclosed argument list: %w", ErrMalformedCircuit)
	}
	for _, field := range strings.Split(rest[1:closeAt], ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, perr := strconv.ParseFloat(field, 64)
		if perr != nil {
			return "", nil, "", fmt.Errorf("argument %q: %w", field, ErrMalformedCircuit)
		}
		args = append(args, v)
	}

	return name, args, rest[closeAt+1:], nil
}

func parseRepeatHeader(rest string) (int, error) {
	fields := strings.Fields(strings.Replace(rest, "{", " { ", 1))
	if len(fields) != 2 || fields[1] != "{" {
		return 0, fmt.Errorf("REPEAT needs 'REPEAT <count> {': %w", ErrMalformedCircuit)
	}
	count, err := strconv.Atoi(fields[0])
	if err != nil || count < 1 {
		return 0, fmt.Errorf("REPEAT count %q: %w", fields[0], ErrMalformedCircuit)
	}

	return count, nil
}

// parseTargets reads qubit targets; lenient drops non-qubit tokens instead of
// failing.
func parseTargets(rest string, lenient bool) ([]int, error) {
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return nil, nil
	}
	out := make([]int, 0, len(fields))
	for _, tok := range fields {
		q, err := strconv.Atoi(strings.TrimPrefix(tok, "!"))
		if err != nil || q < 0 {
			if lenient {
				continue
			}
			return nil, fmt.Errorf("target %q: %w", tok, ErrMalformedCircuit)
		}
		out = append(out, q)
	}

	return out, nil
}
