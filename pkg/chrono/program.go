package chrono

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chazu/chronospatial/pkg/memo"
)

// Registers holds the three general purpose registers.
type Registers struct {
	A uint64
	B uint64
	C uint64
}

// Program is the flat (opcode, operand) stream. It is never modified by
// execution, so a single Program may back any number of machines.
type Program []uint64

// Len returns the number of values in the program.
func (p Program) Len() int {
	return len(p)
}

// Pairs returns the number of complete (opcode, operand) pairs.
func (p Program) Pairs() int {
	return len(p) / 2
}

// String returns the comma-joined program, the same form it is loaded from.
func (p Program) String() string {
	return Join(p)
}

// Equal reports whether out is exactly the program: same length, same values.
func (p Program) Equal(out []uint64) bool {
	if len(p) != len(out) {
		return false
	}
	for i := range p {
		if p[i] != out[i] {
			return false
		}
	}
	return true
}

// Fingerprint returns the canonical content key of the program.
func (p Program) Fingerprint() (memo.Key, error) {
	return memo.KeyOf([]uint64(p))
}

// Join renders values as comma-separated decimals.
func Join(values []uint64) string {
	var sb strings.Builder
	for i, v := range values {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatUint(v, 10))
	}
	return sb.String()
}

// Parse loads a machine from puzzle text.
func Parse(input string) (*Machine, error) {
	return Load(strings.NewReader(input))
}

// Load reads puzzle text of the form
//
//	Register A: 729
//	Register B: 0
//	Register C: 0
//
//	Program: 0,1,5,4,3,0
//
// and returns a machine in its initial state. Every register and at least one
// program value must be present; anything else is a *ParseError wrapping
// ErrMalformedInput.
func Load(r io.Reader) (*Machine, error) {
	var (
		regs    Registers
		seen    [3]bool
		program Program
		hasProg bool
	)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "Register "):
			name, value, ok := strings.Cut(strings.TrimPrefix(line, "Register "), ":")
			if !ok {
				return nil, parseErr(lineNo, "missing ':' in register line")
			}
			name = strings.TrimSpace(name)
			idx := strings.Index("ABC", name)
			if len(name) != 1 || idx < 0 {
				return nil, parseErr(lineNo, "unknown register %q", name)
			}
			if seen[idx] {
				return nil, parseErr(lineNo, "register %s assigned twice", name)
			}
			n, err := parseValue(value)
			if err != nil {
				return nil, parseErr(lineNo, "register %s: %v", name, err)
			}
			seen[idx] = true
			switch idx {
			case 0:
				regs.A = n
			case 1:
				regs.B = n
			case 2:
				regs.C = n
			}

		case strings.HasPrefix(line, "Program:"):
			if hasProg {
				return nil, parseErr(lineNo, "program given twice")
			}
			hasProg = true
			body := strings.TrimSpace(strings.TrimPrefix(line, "Program:"))
			if body == "" {
				return nil, parseErr(lineNo, "program has no values")
			}
			for i, field := range strings.Split(body, ",") {
				n, err := parseValue(field)
				if err != nil {
					return nil, parseErr(lineNo, "program value %d: %v", i, err)
				}
				if n > 7 {
					return nil, parseErr(lineNo, "program value %d: %d is not a 3-bit number", i, n)
				}
				program = append(program, n)
			}

		default:
			return nil, parseErr(lineNo, "unexpected line %q", line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("chrono: reading input: %w", err)
	}

	for i, ok := range seen {
		if !ok {
			return nil, parseErr(0, "missing register %c", "ABC"[i])
		}
	}
	if !hasProg {
		return nil, parseErr(0, "missing program")
	}

	return New(regs, program), nil
}

func parseValue(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("missing value")
	}
	return strconv.ParseUint(s, 10, 64)
}

func parseErr(line int, format string, args ...any) error {
	return &ParseError{
		Line: line,
		Err:  fmt.Errorf("%w: "+format, append([]any{ErrMalformedInput}, args...)...),
	}
}
