package chrono

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedInput indicates puzzle text that cannot be loaded.
	ErrMalformedInput = errors.New("malformed input")

	// ErrUnknownOpcode indicates an instruction outside the eight-opcode set.
	ErrUnknownOpcode = errors.New("unknown opcode")

	// ErrInvalidCombo indicates combo operand 7, or any value above it.
	ErrInvalidCombo = errors.New("invalid combo operand")

	// ErrShapeMismatch indicates a program that does not follow the
	// fetch / output / shift-by-3 / loop pattern the chunk solver relies on.
	ErrShapeMismatch = errors.New("program shape mismatch")
)

// ParseError reports a loader failure with the line it occurred on.
type ParseError struct {
	Line int // 1-based, 0 when the failure is not tied to a line
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("chrono: line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("chrono: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ExecError reports a fatal execution failure with the faulting instruction.
type ExecError struct {
	Counter int
	Opcode  uint64
	Operand uint64
	Err     error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("chrono: at %d (%d,%d): %v", e.Counter, e.Opcode, e.Operand, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}
