package chrono

import (
	"fmt"
	"io"
	"iter"
)

// Machine is a Chronospatial Computer: three registers, a counter and a
// shared, read-only program. The zero value is not usable; call New.
//
// Execution is resumable one output at a time through Step. Once the counter
// leaves the program, or an instruction faults, the machine stays stopped.
// Restarting means building a new Machine from the same initial state.
type Machine struct {
	Registers

	program Program
	counter int
	halted  bool
	err     error

	// Trace, when non-nil, receives one line per executed instruction.
	Trace io.Writer
}

// New creates a machine at counter 0.
func New(regs Registers, program Program) *Machine {
	return &Machine{
		Registers: regs,
		program:   program,
	}
}

// Program returns the machine's program. Callers must not modify it.
func (m *Machine) Program() Program {
	return m.program
}

// Counter returns the instruction pointer.
func (m *Machine) Counter() int {
	return m.counter
}

// Halted reports whether the machine has stopped, by running off the end of
// the program or by faulting.
func (m *Machine) Halted() bool {
	return m.halted
}

// Err returns the fault that stopped the machine, if any.
func (m *Machine) Err() error {
	return m.err
}

// Clone returns an independent copy of the machine's current state. The
// program is shared.
func (m *Machine) Clone() *Machine {
	c := *m
	return &c
}

// WithA returns a fresh machine at counter 0 with A replaced and B, C kept
// from m's current registers.
func (m *Machine) WithA(a uint64) *Machine {
	return New(Registers{A: a, B: m.B, C: m.C}, m.program)
}

// Snapshot captures the machine's registers and program.
func (m *Machine) Snapshot() Snapshot {
	return Snapshot{A: m.A, B: m.B, C: m.C, Program: m.program}
}

// combo resolves a combo operand.
func (m *Machine) combo(operand uint64) (uint64, error) {
	switch operand {
	case 0, 1, 2, 3:
		return operand, nil
	case 4:
		return m.A, nil
	case 5:
		return m.B, nil
	case 6:
		return m.C, nil
	default:
		return 0, ErrInvalidCombo
	}
}

// Step executes instructions until one produces output, returning that value
// and true. It returns false once the counter no longer addresses a complete
// (opcode, operand) pair, including the dangling value of an odd-length
// program. A fault returns an *ExecError and stops the machine.
func (m *Machine) Step() (uint64, bool, error) {
	for !m.halted {
		if m.counter < 0 || m.counter+1 >= len(m.program) {
			m.halted = true
			break
		}

		op, operand := m.program[m.counter], m.program[m.counter+1]
		if m.Trace != nil {
			m.trace(op, operand)
		}
		if op > uint64(OpCdv) {
			return 0, false, m.fault(op, operand, ErrUnknownOpcode)
		}

		var (
			value uint64
			err   error
		)
		switch Opcode(op) {
		case OpAdv:
			if value, err = m.combo(operand); err == nil {
				m.A >>= value
			}
		case OpBxl:
			m.B ^= operand
		case OpBst:
			if value, err = m.combo(operand); err == nil {
				m.B = value & 7
			}
		case OpJnz:
			if m.A != 0 {
				m.counter = jumpTarget(operand, len(m.program))
				continue
			}
		case OpBxc:
			m.B ^= m.C
		case OpOut:
			if value, err = m.combo(operand); err == nil {
				m.counter += 2
				return value & 7, true, nil
			}
		case OpBdv:
			if value, err = m.combo(operand); err == nil {
				m.B = m.A >> value
			}
		case OpCdv:
			if value, err = m.combo(operand); err == nil {
				m.C = m.A >> value
			}
		}
		if err != nil {
			return 0, false, m.fault(op, operand, err)
		}

		m.counter += 2
	}

	return 0, false, m.err
}

// RunToCompletion drains every remaining output.
func (m *Machine) RunToCompletion() ([]uint64, error) {
	var out []uint64
	for {
		v, ok, err := m.Step()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, v)
	}
}

// Outputs returns the remaining outputs as a lazy sequence. Iteration stops
// after the machine halts; a fault is yielded once as the final element.
func (m *Machine) Outputs() iter.Seq2[uint64, error] {
	return func(yield func(uint64, error) bool) {
		for {
			v, ok, err := m.Step()
			if err != nil {
				yield(0, err)
				return
			}
			if !ok || !yield(v, nil) {
				return
			}
		}
	}
}

func (m *Machine) fault(op, operand uint64, err error) error {
	m.halted = true
	m.err = &ExecError{Counter: m.counter, Opcode: op, Operand: operand, Err: err}
	return m.err
}

func (m *Machine) trace(op, operand uint64) {
	name := fmt.Sprintf("UNKNOWN(%d)", op)
	arg := fmt.Sprintf("%d", operand)
	if op <= uint64(OpCdv) {
		name = Opcode(op).String()
		arg = Opcode(op).OperandName(operand)
	}
	fmt.Fprintf(m.Trace, "[%04d] %-4s %-2s A=%d B=%d C=%d\n",
		m.counter, name, arg, m.A, m.B, m.C)
}

// jumpTarget converts a literal jump operand into a counter value, clamping
// anything past the end so the next fetch halts.
func jumpTarget(operand uint64, length int) int {
	if operand >= uint64(length) {
		return length
	}
	return int(operand)
}
