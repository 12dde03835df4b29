package chrono

import "fmt"

// CheckShape verifies that p is a single loop which consumes A three bits at
// a time: exactly one "adv 3", exactly one "out", a closing "jnz 0" as the
// last instruction with no other jumps, and B and C written before they are
// read in the loop body.
//
// For such a program run(A) is one value computed from A followed by
// run(A >> 3), so output position i depends only on A's bits from 3*i upward.
// That is what lets a solver fix A one 3-bit chunk at a time, most
// significant first.
//
// A non-nil result wraps ErrShapeMismatch.
func CheckShape(p Program) error {
	if len(p) == 0 {
		return shapeErr("empty program")
	}
	if len(p)%2 != 0 {
		return shapeErr("odd length %d", len(p))
	}

	var (
		advs, outs, jumps int
		wroteB, wroteC    bool
	)
	readB := func(i int) error {
		if !wroteB {
			return shapeErr("B read at %d before it is written in the loop", i)
		}
		return nil
	}
	readC := func(i int) error {
		if !wroteC {
			return shapeErr("C read at %d before it is written in the loop", i)
		}
		return nil
	}
	readCombo := func(operand uint64, i int) error {
		switch operand {
		case 5:
			return readB(i)
		case 6:
			return readC(i)
		case 7:
			return shapeErr("invalid combo operand at %d", i)
		}
		return nil
	}

	for i := 0; i < len(p); i += 2 {
		op, operand := p[i], p[i+1]
		if op > uint64(OpCdv) {
			return shapeErr("unknown opcode %d at %d", op, i)
		}
		code := Opcode(op)
		if code.OperandKind() == OperandCombo {
			if err := readCombo(operand, i); err != nil {
				return err
			}
		}

		switch code {
		case OpAdv:
			if operand != 3 {
				return shapeErr("adv %s at %d shifts A by something other than 3", code.OperandName(operand), i)
			}
			advs++
		case OpBxl:
			if err := readB(i); err != nil {
				return err
			}
		case OpBst, OpBdv:
			wroteB = true
		case OpCdv:
			wroteC = true
		case OpBxc:
			if err := readB(i); err != nil {
				return err
			}
			if err := readC(i); err != nil {
				return err
			}
		case OpOut:
			outs++
		case OpJnz:
			if i != len(p)-2 {
				return shapeErr("jump at %d is not the closing instruction", i)
			}
			if operand != 0 {
				return shapeErr("closing jnz targets %d, not 0", operand)
			}
			jumps++
		}
	}

	switch {
	case advs != 1:
		return shapeErr("found %d adv 3 instructions, want 1", advs)
	case outs != 1:
		return shapeErr("found %d out instructions, want 1", outs)
	case jumps != 1:
		return shapeErr("program does not close with jnz 0")
	}
	return nil
}

func shapeErr(format string, args ...any) error {
	return fmt.Errorf("chrono: %w: "+format, append([]any{ErrShapeMismatch}, args...)...)
}
