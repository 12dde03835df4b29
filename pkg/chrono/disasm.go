package chrono

import (
	"fmt"
	"strings"
)

// Disassemble returns a human-readable listing of the program.
func (p Program) Disassemble() string {
	return p.DisassembleWithName("")
}

// DisassembleWithName returns a human-readable listing with a name header.
func (p Program) DisassembleWithName(name string) string {
	var sb strings.Builder

	// Header
	if name != "" {
		sb.WriteString(fmt.Sprintf("; === %s ===\n", name))
	}
	sb.WriteString(fmt.Sprintf("; Chronospatial program: %d values, %d instructions\n", len(p), p.Pairs()))
	if key, err := p.Fingerprint(); err == nil {
		sb.WriteString(fmt.Sprintf("; Fingerprint: %s\n", key))
	}
	if err := CheckShape(p); err == nil {
		sb.WriteString("; Shape: self-reproducing loop (adv 3 / out / jnz 0)\n")
	}
	sb.WriteString("\n")

	// Code section
	sb.WriteString("; Code:\n")
	for offset := 0; offset < len(p); offset += 2 {
		line := p.disassembleInstruction(offset)
		sb.WriteString(fmt.Sprintf("%04d  %s\n", offset, line))
	}

	return sb.String()
}

// disassembleInstruction formats the pair at offset.
func (p Program) disassembleInstruction(offset int) string {
	if offset+1 >= len(p) {
		return fmt.Sprintf("%-10s ; <incomplete pair>", fmt.Sprintf("%d", p[offset]))
	}

	op, operand := p[offset], p[offset+1]
	if op > uint64(OpCdv) {
		return fmt.Sprintf("%-10s ; <unknown opcode>", fmt.Sprintf("%d %d", op, operand))
	}

	code := Opcode(op)
	info := GetOpcodeInfo(code)
	if info.Operand == OperandCombo && operand == 7 {
		return fmt.Sprintf("%-10s ; <invalid combo operand>", info.Name+" 7")
	}

	arg := code.OperandName(operand)
	var text, effect string
	switch info.Operand {
	case OperandIgnored:
		text = info.Name
		effect = info.Effect
	default:
		text = info.Name + " " + arg
		effect = fmt.Sprintf(info.Effect, arg)
	}
	return fmt.Sprintf("%-10s ; %s", text, effect)
}
