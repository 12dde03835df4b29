package chrono

import "fmt"

// Opcode represents a 3-bit Chronospatial instruction.
type Opcode uint8

const (
	OpAdv Opcode = 0 // A <- A >> combo
	OpBxl Opcode = 1 // B <- B ^ literal
	OpBst Opcode = 2 // B <- combo & 7
	OpJnz Opcode = 3 // if A != 0 jump to literal
	OpBxc Opcode = 4 // B <- B ^ C (operand ignored)
	OpOut Opcode = 5 // emit combo & 7
	OpBdv Opcode = 6 // B <- A >> combo
	OpCdv Opcode = 7 // C <- A >> combo
)

// OperandKind describes how an instruction interprets its operand.
type OperandKind uint8

const (
	OperandIgnored OperandKind = iota
	OperandLiteral
	OperandCombo
)

// String returns a short name for the operand kind.
func (k OperandKind) String() string {
	switch k {
	case OperandIgnored:
		return "ignored"
	case OperandLiteral:
		return "literal"
	case OperandCombo:
		return "combo"
	default:
		return fmt.Sprintf("OperandKind(%d)", k)
	}
}

// OpcodeInfo provides metadata about each opcode for disassembly and validation.
type OpcodeInfo struct {
	Name    string      // Mnemonic
	Operand OperandKind // How the operand is resolved
	Effect  string      // Effect in register notation, %s is the operand
}

// opcodeInfoTable maps opcodes to their metadata.
var opcodeInfoTable = map[Opcode]OpcodeInfo{
	OpAdv: {"adv", OperandCombo, "A = A >> %s"},
	OpBxl: {"bxl", OperandLiteral, "B = B ^ %s"},
	OpBst: {"bst", OperandCombo, "B = %s & 7"},
	OpJnz: {"jnz", OperandLiteral, "if A != 0 goto %s"},
	OpBxc: {"bxc", OperandIgnored, "B = B ^ C"},
	OpOut: {"out", OperandCombo, "emit %s & 7"},
	OpBdv: {"bdv", OperandCombo, "B = A >> %s"},
	OpCdv: {"cdv", OperandCombo, "C = A >> %s"},
}

// comboNames maps combo operands 4-6 to the register they select.
var comboNames = [...]string{4: "A", 5: "B", 6: "C"}

// GetOpcodeInfo returns metadata for an opcode.
// Returns an OpcodeInfo named "UNKNOWN(n)" if the opcode is not recognized.
func GetOpcodeInfo(op Opcode) OpcodeInfo {
	if info, ok := opcodeInfoTable[op]; ok {
		return info
	}
	return OpcodeInfo{Name: fmt.Sprintf("UNKNOWN(%d)", uint8(op))}
}

// String returns the mnemonic of an opcode.
func (op Opcode) String() string {
	return GetOpcodeInfo(op).Name
}

// Valid reports whether op is one of the eight defined instructions.
func (op Opcode) Valid() bool {
	_, ok := opcodeInfoTable[op]
	return ok
}

// OperandKind returns how op resolves its operand.
func (op Opcode) OperandKind() OperandKind {
	return GetOpcodeInfo(op).Operand
}

// IsJump returns true if op may change the counter other than by advancing it.
func (op Opcode) IsJump() bool {
	return op == OpJnz
}

// OperandName renders operand the way op reads it: a register name for combo
// operands 4-6, otherwise the number itself.
func (op Opcode) OperandName(operand uint64) string {
	if op.OperandKind() == OperandCombo && operand >= 4 && operand <= 6 {
		return comboNames[operand]
	}
	return fmt.Sprintf("%d", operand)
}

// AllOpcodes returns every defined opcode in numeric order.
func AllOpcodes() []Opcode {
	opcodes := make([]Opcode, 0, len(opcodeInfoTable))
	for op := OpAdv; op <= OpCdv; op++ {
		opcodes = append(opcodes, op)
	}
	return opcodes
}
