package bytecode

import "fmt"

// Opcode represents a bytecode instruction.
// Opcodes are organized into ranges by category for easy identification.
type Opcode byte

const (
	// ========================================================================
	// Push (0x10-0x1F)
	// ========================================================================

	OpPush  Opcode = 0x10 // Push integer literal: PUSH <n>
	OpPushX Opcode = 0x11 // Push the x coordinate of the current cell
	OpPushY Opcode = 0x12 // Push the y coordinate of the current cell
	OpPushZ Opcode = 0x13 // Push the z coordinate of the current cell

	// ========================================================================
	// Arithmetic (0x50-0x5F)
	// ========================================================================

	OpAdd Opcode = 0x50 // Pop two, push sum

	// ========================================================================
	// Control flow (0x80-0x8F)
	// ========================================================================

	OpJumpPos Opcode = 0x80 // Skip <offset> more instructions if top >= 0 (top is kept)

	// ========================================================================
	// Return (0xF0-0xFF)
	// ========================================================================

	OpReturn Opcode = 0xF0 // Stop execution
)

// OpcodeInfo provides metadata about each opcode for debugging and validation.
type OpcodeInfo struct {
	Name       string // Human-readable name
	StackPop   int    // How many values the instruction needs on the stack
	StackPush  int    // Net values left on the stack in place of the popped ones
	HasOperand bool   // Whether the instruction carries an integer operand
}

// opcodeInfoTable maps opcodes to their metadata.
var opcodeInfoTable = map[Opcode]OpcodeInfo{
	OpPush:  {"PUSH", 0, 1, true},
	OpPushX: {"PUSH_X", 0, 1, false},
	OpPushY: {"PUSH_Y", 0, 1, false},
	OpPushZ: {"PUSH_Z", 0, 1, false},

	OpAdd: {"ADD", 2, 1, false},

	// JMPOS peeks rather than pops.
	OpJumpPos: {"JMPOS", 1, 1, true},

	OpReturn: {"RETURN", 0, 0, false},
}

// GetOpcodeInfo returns metadata for an opcode.
// Returns a zero OpcodeInfo with name "UNKNOWN" if the opcode is not recognized.
func GetOpcodeInfo(op Opcode) OpcodeInfo {
	if info, ok := opcodeInfoTable[op]; ok {
		return info
	}
	return OpcodeInfo{Name: fmt.Sprintf("UNKNOWN(0x%02X)", byte(op))}
}

// String returns the human-readable name of an opcode.
func (op Opcode) String() string {
	return GetOpcodeInfo(op).Name
}

// Valid reports whether op is a defined opcode.
func (op Opcode) Valid() bool {
	_, ok := opcodeInfoTable[op]
	return ok
}

// HasOperand reports whether instructions with this opcode carry an operand.
func (op Opcode) HasOperand() bool {
	return GetOpcodeInfo(op).HasOperand
}

// IsPush returns true if this opcode pushes a single value.
func (op Opcode) IsPush() bool {
	return op >= OpPush && op <= OpPushZ
}

// IsJump returns true if this opcode is a jump instruction.
func (op Opcode) IsJump() bool {
	return op == OpJumpPos
}

// AllOpcodes returns a slice of all defined opcodes.
// Useful for testing that all opcodes have metadata.
func AllOpcodes() []Opcode {
	opcodes := make([]Opcode, 0, len(opcodeInfoTable))
	for op := range opcodeInfoTable {
		opcodes = append(opcodes, op)
	}
	return opcodes
}

// OpcodeCount returns the number of defined opcodes.
func OpcodeCount() int {
	return len(opcodeInfoTable)
}
