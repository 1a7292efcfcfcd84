package bytecode

import (
	"fmt"
)

// ProgramVersion is the current program format version.
// Increment when making incompatible changes to the encoding.
const ProgramVersion uint16 = 1

// Instruction is a single decoded instruction. Operand is meaningful only for
// opcodes whose metadata says HasOperand: the literal for PUSH and the skip
// distance for JMPOS.
type Instruction struct {
	Op      Opcode `cbor:"1,keyasint"`
	Operand int32  `cbor:"2,keyasint,omitempty"`
}

// String renders the instruction the way the disassembler prints it.
func (ins Instruction) String() string {
	if ins.Op.HasOperand() {
		return fmt.Sprintf("%s %d", ins.Op, ins.Operand)
	}
	return ins.Op.String()
}

// Program is a decoded instruction sequence.
// A Program is built once and then shared read-only by every evaluation;
// nothing in this package mutates Code after construction.
type Program struct {
	Version uint16        `cbor:"1,keyasint"`
	Code    []Instruction `cbor:"2,keyasint"`
}

// NewProgram creates a new empty program with the current version.
func NewProgram() *Program {
	return &Program{
		Version: ProgramVersion,
		Code:    make([]Instruction, 0, 32),
	}
}

// Emit appends an operand-less instruction and returns its index.
func (p *Program) Emit(op Opcode) int {
	return p.EmitOperand(op, 0)
}

// EmitOperand appends an instruction with an operand and returns its index.
func (p *Program) EmitOperand(op Opcode, operand int32) int {
	pc := len(p.Code)
	p.Code = append(p.Code, Instruction{Op: op, Operand: operand})
	return pc
}

// Len returns the number of instructions.
func (p *Program) Len() int {
	return len(p.Code)
}

// At returns the instruction at pc.
// Panics if pc is out of range.
func (p *Program) At(pc int) Instruction {
	return p.Code[pc]
}

// JumpTarget returns the program counter a taken jump at pc lands on.
// The interpreter always advances by one after dispatch, so the target is
// pc + 1 + offset.
func (p *Program) JumpTarget(pc int) int {
	return pc + 1 + int(p.Code[pc].Operand)
}

// Validate checks that every opcode is defined and every jump offset is
// non-negative. Stack depth is checked at run time by the VM.
func (p *Program) Validate() error {
	for pc, ins := range p.Code {
		if !ins.Op.Valid() {
			return fmt.Errorf("instruction %d: unknown opcode 0x%02X", pc, byte(ins.Op))
		}
		if ins.Op.IsJump() && ins.Operand < 0 {
			return fmt.Errorf("instruction %d: negative jump offset %d", pc, ins.Operand)
		}
	}
	return nil
}
