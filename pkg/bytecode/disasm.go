package bytecode

import (
	"fmt"
	"strings"
)

// Disassemble returns a human-readable listing for the program.
func (p *Program) Disassemble() string {
	return p.DisassembleWithName("")
}

// DisassembleWithName returns a human-readable listing with a name header.
func (p *Program) DisassembleWithName(name string) string {
	var sb strings.Builder

	// Header
	if name != "" {
		sb.WriteString(fmt.Sprintf("; === %s ===\n", name))
	}
	sb.WriteString(fmt.Sprintf("; XM-4S bytecode v%d\n", p.Version))
	sb.WriteString(fmt.Sprintf("; Instructions: %d\n", len(p.Code)))
	sb.WriteString(fmt.Sprintf("; Hash: %s\n", p.HashString()[:16]))
	sb.WriteString("\n")

	sb.WriteString("; Code:\n")
	for pc := range p.Code {
		sb.WriteString(p.disassembleInstruction(pc))
		sb.WriteString("\n")
	}

	return sb.String()
}

// disassembleInstruction formats the instruction at pc, annotating jumps
// with their absolute target.
func (p *Program) disassembleInstruction(pc int) string {
	ins := p.Code[pc]
	line := fmt.Sprintf("%04d  %s", pc, ins)
	if ins.Op.IsJump() && ins.Operand >= 0 {
		target := p.JumpTarget(pc)
		if target >= len(p.Code) {
			return fmt.Sprintf("%-24s ; -> %04d (end)", line, target)
		}
		return fmt.Sprintf("%-24s ; -> %04d", line, target)
	}
	return line
}
