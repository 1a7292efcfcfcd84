package bytecode

import (
	"errors"
	"fmt"

	"github.com/tliron/commonlog"
)

// StackSize is the fixed capacity of the value stack.
const StackSize = 16

// Occupied is the final top-of-stack value that marks a cell as occupied.
const Occupied int32 = 1

var (
	// ErrStackOverflow is returned when a push would exceed StackSize slots.
	ErrStackOverflow = errors.New("stack overflow")

	// ErrStackUnderflow is returned when an instruction, or the final result
	// read, needs more values than the stack holds.
	ErrStackUnderflow = errors.New("stack underflow")

	// ErrBadInstruction is returned for undefined opcodes and negative jumps.
	ErrBadInstruction = errors.New("bad instruction")
)

var vmLog = commonlog.GetLogger("xm4s.bytecode")

// ExecError reports a fault at a specific instruction for a specific cell.
type ExecError struct {
	X, Y, Z int32
	PC      int
	Ins     Instruction
	Err     error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("cell (%d,%d,%d): pc %d (%s): %v", e.X, e.Y, e.Z, e.PC, e.Ins, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// VM executes a program against a single cell at a time.
//
// A VM holds only the read-only program, so one VM may be shared by any
// number of goroutines; every call to Exec gets its own frame.
type VM struct {
	program *Program

	// Debug/trace mode
	Trace bool
}

// frame is the per-cell execution state. It lives on the caller's stack and
// is discarded when Exec returns.
type frame struct {
	pc    int
	sp    int
	stack [StackSize]int32
}

// NewVM creates a VM for the given program.
func NewVM(program *Program) *VM {
	return &VM{program: program}
}

// Program returns the program this VM executes.
func (vm *VM) Program() *Program {
	return vm.program
}

// Evaluate runs the program for cell (x, y, z) and reports whether the
// final top of stack equals Occupied.
func (vm *VM) Evaluate(x, y, z int32) (bool, error) {
	top, err := vm.Exec(x, y, z)
	if err != nil {
		return false, err
	}
	return top == Occupied, nil
}

// Exec runs the program for cell (x, y, z) and returns the final top of stack.
func (vm *VM) Exec(x, y, z int32) (int32, error) {
	var f frame
	code := vm.program.Code

	for f.pc < len(code) {
		ins := code[f.pc]

		if vm.Trace {
			vm.trace(&f, ins, x, y, z)
		}

		switch ins.Op {
		case OpPush:
			if !f.push(ins.Operand) {
				return 0, fault(&f, ins, x, y, z, ErrStackOverflow)
			}

		case OpPushX:
			if !f.push(x) {
				return 0, fault(&f, ins, x, y, z, ErrStackOverflow)
			}

		case OpPushY:
			if !f.push(y) {
				return 0, fault(&f, ins, x, y, z, ErrStackOverflow)
			}

		case OpPushZ:
			if !f.push(z) {
				return 0, fault(&f, ins, x, y, z, ErrStackOverflow)
			}

		case OpAdd:
			// Drop the top slot and fold it into the one below.
			if f.sp < 2 {
				return 0, fault(&f, ins, x, y, z, ErrStackUnderflow)
			}
			f.sp--
			f.stack[f.sp-1] += f.stack[f.sp]

		case OpJumpPos:
			if ins.Operand < 0 {
				return 0, fault(&f, ins, x, y, z, ErrBadInstruction)
			}
			if f.sp < 1 {
				return 0, fault(&f, ins, x, y, z, ErrStackUnderflow)
			}
			if f.stack[f.sp-1] >= 0 {
				f.pc += int(ins.Operand)
			}

		case OpReturn:
			return f.result(ins, x, y, z)

		default:
			return 0, fault(&f, ins, x, y, z, ErrBadInstruction)
		}

		f.pc++
	}

	return f.result(Instruction{Op: OpReturn}, x, y, z)
}

// Stack helpers

func (f *frame) push(v int32) bool {
	if f.sp >= StackSize {
		return false
	}
	f.stack[f.sp] = v
	f.sp++
	return true
}

func (f *frame) result(ins Instruction, x, y, z int32) (int32, error) {
	if f.sp < 1 {
		return 0, fault(f, ins, x, y, z, ErrStackUnderflow)
	}
	return f.stack[f.sp-1], nil
}

func fault(f *frame, ins Instruction, x, y, z int32, err error) error {
	return &ExecError{X: x, Y: y, Z: z, PC: f.pc, Ins: ins, Err: err}
}

func (vm *VM) trace(f *frame, ins Instruction, x, y, z int32) {
	if f.sp > 0 {
		vmLog.Debugf("(%d,%d,%d) [%04d] %-10s sp=%d top=%d", x, y, z, f.pc, ins, f.sp, f.stack[f.sp-1])
	} else {
		vmLog.Debugf("(%d,%d,%d) [%04d] %-10s sp=0", x, y, z, f.pc, ins)
	}
}
