// Package bytecode provides the XM-4S stack machine: a tiny instruction set
// that is run once per cell of the snow grid to decide whether that cell is
// part of a cloud.
//
// # Instruction Set
//
//   - PUSH n: push an integer literal
//   - PUSH_X, PUSH_Y, PUSH_Z: push a coordinate of the current cell
//   - ADD: pop two values, push their sum (int32, wrapping)
//   - JMPOS n: if the top of stack is >= 0, skip n further instructions;
//     the top of stack is inspected, not popped
//   - RETURN: stop
//
// Execution starts at instruction 0 with an empty stack and ends at RETURN or
// when the program counter runs past the last instruction. The program
// counter advances by one after every dispatch and a taken JMPOS n adds n on
// top of that, landing on pc+1+n. A taken JMPOS 0 therefore falls through.
//
// # Stack
//
// The stack holds StackSize int32 slots. Pushing past the last slot, or
// running ADD, JMPOS or the final result read with too few values, stops
// execution with an *ExecError wrapping ErrStackOverflow or ErrStackUnderflow.
//
// # Concurrency
//
// A Program is read-only once built and a VM keeps all per-cell state in a
// frame local to Exec, so a single VM can evaluate many cells concurrently.
//
// # Encoding
//
// Programs encode to canonical CBOR. Hash returns the SHA-256 of that encoding
// and is used to identify a program in logs and listings.
package bytecode
