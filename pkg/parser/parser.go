// Package parser converts XM-4S program text into bytecode programs.
//
// Each line decodes to exactly one instruction:
//
//	push <int>   PUSH
//	push X|Y|Z   PUSH_X, PUSH_Y, PUSH_Z
//	add          ADD
//	jmpos <int>  JMPOS (offset must be >= 0)
//
// Anything else, including blank lines, decodes to RETURN.
package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chazu/xm4s/pkg/bytecode"
)

// ErrNegativeJump is returned for a jmpos line with a negative offset.
var ErrNegativeJump = errors.New("negative jump offset")

// SyntaxError reports a line whose operand cannot be decoded.
type SyntaxError struct {
	File string // empty when parsing from a reader
	Line int    // 1-based
	Text string
	Err  error
}

func (e *SyntaxError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d: %q: %v", e.File, e.Line, e.Text, e.Err)
	}
	return fmt.Sprintf("line %d: %q: %v", e.Line, e.Text, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// ParseLine decodes a single line into an instruction.
func ParseLine(line string) (bytecode.Instruction, error) {
	if operand, ok := strings.CutPrefix(line, "push "); ok {
		switch operand {
		case "X":
			return bytecode.Instruction{Op: bytecode.OpPushX}, nil
		case "Y":
			return bytecode.Instruction{Op: bytecode.OpPushY}, nil
		case "Z":
			return bytecode.Instruction{Op: bytecode.OpPushZ}, nil
		}
		n, err := parseInt(operand)
		if err != nil {
			return bytecode.Instruction{}, err
		}
		return bytecode.Instruction{Op: bytecode.OpPush, Operand: n}, nil
	}

	if line == "add" {
		return bytecode.Instruction{Op: bytecode.OpAdd}, nil
	}

	if operand, ok := strings.CutPrefix(line, "jmpos "); ok {
		n, err := parseInt(operand)
		if err != nil {
			return bytecode.Instruction{}, err
		}
		if n < 0 {
			return bytecode.Instruction{}, ErrNegativeJump
		}
		return bytecode.Instruction{Op: bytecode.OpJumpPos, Operand: n}, nil
	}

	return bytecode.Instruction{Op: bytecode.OpReturn}, nil
}

func parseInt(s string) (int32, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			return 0, fmt.Errorf("invalid number %q: %w", s, numErr.Err)
		}
		return 0, err
	}
	return int32(n), nil
}

// Parse reads a whole program, one instruction per line. Lines may end in
// "\n" or "\r\n". The first undecodable line aborts the parse.
func Parse(r io.Reader) (*bytecode.Program, error) {
	return parse(r, "")
}

// ParseString is Parse over an in-memory program.
func ParseString(src string) (*bytecode.Program, error) {
	return parse(strings.NewReader(src), "")
}

// ParseFile reads and parses the program stored at path.
func ParseFile(path string) (*bytecode.Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	defer f.Close()
	return parse(f, path)
}

func parse(r io.Reader, file string) (*bytecode.Program, error) {
	prog := bytecode.NewProgram()
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := scanner.Text()
		ins, err := ParseLine(text)
		if err != nil {
			return nil, &SyntaxError{File: file, Line: lineNo, Text: text, Err: err}
		}
		prog.Code = append(prog.Code, ins)
	}
	if err := scanner.Err(); err != nil {
		if file != "" {
			return nil, fmt.Errorf("reading %s: %w", file, err)
		}
		return nil, fmt.Errorf("reading program: %w", err)
	}
	return prog, nil
}
