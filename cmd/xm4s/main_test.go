package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/chazu/xm4s/manifest"
	"github.com/chazu/xm4s/pkg/bytecode"
	"github.com/chazu/xm4s/pkg/grid"
	"github.com/chazu/xm4s/pkg/parser"
)

func TestParseCoord(t *testing.T) {
	tests := []struct {
		in      string
		want    grid.Coord
		wantErr bool
	}{
		{"0,0,0", grid.Coord{}, false},
		{"3,14,15", grid.Coord{X: 3, Y: 14, Z: 15}, false},
		{" 29, 29 ,29", grid.Coord{X: 29, Y: 29, Z: 29}, false},
		{"1,2", grid.Coord{}, true},
		{"1,2,3,4", grid.Coord{}, true},
		{"a,b,c", grid.Coord{}, true},
		{"30,0,0", grid.Coord{}, true},
		{"0,-1,0", grid.Coord{}, true},
	}
	for _, tt := range tests {
		got, err := parseCoord(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseCoord(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parseCoord(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestRunTrace(t *testing.T) {
	prog, err := parser.ParseString("push X\npush -10\nadd\njmpos 2\npush 0\nret\npush 1\n")
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := runTrace(&out, prog, grid.Coord{X: 12}); err != nil {
		t.Fatalf("runTrace failed: %v", err)
	}
	if got, want := out.String(), "(12,0,0) occupied (top=1)\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	out.Reset()
	if err := runTrace(&out, prog, grid.Coord{X: 2}); err != nil {
		t.Fatalf("runTrace failed: %v", err)
	}
	if got, want := out.String(), "(2,0,0) empty (top=0)\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRunTraceFault(t *testing.T) {
	prog, err := parser.ParseString("add\n")
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	err = runTrace(&out, prog, grid.Coord{})
	if !errors.Is(err, bytecode.ErrStackUnderflow) {
		t.Errorf("expected ErrStackUnderflow, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("unexpected output on fault: %q", out.String())
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, manifest.FileName), []byte("[eval]\nworkers = 3\n"), 0644); err != nil {
		t.Fatal(err)
	}
	m, err := loadConfig(dir)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if m.Eval.Workers != 3 {
		t.Errorf("workers = %d, want 3", m.Eval.Workers)
	}
	if m.ProgramPath() != filepath.Join(m.Dir, manifest.DefaultProgram) {
		t.Errorf("ProgramPath() = %q", m.ProgramPath())
	}
}
