// XM-4S CLI - runs a snow program over the 30x30x30 grid and reports its clouds
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"

	"github.com/chazu/xm4s/manifest"
	"github.com/chazu/xm4s/pkg/bytecode"
	"github.com/chazu/xm4s/pkg/grid"
	"github.com/chazu/xm4s/pkg/parser"
	"github.com/chazu/xm4s/pkg/pipeline"

	_ "github.com/tliron/commonlog/simple"
)

const (
	verboseLevel = 1
	debugLevel   = 2
)

var log = commonlog.GetLogger("xm4s")

func main() {
	verbose := flag.Bool("v", false, "Verbose output")
	debug := flag.Bool("debug", false, "Debug logging")
	workers := flag.Int("workers", -1, "Planes evaluated concurrently (0 = GOMAXPROCS, default from xm4s.toml)")
	disasm := flag.Bool("disasm", false, "Print the decoded program and exit")
	trace := flag.String("trace", "", "Trace a single cell, e.g. -trace 3,14,15")
	configDir := flag.String("config", ".", "Directory to start searching for xm4s.toml")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: xm4s [options] [program]\n\n")
		fmt.Fprintf(os.Stderr, "Runs an XM-4S program at every cell of the %dx%dx%d grid and counts the clouds.\n", grid.Size, grid.Size, grid.Size)
		fmt.Fprintf(os.Stderr, "The program defaults to [program] path in xm4s.toml, or %s.\n\n", manifest.DefaultProgram)
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  xm4s                      # Run input.txt\n")
		fmt.Fprintf(os.Stderr, "  xm4s -workers 4 snow.txt  # Run snow.txt on 4 workers\n")
		fmt.Fprintf(os.Stderr, "  xm4s -disasm snow.txt     # Show the decoded program\n")
		fmt.Fprintf(os.Stderr, "  xm4s -trace 0,0,0         # Step through one cell\n")
	}
	flag.Parse()

	m, err := loadConfig(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	verbosity := m.Log.Verbosity
	if *verbose && verbosity < verboseLevel {
		verbosity = verboseLevel
	}
	if (*debug || *trace != "") && verbosity < debugLevel {
		verbosity = debugLevel
	}
	commonlog.Configure(verbosity, m.LogPath())

	if *workers >= 0 {
		m.Eval.Workers = *workers
	}

	path := m.ProgramPath()
	if flag.NArg() > 0 {
		path = flag.Arg(0)
	}

	prog, err := parser.ParseFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *disasm {
		fmt.Print(prog.DisassembleWithName(path))
		os.Exit(0)
	}

	if *trace != "" {
		c, err := parseCoord(*trace)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := runTrace(os.Stdout, prog, c); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runID := uuid.NewString()
	log.Infof("[%s] program %s, workers %d", runID, path, m.Eval.Workers)

	res, err := pipeline.Run(ctx, prog, pipeline.Options{Workers: m.Eval.Workers, RunID: runID})
	if err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(res)
}

// loadConfig finds xm4s.toml from dir upward, falling back to defaults.
func loadConfig(dir string) (*manifest.Manifest, error) {
	m, err := manifest.FindAndLoad(dir)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return manifest.Default(""), nil
	}
	return m, nil
}

// parseCoord parses "x,y,z" into an in-bounds cell.
func parseCoord(s string) (grid.Coord, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return grid.Coord{}, fmt.Errorf("invalid cell %q: want x,y,z", s)
	}
	var vals [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return grid.Coord{}, fmt.Errorf("invalid cell %q: %w", s, err)
		}
		vals[i] = n
	}
	c := grid.Coord{X: vals[0], Y: vals[1], Z: vals[2]}
	if !c.InBounds() {
		return grid.Coord{}, fmt.Errorf("cell %s outside [0,%d)", c, grid.Size)
	}
	return c, nil
}

// runTrace evaluates a single cell with instruction tracing on and writes
// "occupied" or "empty" with the final top of stack.
func runTrace(w io.Writer, prog *bytecode.Program, c grid.Coord) error {
	vm := bytecode.NewVM(prog)
	vm.Trace = true
	top, err := vm.Exec(int32(c.X), int32(c.Y), int32(c.Z))
	if err != nil {
		return err
	}
	state := "empty"
	if top == bytecode.Occupied {
		state = "occupied"
	}
	fmt.Fprintf(w, "%s %s (top=%d)\n", c, state, top)
	return nil
}
