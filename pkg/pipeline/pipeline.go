// Package pipeline runs a program over the whole grid and counts its clouds.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/tliron/commonlog"

	"github.com/chazu/xm4s/pkg/bytecode"
	"github.com/chazu/xm4s/pkg/cloud"
	"github.com/chazu/xm4s/pkg/grid"
	"github.com/chazu/xm4s/pkg/parser"
)

var log = commonlog.GetLogger("xm4s.pipeline")

// Options controls a run.
type Options struct {
	// Workers bounds the number of x planes evaluated concurrently.
	// Zero means runtime.GOMAXPROCS(0).
	Workers int

	// RunID tags log lines for this run. Optional.
	RunID string
}

// Run evaluates prog at every cell, then counts the clouds in the result.
// A fresh volume is built on every call, so repeated runs of the same
// program return the same Result.
func Run(ctx context.Context, prog *bytecode.Program, opts Options) (cloud.Result, error) {
	start := time.Now()
	log.Infof("[%s] run: %d instructions, program %s", opts.RunID, prog.Len(), prog.HashString()[:16])

	vol, err := grid.Fill(ctx, bytecode.NewVM(prog), opts.Workers)
	if err != nil {
		return cloud.Result{}, fmt.Errorf("evaluating grid: %w", err)
	}
	filled := time.Since(start)
	occupied := vol.Count()
	log.Debugf("[%s] grid filled in %s: %d of %d cells occupied", opts.RunID, filled, occupied, grid.Cells)

	res := cloud.Count(vol)
	log.Infof("[%s] counted %d clouds, %d blocks in %s", opts.RunID, res.Clouds, res.Blocks, time.Since(start))
	return res, nil
}

// RunFile parses the program at path and runs it.
func RunFile(ctx context.Context, path string, opts Options) (cloud.Result, error) {
	prog, err := parser.ParseFile(path)
	if err != nil {
		return cloud.Result{}, err
	}
	return Run(ctx, prog, opts)
}
