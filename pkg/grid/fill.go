package grid

import (
	"context"
	"fmt"
	"runtime"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"
)

var log = commonlog.GetLogger("xm4s.grid")

// Evaluator decides whether a single cell is occupied.
// Implementations must be safe for concurrent use; *bytecode.VM is.
type Evaluator interface {
	Evaluate(x, y, z int32) (bool, error)
}

// Fill evaluates every cell of the grid and returns the resulting volume.
//
// Work is split into one unit per x plane. Up to workers planes are evaluated
// concurrently (workers <= 0 means runtime.GOMAXPROCS(0)); each unit fills its
// own Plane and stores it at index x, so the volume is assembled in x order
// regardless of completion order. The first failing cell aborts the fill.
func Fill(ctx context.Context, ev Evaluator, workers int) (*Volume, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > Size {
		workers = Size
	}

	vol := new(Volume)
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	log.Debugf("filling %d planes with %d workers", Size, workers)

	for x := 0; x < Size; x++ {
		x := x
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			plane, err := fillPlane(ev, x)
			if err != nil {
				return err
			}
			vol[x] = *plane
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return vol, nil
}

// fillPlane evaluates every (y, z) at a fixed x, recovering from panics in
// the evaluator so one bad cell cannot take down the process.
func fillPlane(ev Evaluator, x int) (plane *Plane, err error) {
	defer func() {
		if r := recover(); r != nil {
			plane = nil
			err = fmt.Errorf("plane x=%d: evaluator panic: %v", x, r)
		}
	}()

	plane = new(Plane)
	for y := 0; y < Size; y++ {
		for z := 0; z < Size; z++ {
			occupied, err := ev.Evaluate(int32(x), int32(y), int32(z))
			if err != nil {
				return nil, fmt.Errorf("plane x=%d: %w", x, err)
			}
			plane[y][z] = occupied
		}
	}
	return plane, nil
}

// FillSequential is the single-goroutine reference for Fill, evaluating cells
// in x, y, z order.
func FillSequential(ev Evaluator) (*Volume, error) {
	vol := new(Volume)
	for x := 0; x < Size; x++ {
		plane, err := fillPlane(ev, x)
		if err != nil {
			return nil, err
		}
		vol[x] = *plane
	}
	return vol, nil
}
