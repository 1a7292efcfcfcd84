package grid

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
)

// evalFunc adapts a function to Evaluator.
type evalFunc func(x, y, z int32) (bool, error)

func (f evalFunc) Evaluate(x, y, z int32) (bool, error) { return f(x, y, z) }

func checkerboard(x, y, z int32) (bool, error) {
	return (x+y+z)%2 == 0, nil
}

func TestFillMatchesEvaluator(t *testing.T) {
	vol, err := Fill(context.Background(), evalFunc(checkerboard), 4)
	if err != nil {
		t.Fatalf("Fill failed: %v", err)
	}
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			for z := 0; z < Size; z++ {
				want := (x+y+z)%2 == 0
				if vol[x][y][z] != want {
					t.Fatalf("cell (%d,%d,%d) = %v, want %v", x, y, z, vol[x][y][z], want)
				}
			}
		}
	}
}

func TestFillPlanesInXOrder(t *testing.T) {
	// Only the plane whose x equals its own y row is set; misplaced planes
	// would show up at the wrong x.
	ev := evalFunc(func(x, y, z int32) (bool, error) {
		return y == x && z == 0, nil
	})
	for _, workers := range []int{0, 1, 3, 30, 100} {
		vol, err := Fill(context.Background(), ev, workers)
		if err != nil {
			t.Fatalf("workers=%d: Fill failed: %v", workers, err)
		}
		for x := 0; x < Size; x++ {
			for y := 0; y < Size; y++ {
				if got, want := vol[x][y][0], x == y; got != want {
					t.Fatalf("workers=%d: cell (%d,%d,0) = %v, want %v", workers, x, y, got, want)
				}
			}
		}
	}
}

func TestFillEvaluatesEveryCellOnce(t *testing.T) {
	var calls int64
	var seen [Cells]int32
	ev := evalFunc(func(x, y, z int32) (bool, error) {
		atomic.AddInt64(&calls, 1)
		atomic.AddInt32(&seen[(int(x)*Size+int(y))*Size+int(z)], 1)
		return false, nil
	})
	if _, err := Fill(context.Background(), ev, 8); err != nil {
		t.Fatalf("Fill failed: %v", err)
	}
	if calls != Cells {
		t.Errorf("Evaluate called %d times, want %d", calls, Cells)
	}
	for i, n := range seen {
		if n != 1 {
			t.Fatalf("cell %d evaluated %d times", i, n)
		}
	}
}

func TestFillMatchesSequential(t *testing.T) {
	ev := evalFunc(func(x, y, z int32) (bool, error) {
		return (x*7+y*3+z)%5 < 2, nil
	})
	par, err := Fill(context.Background(), ev, 0)
	if err != nil {
		t.Fatalf("Fill failed: %v", err)
	}
	seq, err := FillSequential(ev)
	if err != nil {
		t.Fatalf("FillSequential failed: %v", err)
	}
	if *par != *seq {
		t.Error("parallel and sequential volumes differ")
	}
}

func TestFillPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	ev := evalFunc(func(x, y, z int32) (bool, error) {
		if x == 17 && y == 4 && z == 9 {
			return false, boom
		}
		return true, nil
	})
	vol, err := Fill(context.Background(), ev, 4)
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if vol != nil {
		t.Error("expected nil volume on error")
	}
	if !strings.Contains(err.Error(), "plane x=17") {
		t.Errorf("error %q does not name the plane", err)
	}
}

func TestFillRecoversPanic(t *testing.T) {
	ev := evalFunc(func(x, y, z int32) (bool, error) {
		if x == 3 {
			var stack [16]int32
			i := int(y) + 16
			return stack[i] == 1, nil
		}
		return false, nil
	})
	_, err := Fill(context.Background(), ev, 2)
	if err == nil || !strings.Contains(err.Error(), "evaluator panic") {
		t.Fatalf("expected recovered panic, got %v", err)
	}
}

func TestFillCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Fill(ctx, evalFunc(checkerboard), 1)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestFillSequentialError(t *testing.T) {
	ev := evalFunc(func(x, y, z int32) (bool, error) {
		return false, errors.New("nope")
	})
	if _, err := FillSequential(ev); err == nil {
		t.Error("expected error")
	}
}
