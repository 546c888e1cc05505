package chudnovsky

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/agbru/picalc/internal/parallel"
	"github.com/agbru/picalc/internal/progress"
)

// TestSplitSchedulingInvariance checks that the triple for [0, N) is
// bit-identical for every threshold and worker count, and equal to the
// fully sequential evaluation.
func TestSplitSchedulingInvariance(t *testing.T) {
	t.Parallel()
	sizes := []uint64{1, 2, 5, 17, 1000, 100_000}
	thresholds := []int{1, 2, 3, 7, 1000, 0}
	workers := []int{1, 2, 8}

	for _, n := range sizes {
		if n == 100_000 && testing.Short() {
			continue
		}
		want, err := Split(context.Background(), parallel.NewPool(1), math.MaxInt, 0, n)
		if err != nil {
			t.Fatalf("sequential Split(0, %d): %v", n, err)
		}
		for _, th := range thresholds {
			// Forking every node of a 100k-term tree is slow and proves
			// nothing the smaller sizes don't.
			if n == 100_000 && th < 1000 && th != 0 {
				continue
			}
			for _, w := range workers {
				got, err := Split(context.Background(), parallel.NewPool(w), th, 0, n)
				if err != nil {
					t.Fatalf("Split(0, %d) threshold=%d workers=%d: %v", n, th, w, err)
				}
				if !equalPQT(got, want) {
					t.Errorf("Split(0, %d) threshold=%d workers=%d differs from sequential", n, th, w)
				}
			}
		}
	}
}

func TestSplitMatchesLeftFold(t *testing.T) {
	t.Parallel()
	for _, n := range []uint64{1, 2, 5, 17, 64} {
		got, err := Split(context.Background(), parallel.NewPool(4), 2, 0, n)
		if err != nil {
			t.Fatalf("Split: %v", err)
		}
		if !equalPQT(got, foldTerms(0, n)) {
			t.Errorf("N=%d: Split differs from left fold", n)
		}
	}
}

func TestSplitSubRange(t *testing.T) {
	t.Parallel()
	got, err := Split(context.Background(), parallel.NewPool(2), 3, 10, 30)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if !equalPQT(got, foldTerms(10, 30)) {
		t.Error("Split(10, 30) differs from left fold")
	}
}

func TestSplitRejectsEmptyRange(t *testing.T) {
	t.Parallel()
	if _, err := Split(context.Background(), parallel.NewPool(1), 0, 5, 5); err == nil {
		t.Error("expected error for empty range")
	}
}

func TestSplitCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Split(ctx, parallel.NewPool(4), 16, 0, 10_000)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestSplitForksAboveThreshold(t *testing.T) {
	t.Parallel()
	pool := parallel.NewPool(1)
	if _, err := Split(context.Background(), pool, 4, 0, 64); err != nil {
		t.Fatal(err)
	}
	if pool.Stats().Inline == 0 {
		t.Error("expected forked tasks for ranges above the threshold")
	}

	pool = parallel.NewPool(1)
	if _, err := Split(context.Background(), pool, 1000, 0, 64); err != nil {
		t.Fatal(err)
	}
	if s := pool.Stats(); s.Inline != 0 || s.Spawned != 0 {
		t.Errorf("ranges below the threshold forked: %+v", s)
	}
}

func TestSplitWorkMatchesTrackerTotal(t *testing.T) {
	t.Parallel()
	for _, n := range []uint64{1, 2, 3, 17, 1000} {
		e := newEngine(parallel.NewPool(3), 8, nil)
		e.tracker = progress.NewTracker(splitWork(n), nil)
		if _, err := e.split(context.Background(), 0, n); err != nil {
			t.Fatal(err)
		}
		if got, want := e.tracker.Completed(), splitWork(n); got != want {
			t.Errorf("N=%d: completed %d units, want %d", n, got, want)
		}
	}
}

func TestSplitWork(t *testing.T) {
	t.Parallel()
	tests := []struct{ n, want uint64 }{
		{0, 0},
		{1, 1},
		{2, 4},  // 2 + 1 + 1
		{3, 8},  // 3 + 1 + (2+1+1)
		{4, 12}, // 4 + 4 + 4
	}
	for _, tt := range tests {
		if got := splitWork(tt.n); got != tt.want {
			t.Errorf("splitWork(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}
