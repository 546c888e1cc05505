package chudnovsky

import (
	"context"
	"errors"
	"math/big"
	"math/bits"
	"testing"

	"github.com/agbru/picalc/internal/parallel"
)

func TestPellSeedsSatisfyNorm(t *testing.T) {
	t.Parallel()
	a, b := pellSeeds()
	for _, c := range []Convergent{a, b} {
		if PellNorm(c).Cmp(bigOne) != 0 {
			t.Errorf("seed (%s, %s) has norm %s, want 1", c.X, c.Y, PellNorm(c))
		}
	}
}

// TestPellInvariantEveryStep replays the doubling loop and checks
// X² - 10005·Y² = 1 and strictly increasing Y at each step.
func TestPellInvariantEveryStep(t *testing.T) {
	t.Parallel()
	e := newEngine(parallel.NewPool(4), 0, nil)
	prev, cur := pellSeeds()
	lastY := new(big.Int).Set(cur.Y)
	for step := 1; step <= 25; step++ {
		next, err := e.combine(prev, cur)
		if err != nil {
			t.Fatalf("step %d: %v", step, err)
		}
		if PellNorm(next).Cmp(bigOne) != 0 {
			t.Fatalf("step %d: norm %s, want 1", step, PellNorm(next))
		}
		if step > 1 && next.Y.Cmp(lastY) <= 0 {
			t.Fatalf("step %d: Y did not increase", step)
		}
		lastY.Set(next.Y)
		prev, cur = cur, next
	}
}

func TestSqrtTerminatesLogarithmically(t *testing.T) {
	t.Parallel()
	tests := []struct {
		digits    uint64
		wantIters int
	}{
		{1, 2},
		{10, 4},
		{100, 7},
		{1000, 11},
		{20_000, 17},
	}
	for _, tt := range tests {
		prec := NewPrecision(tt.digits)
		c, iters, err := Sqrt(context.Background(), parallel.NewPool(2), prec.PellTarget)
		if err != nil {
			t.Fatalf("digits=%d: %v", tt.digits, err)
		}
		if iters != tt.wantIters {
			t.Errorf("digits=%d: %d iterations, want %d", tt.digits, iters, tt.wantIters)
		}
		if bound := 2*bits.Len64(tt.digits) + 6; iters > bound {
			t.Errorf("digits=%d: %d iterations exceeds bound %d", tt.digits, iters, bound)
		}
		if c.Y.Cmp(prec.PellTarget) <= 0 {
			t.Errorf("digits=%d: Y does not exceed target", tt.digits)
		}
		if PellNorm(c).Cmp(bigOne) != 0 {
			t.Errorf("digits=%d: final convergent violates the Pell relation", tt.digits)
		}
	}
}

// X/Y must agree with √10005 to about twice the digits of Y.
func TestSqrtApproximatesRoot(t *testing.T) {
	t.Parallel()
	target := new(big.Int).Exp(big.NewInt(10), big.NewInt(60), nil)
	c, _, err := Sqrt(context.Background(), parallel.NewPool(1), target)
	if err != nil {
		t.Fatal(err)
	}
	// floor(√10005 · 10^100) computed with integer square root.
	scaled := new(big.Int).Exp(big.NewInt(10), big.NewInt(200), nil)
	scaled.Mul(scaled, bigRadicand)
	want := new(big.Int).Sqrt(scaled)

	got := new(big.Int).Exp(big.NewInt(10), big.NewInt(100), nil)
	got.Mul(got, c.X)
	got.Quo(got, c.Y)
	diff := new(big.Int).Sub(got, want)
	if diff.Abs(diff).Cmp(bigOne) > 0 {
		t.Errorf("X/Y differs from √10005 in the first 100 decimals: got %s want %s", got, want)
	}
}

func TestSqrtRejectsBadTarget(t *testing.T) {
	t.Parallel()
	if _, _, err := Sqrt(context.Background(), parallel.NewPool(1), big.NewInt(0)); err == nil {
		t.Error("expected error for zero target")
	}
	if _, _, err := Sqrt(context.Background(), parallel.NewPool(1), nil); err == nil {
		t.Error("expected error for nil target")
	}
}

func TestSqrtCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := Sqrt(ctx, parallel.NewPool(1), big.NewInt(1000))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
