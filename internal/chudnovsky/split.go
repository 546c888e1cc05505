package chudnovsky

import (
	"context"
	"fmt"

	"github.com/agbru/picalc/internal/parallel"
	"github.com/agbru/picalc/internal/progress"
)

// engine evaluates the series and the square root convergent on a
// fork-join pool. Ranges of at least threshold terms fork their halves and
// their merge products; smaller ranges recurse in the calling goroutine.
type engine struct {
	pool      *parallel.Pool
	threshold uint64
	mul       multiplier
	tracker   *progress.Tracker
}

func newEngine(pool *parallel.Pool, threshold int, mul multiplier) *engine {
	t := uint64(DefaultParallelThreshold)
	if threshold > 0 {
		t = uint64(threshold)
	}
	if mul == nil {
		mul = bigMul
	}
	return &engine{pool: pool, threshold: t, mul: mul}
}

// Split returns the triple for [n1, n2) computed on pool. Ranges of at least
// threshold terms are forked; a non-positive threshold selects
// DefaultParallelThreshold. The result does not depend on pool size or
// threshold.
func Split(ctx context.Context, pool *parallel.Pool, threshold int, n1, n2 uint64) (PQT, error) {
	if n1 >= n2 {
		return PQT{}, fmt.Errorf("chudnovsky: empty range [%d, %d)", n1, n2)
	}
	return newEngine(pool, threshold, nil).split(ctx, n1, n2)
}

func (e *engine) split(ctx context.Context, n1, n2 uint64) (PQT, error) {
	size := n2 - n1
	if size == 1 || size < e.threshold {
		return e.splitSequential(ctx, n1, n2)
	}
	if err := ctx.Err(); err != nil {
		return PQT{}, err
	}

	m := n1 + size/2
	var left, right PQT
	err := e.pool.Join(
		func() (err error) {
			left, err = e.split(ctx, n1, m)
			return err
		},
		func() (err error) {
			right, err = e.split(ctx, m, n2)
			return err
		},
	)
	if err != nil {
		return PQT{}, err
	}

	merged, err := mergeForked(e.mul, e.pool.Join, left, right)
	if err != nil {
		return PQT{}, err
	}
	e.tracker.Done(size)
	return merged, nil
}

func (e *engine) splitSequential(ctx context.Context, n1, n2 uint64) (PQT, error) {
	size := n2 - n1
	if size == 1 {
		e.tracker.Done(1)
		return Term(n2), nil
	}
	if size >= CancelCheckSpan {
		if err := ctx.Err(); err != nil {
			return PQT{}, err
		}
	}

	m := n1 + size/2
	left, err := e.splitSequential(ctx, n1, m)
	if err != nil {
		return PQT{}, err
	}
	right, err := e.splitSequential(ctx, m, n2)
	if err != nil {
		return PQT{}, err
	}
	merged := mergeWith(e.mul, left, right)
	e.tracker.Done(size)
	return merged, nil
}

// splitWork returns the number of progress units Split reports for a range
// of n terms: one per leaf plus the size of every internal node.
func splitWork(n uint64) uint64 {
	memo := make(map[uint64]uint64)
	var work func(uint64) uint64
	work = func(s uint64) uint64 {
		if s <= 1 {
			return s
		}
		if w, ok := memo[s]; ok {
			return w
		}
		w := s + work(s/2) + work(s-s/2)
		memo[s] = w
		return w
	}
	return work(n)
}
