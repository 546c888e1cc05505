package chudnovsky

import (
	"context"
	"math"

	"github.com/agbru/picalc/internal/parallel"
	"github.com/agbru/picalc/internal/progress"
)

// coreCalculator is a bare π algorithm, wrapped by PiCalculator.
type coreCalculator interface {
	CalculateCore(ctx context.Context, reporter progress.ProgressCallback, prec Precision, opts Options) (*Result, error)
	Name() string
}

// ParallelCalculator runs binary splitting and the Pell engine concurrently
// on a pool of opts.Workers workers, forking ranges of at least
// opts.ParallelThreshold terms.
type ParallelCalculator struct{}

// Name returns the algorithm name.
func (c *ParallelCalculator) Name() string {
	return "Chudnovsky (Parallel)"
}

// CalculateCore implements coreCalculator.
func (c *ParallelCalculator) CalculateCore(ctx context.Context, reporter progress.ProgressCallback, prec Precision, opts Options) (*Result, error) {
	pool := parallel.NewPool(opts.Workers)
	return newEngine(pool, opts.ParallelThreshold, bigMul).run(ctx, reporter, prec)
}

// SequentialCalculator evaluates everything in the calling goroutine. It
// shares the engine of ParallelCalculator with forking disabled and serves
// as the reference for comparison runs.
type SequentialCalculator struct{}

// Name returns the algorithm name.
func (c *SequentialCalculator) Name() string {
	return "Chudnovsky (Sequential)"
}

// CalculateCore implements coreCalculator.
func (c *SequentialCalculator) CalculateCore(ctx context.Context, reporter progress.ProgressCallback, prec Precision, _ Options) (*Result, error) {
	return newEngine(parallel.NewPool(1), math.MaxInt, bigMul).run(ctx, reporter, prec)
}

// run computes the root triple and the √10005 convergent side by side,
// assembles the π fraction and renders it.
func (e *engine) run(ctx context.Context, reporter progress.ProgressCallback, prec Precision) (*Result, error) {
	e.tracker = progress.NewTracker(splitWork(prec.Terms), reporter)

	var (
		root  PQT
		sqrt  Convergent
		iters int
	)
	err := e.pool.Join(
		func() (err error) {
			root, err = e.split(ctx, 0, prec.Terms)
			return err
		},
		func() (err error) {
			sqrt, iters, err = e.sqrt(ctx, prec.PellTarget)
			return err
		},
	)
	if err != nil {
		return nil, err
	}

	frac, err := e.assemble(root, sqrt)
	if err != nil {
		return nil, err
	}
	digits, err := Render(frac, prec.Digits)
	if err != nil {
		return nil, err
	}
	return &Result{
		Digits:         digits,
		Precision:      prec,
		PellIterations: iters,
		Tasks:          e.pool.Stats(),
	}, nil
}
