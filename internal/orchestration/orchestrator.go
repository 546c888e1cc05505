package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/picalc/internal/chudnovsky"
	"github.com/agbru/picalc/internal/config"
	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/progress"
)

// ProgressBufferMultiplier sizes the progress channel per calculator so
// that a slow display rarely makes calculators drop updates.
const ProgressBufferMultiplier = 5

// ExecuteCalculations runs every calculator concurrently for cfg.Digits
// digits and returns their results in the order of calculators. Progress
// updates go to progressReporter, which runs until all calculators are
// done. A failing calculator does not stop the others.
func ExecuteCalculations(ctx context.Context, calculators []chudnovsky.Calculator, cfg config.AppConfig, progressReporter ProgressReporter, out io.Writer) []CalculationResult {
	var g errgroup.Group
	results := make([]CalculationResult, len(calculators))
	progressChan := make(chan progress.ProgressUpdate, len(calculators)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(calculators), out)

	opts := cfg.ToCalculationOptions()
	for i, calc := range calculators {
		g.Go(func() error {
			startTime := time.Now()
			res, err := calc.Calculate(ctx, progressChan, i, cfg.Digits, opts)
			if err != nil {
				err = apperrors.CalculationError{Algorithm: calc.Name(), Cause: err}
			}
			results[i] = CalculationResult{
				Name: calc.Name(), Result: res, Duration: time.Since(startTime), Err: err,
			}
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// AnalyzeComparisonResults sorts results by outcome and duration, shows the
// comparison table and checks that all successful runs agree. It returns
// the process exit code: success, the code of the first error when every
// run failed, or ExitErrorMismatch when digits differ.
func AnalyzeComparisonResults(results []CalculationResult, opts PresentationOptions, presenter ResultPresenter, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	presenter.PresentComparisonTable(results, out)

	if err := CheckConsistency(results); err != nil {
		if apperrors.ExitCode(err) == apperrors.ExitErrorMismatch {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! %v.\n", err)
			return apperrors.ExitErrorMismatch
		}
		fmt.Fprintf(out, "\nGlobal Status: Failure. No algorithm could complete the calculation.\n")
		return presenter.HandleError(err, 0, out)
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	presenter.PresentResult(results[0], opts, out)
	return apperrors.ExitSuccess
}

// CheckConsistency returns nil when at least one run succeeded and every
// successful run produced the digits of the first. It returns the first
// error when all runs failed, and an apperrors.MismatchError naming the
// disagreeing calculators otherwise.
func CheckConsistency(results []CalculationResult) error {
	var (
		reference *CalculationResult
		firstErr  error
		differing []string
	)
	for i := range results {
		res := &results[i]
		switch {
		case res.Err != nil:
			if firstErr == nil {
				firstErr = res.Err
			}
		case reference == nil:
			reference = res
		case res.Result.Digits != reference.Result.Digits:
			differing = append(differing, res.Name)
		}
	}
	if reference == nil {
		if firstErr == nil {
			firstErr = fmt.Errorf("no calculator was run")
		}
		return firstErr
	}
	if len(differing) > 0 {
		return apperrors.MismatchError{Algorithms: append([]string{reference.Name}, differing...)}
	}
	return nil
}
