package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/picalc/internal/chudnovsky"
	"github.com/agbru/picalc/internal/progress"
)

// CalculationResult is the outcome of one calculator run, shared between
// the orchestration and presentation layers.
type CalculationResult struct {
	// Name is the display name of the calculator.
	Name string
	// Result is nil if Err is set.
	Result *chudnovsky.Result
	// Duration is the wall-clock time of the run.
	Duration time.Duration
	// Err is the failure, wrapped in an apperrors.CalculationError.
	Err error
}

// PresentationOptions configures how a result is shown.
type PresentationOptions struct {
	Digits  uint64
	Verbose bool
	Details bool
}

// ProgressReporter displays progress updates while calculators run.
type ProgressReporter interface {
	// DisplayProgress consumes progressChan until it is closed, then calls
	// wg.Done. It runs in its own goroutine.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCalculators int, out io.Writer)
}

// ProgressReporterFunc adapts a function to ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCalculators int, out io.Writer)

// DisplayProgress calls f.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCalculators int, out io.Writer) {
	f(wg, progressChan, numCalculators, out)
}

// NullProgressReporter drains the channel without output. Quiet mode and
// tests use it.
type NullProgressReporter struct{}

// DisplayProgress drains progressChan.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ErrorHandler reports a failed calculation and returns its exit code.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}

// ResultPresenter displays calculation results.
type ResultPresenter interface {
	ErrorHandler

	// PresentComparisonTable shows every run of a comparison.
	PresentComparisonTable(results []CalculationResult, out io.Writer)

	// PresentResult shows a successful result.
	PresentResult(result CalculationResult, opts PresentationOptions, out io.Writer)
}

// DurationFormatter formats durations for display.
type DurationFormatter interface {
	FormatDuration(d time.Duration) string
}
