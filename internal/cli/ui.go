//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/picalc/internal/chudnovsky"
	"github.com/agbru/picalc/internal/format"
	"github.com/agbru/picalc/internal/orchestration"
	"github.com/agbru/picalc/internal/progress"
	"github.com/agbru/picalc/internal/ui"
)

const (
	// TruncationLimit is the digit count from which the value is shown as a
	// preview unless --verbose is given.
	TruncationLimit = 100
	// DisplayEdges is the number of digits shown at each end of a preview.
	DisplayEdges = 25
	// DigitGroupSize is the block size of the full --verbose rendering.
	DigitGroupSize = 10
	// ProgressRefreshRate is the spinner refresh interval.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the width in cells of the progress bar.
	ProgressBarWidth = 40
)

// Spinner abstracts the terminal spinner so that DisplayProgress can be
// tested without a terminal.
type Spinner interface {
	Start()
	Stop()
	// UpdateSuffix sets the text displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to Spinner.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }
func (rs *realSpinner) Stop()  { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress shows a spinner with the average progress and ETA of
// numCalculators calculators until progressChan is closed, then prints a
// final 100% line. It calls wg.Done on return.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCalculators int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(numCalculators)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	label := "Progress"
	if agg.IsMultiCalculator() {
		label = "Avg progress"
	}

	s := newSpinner(spinner.WithWriter(out))
	s.Start()
	spinnerStopped := false
	defer func() {
		if !spinnerStopped {
			s.Stop()
		}
	}()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.Stop()
				spinnerStopped = true
				fmt.Fprintf(out, "%s: %s\n", label, format.FormatProgressBarWithETA(1.0, time.Nanosecond, ProgressBarWidth))
				return
			}
			agg.Update(update)
		case <-ticker.C:
			bar := format.FormatProgressBarWithETA(agg.CalculateAverage(), agg.GetETA(), ProgressBarWidth)
			s.UpdateSuffix(fmt.Sprintf(" %s: %s", label, bar))
		}
	}
}

// FormatPiValue renders digits (leading "3", no decimal point) as
// "3.14159...". Unless verbose, expansions longer than TruncationLimit are
// shortened to their first and last DisplayEdges fractional digits. The
// verbose form groups the fraction in blocks of DigitGroupSize.
func FormatPiValue(digits string, verbose bool) string {
	switch {
	case verbose:
		return format.GroupDigits(digits, DigitGroupSize)
	case len(digits) > TruncationLimit:
		frac := digits[1:]
		return fmt.Sprintf("%s.%s...%s", digits[:1], frac[:DisplayEdges], frac[len(frac)-DisplayEdges:])
	default:
		return format.GroupDigits(digits, 0)
	}
}

// DisplayResult prints a π result: the digit count, the value and, with
// details, a box of run metrics.
func DisplayResult(result *chudnovsky.Result, duration time.Duration, verbose, details bool, out io.Writer) {
	n := uint64(len(result.Digits))
	fmt.Fprintf(out, "Computed %s%s%s significant digits of π.\n", ui.ColorCyan(), format.FormatUint(n), ui.ColorReset())

	if details {
		durationStr := format.FormatExecutionDuration(duration)
		if duration == 0 {
			durationStr = "< 1µs"
		}
		lines := []string{
			fmt.Sprintf("Calculation time : %s", durationStr),
			fmt.Sprintf("Series terms     : %s", format.FormatUint(result.Precision.Terms)),
			fmt.Sprintf("Working bits     : %s", format.FormatUint(result.Precision.Bits)),
			fmt.Sprintf("Pell iterations  : %d", result.PellIterations),
			fmt.Sprintf("Forked tasks     : %d on workers, %d inline", result.Tasks.Spawned, result.Tasks.Inline),
		}
		fmt.Fprintf(out, "\n%s\n", ui.Box("Detailed result analysis", lines...))
		if result.GC.NumGC > 0 || result.GC.TotalAlloc > 0 {
			fmt.Fprintf(out, "GC suspended during the run: %d cycles, %s allocated.\n",
				result.GC.NumGC, format.FormatBytes(result.GC.TotalAlloc))
		}
	}

	fmt.Fprintf(out, "\n%s--- Calculated value ---%s\n", ui.ColorBold(), ui.ColorReset())
	value := FormatPiValue(result.Digits, verbose)
	if verbose {
		fmt.Fprintf(out, "π =\n%s%s%s\n", ui.ColorGreen(), wrapGroups(value), ui.ColorReset())
		return
	}
	if n > TruncationLimit {
		fmt.Fprintf(out, "π (truncated) = %s%s%s\n", ui.ColorGreen(), value, ui.ColorReset())
		fmt.Fprintf(out, "(Tip: use the %s-v%s or %s--verbose%s option to display every digit)\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
		return
	}
	fmt.Fprintf(out, "π = %s%s%s\n", ui.ColorGreen(), value, ui.ColorReset())
}

// wrapGroups breaks a grouped rendering into lines of five groups.
func wrapGroups(s string) string {
	fields := strings.Fields(s)
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			if i%5 == 0 {
				b.WriteString("\n  ")
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteString(f)
	}
	return b.String()
}
