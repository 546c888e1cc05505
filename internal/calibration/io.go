package calibration

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/agbru/picalc/internal/format"
	"github.com/agbru/picalc/internal/ui"
)

// thresholdLabel renders a threshold for tables and summaries.
func thresholdLabel(threshold int) string {
	if threshold == SequentialThreshold {
		return "Sequential"
	}
	return fmt.Sprintf("%d terms", threshold)
}

// thresholdFlagValue renders a threshold as a --threshold argument.
func thresholdFlagValue(threshold int) string {
	return strconv.Itoa(threshold)
}

// printCalibrationResults formats and prints the calibration results table.
func printCalibrationResults(out io.Writer, results []calibrationResult, bestThreshold int) {
	fmt.Fprintf(out, "\n--- Calibration Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  %sThreshold%s    │ %sExecution Time%s\n", ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())
	fmt.Fprintf(tw, "  %s┼%s\n", strings.Repeat("─", 14), strings.Repeat("─", 25))
	for _, res := range results {
		durationStr := fmt.Sprintf("%sN/A%s", ui.ColorRed(), ui.ColorReset())
		if res.Err == nil {
			durationStr = format.FormatExecutionDuration(res.Duration)
		}
		highlight := ""
		if res.Threshold == bestThreshold && res.Err == nil {
			highlight = fmt.Sprintf(" %s(Optimal)%s", ui.ColorGreen(), ui.ColorReset())
		}
		fmt.Fprintf(tw, "  %s%-12s%s │ %s%s%s%s\n", ui.ColorCyan(), thresholdLabel(res.Threshold), ui.ColorReset(), ui.ColorYellow(), durationStr, ui.ColorReset(), highlight)
	}
	tw.Flush()
}

// printCalibrationOutput prints the threshold selected at startup.
func printCalibrationOutput(out io.Writer, source string, threshold int) {
	fmt.Fprintf(out, "%s%s%s: parallelism=%s%s%s\n",
		ui.ColorGreen(), source, ui.ColorReset(),
		ui.ColorYellow(), thresholdLabel(threshold), ui.ColorReset())
}
