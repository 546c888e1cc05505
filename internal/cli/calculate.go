package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"

	"github.com/agbru/picalc/internal/chudnovsky"
	"github.com/agbru/picalc/internal/config"
	"github.com/agbru/picalc/internal/format"
	"github.com/agbru/picalc/internal/sysmon"
	"github.com/agbru/picalc/internal/ui"
)

// workingSetFactor approximates the peak heap of a run as a multiple of the
// size of one full-precision operand.
const workingSetFactor = 16

// EstimateMemory returns the approximate peak heap, in bytes, of a
// calculation of digits significant digits.
func EstimateMemory(digits uint64) uint64 {
	return chudnovsky.NewPrecision(digits).Bits / 8 * workingSetFactor
}

// CPUFeatures lists the instruction set extensions math/big can use on
// this machine, or "none".
func CPUFeatures() string {
	var features []string
	switch runtime.GOARCH {
	case "amd64":
		for _, f := range []struct {
			name string
			ok   bool
		}{{"ADX", cpu.X86.HasADX}, {"BMI2", cpu.X86.HasBMI2}, {"AVX2", cpu.X86.HasAVX2}} {
			if f.ok {
				features = append(features, f.name)
			}
		}
	case "arm64":
		if cpu.ARM64.HasASIMD {
			features = append(features, "ASIMD")
		}
	}
	if len(features) == 0 {
		return "none"
	}
	return strings.Join(features, ", ")
}

// PrintExecutionConfig displays the digit target, derived precision,
// timeout, environment and parallelism settings. It warns when the
// estimated working set exceeds the memory available.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	prec := chudnovsky.NewPrecision(cfg.Digits)
	timeout := "none"
	if cfg.Timeout > 0 {
		timeout = cfg.Timeout.String()
	}
	workers := fmt.Sprintf("%d", cfg.Workers)
	if cfg.Workers == 0 {
		workers = fmt.Sprintf("%d (one per CPU)", runtime.NumCPU())
	}

	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Calculating %s%s%s digits of π (%s terms, %s bits) with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), format.FormatUint(cfg.Digits), ui.ColorReset(),
		format.FormatUint(prec.Terms), format.FormatUint(prec.Bits),
		ui.ColorYellow(), timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s, CPU features: %s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset(), CPUFeatures())
	fmt.Fprintf(out, "Parallelism: workers=%s%s%s, threshold=%s%d%s terms, gc=%s.\n",
		ui.ColorCyan(), workers, ui.ColorReset(), ui.ColorCyan(), cfg.Threshold, ui.ColorReset(), cfg.GCMode)

	required := EstimateMemory(cfg.Digits)
	stats := sysmon.Sample()
	if stats.TotalMem > 0 {
		fmt.Fprintf(out, "Memory: ~%s estimated, %s available of %s.\n",
			format.FormatBytes(required), format.FormatBytes(stats.AvailableMem), format.FormatBytes(stats.TotalMem))
	}
	if !stats.Fits(required) {
		fmt.Fprintf(out, "%sWarning: the calculation may need more memory than is available.%s\n",
			ui.ColorYellow(), ui.ColorReset())
	}
}

// PrintExecutionMode displays the execution mode (single calculator vs comparison).
func PrintExecutionMode(calculators []chudnovsky.Calculator, out io.Writer) {
	var modeDesc string
	if len(calculators) > 1 {
		modeDesc = "Parallel comparison of all calculators"
	} else {
		modeDesc = fmt.Sprintf("Single calculation with the %s%s%s calculator",
			ui.ColorGreen(), calculators[0].Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
