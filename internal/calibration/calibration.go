package calibration

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/agbru/picalc/internal/chudnovsky"
	"github.com/agbru/picalc/internal/cli"
	"github.com/agbru/picalc/internal/config"
	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/logging"
	"github.com/agbru/picalc/internal/progress"
	"github.com/agbru/picalc/internal/ui"
)

// calibrationAlgo is the calculator whose threshold is calibrated.
const calibrationAlgo = "parallel"

// CalibrationOptions configures the calibration process.
type CalibrationOptions struct {
	// ProfilePath is where the profile is saved and loaded. Empty selects
	// the default path.
	ProfilePath string
	// SaveProfile writes the result to ProfilePath.
	SaveProfile bool
	// LoadProfile reuses a valid existing profile instead of measuring.
	LoadProfile bool
	// Timeout bounds the whole calibration. Zero gives each trial a minute.
	Timeout time.Duration
}

// calibrationResult holds the timing of one threshold.
type calibrationResult struct {
	Threshold int
	Duration  time.Duration
	Err       error
}

// RunCalibration measures every candidate threshold from
// GenerateParallelThresholds at CalibrationDigits digits, prints a summary
// table and saves the fastest threshold to the profile. It returns an exit
// code.
func RunCalibration(ctx context.Context, out io.Writer, factory chudnovsky.CalculatorFactory, profilePath string) int {
	return RunCalibrationWithOptions(ctx, out, factory, CalibrationOptions{
		ProfilePath: profilePath,
		SaveProfile: true,
	})
}

// RunCalibrationWithOptions executes calibration with the specified options.
func RunCalibrationWithOptions(ctx context.Context, out io.Writer, factory chudnovsky.CalculatorFactory, opts CalibrationOptions) int {
	fmt.Fprintf(out, "--- Calibration Mode: Finding the Optimal Parallelism Threshold ---\n")

	if opts.LoadProfile {
		if profile, loaded := LoadOrCreateProfile(opts.ProfilePath); loaded {
			fmt.Fprintf(out, "%sLoaded existing calibration profile from %s%s\n",
				ui.ColorGreen(), resolveProfilePath(opts.ProfilePath), ui.ColorReset())
			fmt.Fprintf(out, "Profile: %s\n", profile.String())
			return apperrors.ExitSuccess
		}
	}

	calculator, err := factory.Get(calibrationAlgo)
	if err != nil {
		fmt.Fprintf(out, "%sCritical error: the '%s' calculator is required for calibration: %v%s\n",
			ui.ColorRed(), calibrationAlgo, err, ui.ColorReset())
		return apperrors.ExitErrorGeneric
	}

	thresholds := GenerateParallelThresholds()
	fmt.Fprintf(out, "%sTesting %d thresholds at %d digits on %d CPU cores%s\n",
		ui.ColorCyan(), len(thresholds), chudnovsky.CalibrationDigits, runtime.NumCPU(), ui.ColorReset())

	logger := logging.NewDefaultLogger().Component("calibration")
	runner := newCalibrationRunner(ctx, opts.Timeout, logger)
	start := time.Now()

	var wg sync.WaitGroup
	progressChan := make(chan progress.ProgressUpdate, len(thresholds)*5)
	wg.Add(1)
	go cli.DisplayProgress(&wg, progressChan, 1, out)
	results := runner.measure(calculator, progressChan, thresholds)
	close(progressChan)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		fmt.Fprintf(out, "\n%sCalibration interrupted.%s\n", ui.ColorYellow(), ui.ColorReset())
		return apperrors.HandleCalculationError(err, time.Since(start), out, cli.CLIColorProvider{})
	}

	best, ok := bestResult(results)
	if !ok {
		fmt.Fprintf(out, "\n%sCalibration failed: no valid results obtained.%s\n", ui.ColorRed(), ui.ColorReset())
		return apperrors.ExitErrorGeneric
	}

	logger.Info("calibration complete",
		logging.String("threshold", thresholdLabel(best.Threshold)),
		logging.Float64("best_seconds", best.Duration.Seconds()),
		logging.Int("candidates", len(results)))
	printCalibrationResults(out, results, best.Threshold)
	fmt.Fprintf(out, "\n%s✅ Recommendation for this machine: %s--threshold %s%s\n",
		ui.ColorGreen(), ui.ColorYellow(), thresholdFlagValue(best.Threshold), ui.ColorReset())

	if opts.SaveProfile {
		saveCalibrationProfile(logger, best.Threshold, time.Since(start), opts.ProfilePath, out)
	}
	return apperrors.ExitSuccess
}

// AutoCalibrate returns cfg with Threshold taken from a valid profile or,
// failing that, from a quick measurement that is then saved. ok is false
// when neither produced a threshold. An explicit threshold is never
// replaced.
func AutoCalibrate(ctx context.Context, cfg config.AppConfig, out io.Writer, factory chudnovsky.CalculatorFactory) (updated config.AppConfig, ok bool) {
	if cfg.Threshold != 0 {
		return cfg, false
	}
	if updated, ok := LoadCachedCalibration(cfg, cfg.CalibrationProfile); ok {
		printCalibrationOutput(out, "Using cached calibration", updated.Threshold)
		return updated, true
	}

	calculator, err := factory.Get(calibrationAlgo)
	if err != nil {
		return cfg, false
	}

	logger := logging.NewDefaultLogger().Component("calibration")
	runner := newCalibrationRunner(ctx, cfg.Timeout, logger)
	start := time.Now()
	best, found := bestResult(runner.measure(calculator, nil, GenerateQuickParallelThresholds()))
	if !found {
		return cfg, false
	}

	updated = cfg
	updated.Threshold = best.Threshold
	saveCalibrationProfile(logger, best.Threshold, time.Since(start), cfg.CalibrationProfile, out)
	printCalibrationOutput(out, "Auto-calibration", updated.Threshold)
	return updated, true
}

// LoadCachedCalibration applies the threshold of a valid profile at
// profilePath to cfg.
func LoadCachedCalibration(cfg config.AppConfig, profilePath string) (updated config.AppConfig, ok bool) {
	profile, loaded := LoadOrCreateProfile(profilePath)
	if !loaded {
		return cfg, false
	}
	updated = cfg
	updated.Threshold = profile.OptimalParallelThreshold
	return updated, true
}

func saveCalibrationProfile(logger logging.Logger, threshold int, elapsed time.Duration, profilePath string, out io.Writer) {
	profile := NewProfile()
	profile.OptimalParallelThreshold = threshold
	profile.CalibrationDigits = chudnovsky.CalibrationDigits
	profile.CalibrationTime = elapsed.Round(time.Millisecond).String()

	path := resolveProfilePath(profilePath)
	if err := profile.SaveProfile(profilePath); err != nil {
		logger.Info("calibration profile not saved", logging.String("path", path), logging.Err(err))
		fmt.Fprintf(out, "%sWarning: could not save calibration profile: %v%s\n",
			ui.ColorYellow(), err, ui.ColorReset())
		return
	}
	logger.Info("calibration profile saved", logging.String("path", path), logging.Int("threshold", threshold))
	fmt.Fprintf(out, "%sCalibration profile saved to %s%s\n",
		ui.ColorGreen(), path, ui.ColorReset())
}
