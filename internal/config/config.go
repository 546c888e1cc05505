// Package config provides the configuration management for the picalc
// application. It defines the configuration structure, parses command-line
// arguments, merges environment variables and an optional YAML file, and
// validates the result.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/picalc/internal/chudnovsky"
	"github.com/agbru/picalc/internal/chudnovsky/memory"
	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/logging"
)

// EnvPrefix is the prefix for all environment variables read by picalc.
const EnvPrefix = "PICALC_"

// Default configuration values.
const (
	// DefaultAlgo is the default calculator.
	DefaultAlgo = "parallel"
	// DefaultGCMode is the default garbage collector policy.
	DefaultGCMode = string(memory.GCModeAuto)
	// DefaultLogLevel is the default zerolog level.
	DefaultLogLevel = "warn"
	// AlgoAll runs every registered calculator and compares their digits.
	AlgoAll = "all"
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Digits is the number of significant digits of π to compute.
	Digits uint64
	// Algo is the calculator name, or "all" for a comparison run.
	Algo string
	// Threshold is the range size, in terms, from which binary splitting
	// forks. Zero selects an adaptive value.
	Threshold int
	// Workers is the size of the fork-join pool. Zero means one per CPU.
	Workers int
	// Timeout bounds the calculation. Zero disables the limit.
	Timeout time.Duration
	// GCMode is the garbage collector policy: auto, aggressive or disabled.
	GCMode string
	// Verbose prints the full digit string instead of a preview.
	Verbose bool
	// Details adds terms, Pell iterations, duration and memory statistics.
	Details bool
	// Quiet prints only the digit string.
	Quiet bool
	// OutputFile, if set, receives the result.
	OutputFile string
	// NoColor disables colored output. NO_COLOR is honored as well.
	NoColor bool
	// Calibrate runs the threshold calibration instead of a calculation.
	Calibrate bool
	// AutoCalibrate loads a saved calibration profile at startup.
	AutoCalibrate bool
	// CalibrationProfile is the profile path. Empty selects
	// ~/.picalc_calibration.json.
	CalibrationProfile string
	// ConfigFile is an optional YAML configuration file.
	ConfigFile string
	// LogLevel is the zerolog level for diagnostics on stderr.
	LogLevel string
	// ShowVersion prints the version and exits.
	ShowVersion bool
	// TUI runs the calculation inside the interactive dashboard.
	TUI bool
}

// ToCalculationOptions converts the configuration into chudnovsky.Options.
func (c AppConfig) ToCalculationOptions() chudnovsky.Options {
	return chudnovsky.Options{
		ParallelThreshold: c.Threshold,
		Workers:           c.Workers,
		GCMode:            c.GCMode,
	}
}

// Validate checks the semantic consistency of the configuration. The
// digit count is only required when a calculation will run.
func (c AppConfig) Validate(availableAlgos []string) error {
	if c.Digits == 0 && !c.Calibrate && !c.ShowVersion {
		return apperrors.ValidationError{Field: "digits", Message: "a positive digit count is required"}
	}
	if c.Threshold < 0 {
		return apperrors.NewConfigError("parallelism threshold cannot be negative: %d", c.Threshold)
	}
	if c.Workers < 0 {
		return apperrors.NewConfigError("worker count cannot be negative: %d", c.Workers)
	}
	if c.TUI && c.Quiet {
		return apperrors.NewConfigError("--tui and --quiet are mutually exclusive")
	}
	if c.Timeout < 0 {
		return apperrors.NewConfigError("timeout cannot be negative: %s", c.Timeout)
	}
	if _, err := memory.ParseGCMode(c.GCMode); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	isAlgoAvailable := false
	for _, a := range availableAlgos {
		if a == c.Algo {
			isAlgoAvailable = true
			break
		}
	}
	if c.Algo != AlgoAll && !isAlgoAvailable {
		return apperrors.NewConfigError("unrecognized algorithm: '%s'. Valid algorithms are: 'all' or [%s]", c.Algo, strings.Join(availableAlgos, ", "))
	}
	return nil
}

// ParseConfig parses args into an AppConfig. The digit count may be given
// as a positional argument, before or after the flags, or with -d/--digits.
// Values are resolved as CLI flags, then PICALC_ environment variables,
// then the YAML file named by --config, then defaults.
//
// Errors are printed to errorWriter together with the usage text. The
// returned error matches flag.ErrHelp when help was requested.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	algoHelp := fmt.Sprintf("Calculator to use: one of [%s], or 'all' to compare them.", strings.Join(availableAlgos, ", "))

	config := AppConfig{}
	fs.Uint64Var(&config.Digits, "digits", 0, "Number of significant digits of π to compute.")
	fs.Uint64Var(&config.Digits, "d", 0, "Number of digits (shorthand).")
	fs.StringVar(&config.Algo, "algo", DefaultAlgo, algoHelp)
	fs.IntVar(&config.Threshold, "threshold", 0, "Range size (in terms) from which binary splitting forks (0 = adaptive).")
	fs.IntVar(&config.Workers, "workers", 0, "Number of pool workers (0 = one per CPU).")
	fs.DurationVar(&config.Timeout, "timeout", 0, "Maximum execution time (0 = no limit).")
	fs.StringVar(&config.GCMode, "gc", DefaultGCMode, "Garbage collector policy: auto, aggressive or disabled.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Display every computed digit.")
	fs.BoolVar(&config.Verbose, "v", false, "Display every computed digit (shorthand).")
	fs.BoolVar(&config.Details, "details", false, "Display terms, Pell iterations, timings and memory statistics.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - print only the digits.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.StringVar(&config.OutputFile, "output", "", "Output file path for the result.")
	fs.StringVar(&config.OutputFile, "o", "", "Output file path (shorthand).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.BoolVar(&config.Calibrate, "calibrate", false, "Measure candidate thresholds and save the best one.")
	fs.BoolVar(&config.AutoCalibrate, "auto-calibrate", false, "Use the saved calibration profile when it matches this machine.")
	fs.StringVar(&config.CalibrationProfile, "calibration-profile", "", "Path to calibration profile file (default: ~/.picalc_calibration.json).")
	fs.StringVar(&config.ConfigFile, "config", "", "Path to a YAML configuration file.")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Diagnostic log level: debug, info, warn or error.")
	fs.BoolVar(&config.ShowVersion, "version", false, "Print the version and exit.")
	fs.BoolVar(&config.TUI, "tui", false, "Run inside the interactive dashboard.")

	setCustomUsage(fs)

	positional, err := parseInterspersed(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return AppConfig{}, err
		}
		return AppConfig{}, apperrors.NewConfigError("%v", err)
	}
	if err := applyPositional(&config, fs, positional); err != nil {
		return fail(fs, errorWriter, err)
	}

	if config.ConfigFile == "" {
		config.ConfigFile = getEnvString("CONFIG", "")
	}
	if config.ConfigFile != "" {
		fc, err := LoadFile(config.ConfigFile)
		if err != nil {
			return fail(fs, errorWriter, apperrors.NewConfigError("%v", err))
		}
		applyFileConfig(&config, fc, fs)
	}

	// Environment variables win over the file for flags not set explicitly.
	applyEnvOverrides(&config, fs)

	config.Algo = strings.ToLower(config.Algo)
	config.GCMode = strings.ToLower(config.GCMode)
	if err := config.Validate(availableAlgos); err != nil {
		return fail(fs, errorWriter, err)
	}
	return config, nil
}

// fail prints err and the usage text, and returns err wrapped so that
// apperrors.ExitCode still classifies it.
func fail(fs *flag.FlagSet, errorWriter io.Writer, err error) (AppConfig, error) {
	fmt.Fprintln(errorWriter, "Configuration error:", err)
	fs.Usage()
	return AppConfig{}, fmt.Errorf("invalid configuration: %w", err)
}

// parseInterspersed parses flags that may appear after positional
// arguments. The flag package stops at the first non-flag, so parsing
// resumes after each positional until args are exhausted.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		if fs.NArg() == 0 {
			return positional, nil
		}
		rest := fs.Args()
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

// applyPositional stores the positional digit count. It conflicts with an
// explicit -d/--digits flag.
func applyPositional(config *AppConfig, fs *flag.FlagSet, positional []string) error {
	switch len(positional) {
	case 0:
		return nil
	case 1:
	default:
		return apperrors.NewConfigError("unexpected arguments: %s", strings.Join(positional[1:], " "))
	}
	if isFlagSetAny(fs, "d", "digits") {
		return apperrors.NewConfigError("digit count given both as flag and argument")
	}
	digits, err := strconv.ParseUint(positional[0], 10, 64)
	if err != nil {
		return apperrors.ValidationError{Field: "digits", Message: fmt.Sprintf("%q is not a positive integer", positional[0])}
	}
	config.Digits = digits
	// Record the positional value as an explicit setting so that
	// PICALC_DIGITS does not override it.
	return fs.Set("digits", positional[0])
}
