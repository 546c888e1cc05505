package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// FileConfig is the YAML configuration file. Absent keys leave the
// corresponding setting untouched.
//
//	digits: 10000
//	algo: parallel
//	threshold: 8192
//	workers: 4
//	timeout: 5m
//	gc: aggressive
//	logLevel: info
type FileConfig struct {
	Digits             *uint64        `yaml:"digits"`
	Algo               *string        `yaml:"algo"`
	Threshold          *int           `yaml:"threshold"`
	Workers            *int           `yaml:"workers"`
	Timeout            *time.Duration `yaml:"timeout"`
	GCMode             *string        `yaml:"gc"`
	Verbose            *bool          `yaml:"verbose"`
	Details            *bool          `yaml:"details"`
	Quiet              *bool          `yaml:"quiet"`
	OutputFile         *string        `yaml:"output"`
	NoColor            *bool          `yaml:"noColor"`
	AutoCalibrate      *bool          `yaml:"autoCalibrate"`
	CalibrationProfile *string        `yaml:"calibrationProfile"`
	LogLevel           *string        `yaml:"logLevel"`
	TUI                *bool          `yaml:"tui"`
}

// LoadFile reads and decodes a YAML configuration file. Unknown keys are
// rejected.
func LoadFile(path string) (*FileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	defer f.Close()

	var fc FileConfig
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil {
		if errors.Is(err, io.EOF) {
			return &fc, nil
		}
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return &fc, nil
}

// applyFileConfig copies the values present in fc into config for flags
// that were not set on the command line.
func applyFileConfig(config *AppConfig, fc *FileConfig, fs *flag.FlagSet) {
	setIfUnset(fs, fc.Digits, &config.Digits, "d", "digits")
	setIfUnset(fs, fc.Algo, &config.Algo, "algo")
	setIfUnset(fs, fc.Threshold, &config.Threshold, "threshold")
	setIfUnset(fs, fc.Workers, &config.Workers, "workers")
	setIfUnset(fs, fc.Timeout, &config.Timeout, "timeout")
	setIfUnset(fs, fc.GCMode, &config.GCMode, "gc")
	setIfUnset(fs, fc.Verbose, &config.Verbose, "v", "verbose")
	setIfUnset(fs, fc.Details, &config.Details, "details")
	setIfUnset(fs, fc.Quiet, &config.Quiet, "q", "quiet")
	setIfUnset(fs, fc.OutputFile, &config.OutputFile, "o", "output")
	setIfUnset(fs, fc.NoColor, &config.NoColor, "no-color")
	setIfUnset(fs, fc.AutoCalibrate, &config.AutoCalibrate, "auto-calibrate")
	setIfUnset(fs, fc.CalibrationProfile, &config.CalibrationProfile, "calibration-profile")
	setIfUnset(fs, fc.LogLevel, &config.LogLevel, "log-level")
	setIfUnset(fs, fc.TUI, &config.TUI, "tui")
}

func setIfUnset[T any](fs *flag.FlagSet, src *T, dst *T, flags ...string) {
	if src != nil && !isFlagSetAny(fs, flags...) {
		*dst = *src
	}
}
