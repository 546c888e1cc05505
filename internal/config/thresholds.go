package config

import "runtime"

// Threshold resolution chain (highest priority first):
//   1. CLI flag --threshold
//   2. PICALC_THRESHOLD, then the YAML file
//   3. Cached calibration profile (~/.picalc_calibration.json), with
//      --auto-calibrate
//   4. Adaptive hardware estimation (this file)

// ApplyAdaptiveThresholds fills a zero Threshold with an estimate for the
// current machine. Explicit values are kept.
func ApplyAdaptiveThresholds(cfg AppConfig) AppConfig {
	if cfg.Threshold == 0 {
		cfg.Threshold = EstimateOptimalParallelThreshold()
	}
	return cfg
}

// EstimateOptimalParallelThreshold returns a range size, in terms, from
// which forking pays off, based on the CPU count. More cores favour a
// finer split so that every worker gets a subtree.
func EstimateOptimalParallelThreshold() int {
	return parallelThresholdFor(runtime.NumCPU())
}

func parallelThresholdFor(numCPU int) int {
	switch {
	case numCPU <= 2:
		return 50_000 // Forking barely helps; keep task overhead low
	case numCPU <= 4:
		return 16_384
	case numCPU <= 8:
		return 8_192
	case numCPU <= 16:
		return 4_096
	default:
		return 2_048
	}
}
