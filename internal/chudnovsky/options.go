package chudnovsky

import "runtime"

// Options configures a π calculation.
type Options struct {
	// ParallelThreshold is the range size, in terms, from which the binary
	// splitting recursion forks. If 0, DefaultParallelThreshold is used.
	ParallelThreshold int
	// Workers is the size of the fork-join pool. If 0, runtime.NumCPU() is
	// used.
	Workers int
	// GCMode is the garbage collector policy for the run (auto, aggressive
	// or disabled). The empty string leaves the collector alone.
	GCMode string
}

// normalizeOptions returns a copy of opts with defaults for zero values.
func normalizeOptions(opts Options) Options {
	normalized := opts
	if normalized.ParallelThreshold <= 0 {
		normalized.ParallelThreshold = DefaultParallelThreshold
	}
	if normalized.Workers <= 0 {
		normalized.Workers = runtime.NumCPU()
	}
	return normalized
}
