package calibration

import (
	"math"
	"runtime"
)

// SequentialThreshold is a threshold no range reaches, so the whole tree is
// merged on the calling goroutine.
const SequentialThreshold = math.MaxInt

// GenerateParallelThresholds returns the thresholds a full calibration
// tries on this machine. The list always starts with SequentialThreshold.
func GenerateParallelThresholds() []int {
	return parallelThresholdsFor(runtime.NumCPU())
}

func parallelThresholdsFor(numCPU int) []int {
	thresholds := []int{SequentialThreshold}
	switch {
	case numCPU == 1:
		return thresholds
	case numCPU <= 4:
		return append(thresholds, 1024, 2048, 4096, 8192)
	case numCPU <= 8:
		return append(thresholds, 512, 1024, 2048, 4096, 8192)
	case numCPU <= 16:
		return append(thresholds, 256, 512, 1024, 2048, 4096, 8192)
	default:
		return append(thresholds, 128, 256, 512, 1024, 2048, 4096, 8192)
	}
}

// GenerateQuickParallelThresholds returns a reduced candidate list for
// --auto-calibrate when no profile exists.
func GenerateQuickParallelThresholds() []int {
	return quickParallelThresholdsFor(runtime.NumCPU())
}

func quickParallelThresholdsFor(numCPU int) []int {
	switch {
	case numCPU == 1:
		return []int{SequentialThreshold}
	case numCPU <= 4:
		return []int{SequentialThreshold, 2048, 4096}
	case numCPU <= 8:
		return []int{SequentialThreshold, 1024, 2048, 4096}
	default:
		return []int{SequentialThreshold, 512, 1024, 2048}
	}
}
