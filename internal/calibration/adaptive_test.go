package calibration

import (
	"slices"
	"testing"
)

func TestParallelThresholdsFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		numCPU  int
		wantLen int
	}{
		{1, 1},
		{2, 5},
		{4, 5},
		{8, 6},
		{16, 7},
		{64, 8},
	}
	for _, tt := range tests {
		got := parallelThresholdsFor(tt.numCPU)
		if len(got) != tt.wantLen {
			t.Errorf("parallelThresholdsFor(%d) = %v, want %d entries", tt.numCPU, got, tt.wantLen)
		}
		if got[0] != SequentialThreshold {
			t.Errorf("parallelThresholdsFor(%d) should start with SequentialThreshold", tt.numCPU)
		}
		if !slices.IsSorted(got[1:]) {
			t.Errorf("parallelThresholdsFor(%d) candidates not ascending: %v", tt.numCPU, got)
		}
		for _, th := range got {
			if th <= 0 {
				t.Errorf("parallelThresholdsFor(%d) has non-positive threshold %d", tt.numCPU, th)
			}
		}
	}
}

func TestQuickParallelThresholdsFor(t *testing.T) {
	t.Parallel()
	for _, numCPU := range []int{1, 2, 4, 8, 32} {
		quick := quickParallelThresholdsFor(numCPU)
		full := parallelThresholdsFor(numCPU)
		if len(quick) > len(full) {
			t.Errorf("quick list for %d CPUs longer than full list: %v vs %v", numCPU, quick, full)
		}
		if quick[0] != SequentialThreshold {
			t.Errorf("quick list for %d CPUs should start with SequentialThreshold", numCPU)
		}
		for _, th := range quick {
			if !slices.Contains(full, th) {
				t.Errorf("quick threshold %d for %d CPUs missing from the full list %v", th, numCPU, full)
			}
		}
	}
}

func TestGenerateThresholdsForThisMachine(t *testing.T) {
	t.Parallel()
	if len(GenerateParallelThresholds()) == 0 {
		t.Error("GenerateParallelThresholds returned no candidates")
	}
	if len(GenerateQuickParallelThresholds()) == 0 {
		t.Error("GenerateQuickParallelThresholds returned no candidates")
	}
}
