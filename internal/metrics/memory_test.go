package metrics

import (
	"testing"
	"time"
)

var sink [][]byte

func TestMemoryCollector_Snapshot(t *testing.T) {
	t.Parallel()

	snap := NewMemoryCollector(0).Snapshot()
	if snap.HeapAlloc == 0 {
		t.Error("HeapAlloc should be > 0")
	}
	if snap.Sys == 0 {
		t.Error("Sys should be > 0")
	}
}

func TestMemoryCollector_Usage(t *testing.T) {
	mc := NewMemoryCollector(time.Millisecond)
	mc.Start()

	for i := 0; i < 8; i++ {
		sink = append(sink, make([]byte, 1<<20))
	}
	time.Sleep(5 * time.Millisecond)

	usage := mc.Stop()
	sink = nil

	if usage.TotalAlloc < 8<<20 {
		t.Errorf("TotalAlloc = %d, want at least 8 MiB", usage.TotalAlloc)
	}
	if usage.PeakHeap < 8<<20 {
		t.Errorf("PeakHeap = %d, want at least 8 MiB", usage.PeakHeap)
	}
}

func TestMemoryCollector_Observe(t *testing.T) {
	t.Parallel()
	mc := NewMemoryCollector(0)
	mc.observe(10)
	mc.observe(5)
	mc.observe(20)
	if got := mc.peak.Load(); got != 20 {
		t.Errorf("peak = %d, want 20", got)
	}
	if mc.interval != DefaultSampleInterval {
		t.Errorf("interval = %v, want %v", mc.interval, DefaultSampleInterval)
	}
}
