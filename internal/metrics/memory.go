// Package metrics samples Go runtime memory statistics around a π
// calculation for the --details report.
package metrics

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by application
	TotalAlloc   uint64 // cumulative bytes allocated
	Sys          uint64 // total bytes obtained from OS
	NumGC        uint32 // number of completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
}

// MemoryUsage is the memory activity of one calculation.
type MemoryUsage struct {
	PeakHeap     uint64
	TotalAlloc   uint64
	NumGC        uint32
	PauseTotalNs uint64
}

// MemoryCollector reads runtime memory statistics and tracks the peak
// heap between Start and Stop.
type MemoryCollector struct {
	interval time.Duration
	peak     atomic.Uint64
	start    MemorySnapshot
	stop     chan struct{}
	wg       sync.WaitGroup
}

// DefaultSampleInterval is how often the collector samples the heap.
const DefaultSampleInterval = 50 * time.Millisecond

// NewMemoryCollector returns a collector sampling every interval. A
// non-positive interval selects DefaultSampleInterval.
func NewMemoryCollector(interval time.Duration) *MemoryCollector {
	if interval <= 0 {
		interval = DefaultSampleInterval
	}
	return &MemoryCollector{interval: interval}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		TotalAlloc:   m.TotalAlloc,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
	}
}

// Start records the baseline and begins sampling the heap in a goroutine.
// It must be paired with Stop.
func (mc *MemoryCollector) Start() {
	mc.start = mc.Snapshot()
	mc.peak.Store(mc.start.HeapAlloc)
	mc.stop = make(chan struct{})
	mc.wg.Add(1)
	go func() {
		defer mc.wg.Done()
		ticker := time.NewTicker(mc.interval)
		defer ticker.Stop()
		for {
			select {
			case <-mc.stop:
				return
			case <-ticker.C:
				mc.observe(mc.Snapshot().HeapAlloc)
			}
		}
	}()
}

// Stop ends sampling and returns the usage since Start.
func (mc *MemoryCollector) Stop() MemoryUsage {
	close(mc.stop)
	mc.wg.Wait()
	end := mc.Snapshot()
	mc.observe(end.HeapAlloc)
	return MemoryUsage{
		PeakHeap:     mc.peak.Load(),
		TotalAlloc:   end.TotalAlloc - mc.start.TotalAlloc,
		NumGC:        end.NumGC - mc.start.NumGC,
		PauseTotalNs: end.PauseTotalNs - mc.start.PauseTotalNs,
	}
}

func (mc *MemoryCollector) observe(heap uint64) {
	for {
		cur := mc.peak.Load()
		if heap <= cur || mc.peak.CompareAndSwap(cur, heap) {
			return
		}
	}
}
