// Package memory tunes the Go runtime around long π computations.
package memory

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"

	"github.com/rs/zerolog"
)

// GCMode selects how the garbage collector behaves during a calculation.
type GCMode string

const (
	GCModeAuto       GCMode = "auto"
	GCModeAggressive GCMode = "aggressive"
	GCModeDisabled   GCMode = "disabled"
)

// GCAutoDigits is the digit count from which GCModeAuto suspends the
// collector.
const GCAutoDigits uint64 = 1_000_000

// memoryLimitFactor bounds the heap while the collector is suspended, as a
// multiple of the memory obtained from the OS when the run starts.
const memoryLimitFactor = 3

// ParseGCMode validates a mode name. The empty string maps to auto.
func ParseGCMode(s string) (GCMode, error) {
	switch m := GCMode(s); m {
	case "":
		return GCModeAuto, nil
	case GCModeAuto, GCModeAggressive, GCModeDisabled:
		return m, nil
	default:
		return "", fmt.Errorf("unknown gc mode %q (want auto, aggressive or disabled)", s)
	}
}

// GCStats is the collector activity between Begin and End.
type GCStats struct {
	HeapAlloc    uint64
	TotalAlloc   uint64
	NumGC        uint32
	PauseTotalNs uint64
}

// suspension tracks the controllers currently holding the collector off.
// Calculators of a comparison run overlap, so only the first Begin and the
// last End change the runtime settings.
var suspension struct {
	mu        sync.Mutex
	holders   int
	prevPct   int
	prevLimit int64
}

func suspend(limit int64) {
	suspension.mu.Lock()
	defer suspension.mu.Unlock()
	suspension.holders++
	if suspension.holders > 1 {
		return
	}
	suspension.prevPct = debug.SetGCPercent(-1)
	suspension.prevLimit = debug.SetMemoryLimit(-1)
	if limit > 0 {
		debug.SetMemoryLimit(limit)
	}
}

func resume() {
	suspension.mu.Lock()
	defer suspension.mu.Unlock()
	if suspension.holders == 0 {
		return
	}
	suspension.holders--
	if suspension.holders > 0 {
		return
	}
	debug.SetGCPercent(suspension.prevPct)
	debug.SetMemoryLimit(suspension.prevLimit)
}

// GCController suspends the collector for the duration of a calculation,
// with a soft memory limit as an OOM safety net.
type GCController struct {
	mode       GCMode
	active     bool
	begun      bool
	logger     zerolog.Logger
	startStats runtime.MemStats
	endStats   runtime.MemStats
}

// NewGCController returns a controller for a run of the given digit count.
// Unknown modes behave like GCModeDisabled.
func NewGCController(mode GCMode, digits uint64) *GCController {
	gc := &GCController{mode: mode, logger: zerolog.Nop()}
	switch mode {
	case GCModeAggressive:
		gc.active = true
	case GCModeAuto:
		gc.active = digits >= GCAutoDigits
	}
	return gc
}

// SetLogger sets the logger used for GC events.
func (gc *GCController) SetLogger(l zerolog.Logger) {
	gc.logger = l
}

// Active reports whether Begin suspends the collector.
func (gc *GCController) Active() bool {
	return gc.active
}

// Begin suspends the collector if the controller is active.
func (gc *GCController) Begin() {
	if !gc.active || gc.begun {
		return
	}
	gc.begun = true
	runtime.ReadMemStats(&gc.startStats)
	suspend(int64(gc.startStats.Sys) * memoryLimitFactor)
	gc.logger.Debug().
		Str("mode", string(gc.mode)).
		Uint64("heap_alloc_bytes", gc.startStats.HeapAlloc).
		Msg("gc suspended")
}

// End releases the suspension and runs a collection. The settings in
// place before the first overlapping Begin come back with the last End.
func (gc *GCController) End() {
	if !gc.active || !gc.begun {
		return
	}
	gc.begun = false
	runtime.ReadMemStats(&gc.endStats)
	resume()
	runtime.GC()

	stats := gc.Stats()
	gc.logger.Debug().
		Str("mode", string(gc.mode)).
		Uint64("heap_alloc_bytes", stats.HeapAlloc).
		Uint64("total_alloc_bytes", stats.TotalAlloc).
		Uint32("gc_cycles", stats.NumGC).
		Msg("gc restored")
}

// Stats returns the delta between Begin and End. It is zero when the
// controller is inactive.
func (gc *GCController) Stats() GCStats {
	if !gc.active {
		return GCStats{}
	}
	return GCStats{
		HeapAlloc:    gc.endStats.HeapAlloc,
		TotalAlloc:   gc.endStats.TotalAlloc - gc.startStats.TotalAlloc,
		NumGC:        gc.endStats.NumGC - gc.startStats.NumGC,
		PauseTotalNs: gc.endStats.PauseTotalNs - gc.startStats.PauseTotalNs,
	}
}
