// Package progress carries calculation progress from the π engine to its
// consumers (terminal display, logs).
package progress

import (
	"sync/atomic"
)

// ReportThreshold is the minimum progress delta between two reports.
const ReportThreshold = 0.01

// ProgressUpdate is a data transfer object sent over a channel from a
// calculator to the user interface.
type ProgressUpdate struct {
	// CalculatorIndex identifies the calculator when several run concurrently.
	CalculatorIndex int
	// Value is the normalized progress, from 0.0 to 1.0.
	Value float64
}

// ProgressCallback is the functional form used by the core engine.
type ProgressCallback func(progress float64)

// Tracker converts completed work units into throttled progress reports.
// Done may be called from many goroutines at once.
type Tracker struct {
	total    uint64
	done     atomic.Uint64
	step     uint64
	next     atomic.Uint64
	callback ProgressCallback
}

// NewTracker returns a tracker for total units of work. A nil callback
// makes Done a counter only.
func NewTracker(total uint64, callback ProgressCallback) *Tracker {
	step := uint64(float64(total) * ReportThreshold)
	if step == 0 {
		step = 1
	}
	t := &Tracker{total: total, step: step, callback: callback}
	t.next.Store(step)
	return t
}

// Done records n completed units and reports progress when the next
// reporting boundary has been crossed.
func (t *Tracker) Done(n uint64) {
	if t == nil || n == 0 {
		return
	}
	done := t.done.Add(n)
	if t.callback == nil || t.total == 0 {
		return
	}
	for {
		next := t.next.Load()
		if done < next && done < t.total {
			return
		}
		if t.next.CompareAndSwap(next, done+t.step) {
			t.callback(min(float64(done)/float64(t.total), 1.0))
			return
		}
	}
}

// Completed returns the number of units recorded so far.
func (t *Tracker) Completed() uint64 {
	if t == nil {
		return 0
	}
	return t.done.Load()
}

// Finish reports 100% unconditionally.
func (t *Tracker) Finish() {
	if t != nil && t.callback != nil {
		t.callback(1.0)
	}
}
