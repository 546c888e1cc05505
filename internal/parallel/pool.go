package parallel

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// PanicError is returned by Join when a task panicked.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("parallel: task panicked: %v", e.Value)
}

// Stats counts how forked tasks were executed.
type Stats struct {
	Spawned uint64
	Inline  uint64
}

// Pool is a bounded fork-join executor.
//
// A pool of W workers lets at most W-1 forked tasks run on extra goroutines
// at any time; the goroutine calling Join is the W-th worker. When no slot
// is free a forked task runs inline in the caller, so Join never waits for a
// slot and nested joins cannot starve the pool. A pool of one worker runs
// every task sequentially in the caller.
type Pool struct {
	workers int
	slots   chan struct{}
	spawned atomic.Uint64
	inline  atomic.Uint64
}

// NewPool creates a pool with the given number of workers.
// A non-positive value selects runtime.NumCPU().
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Pool{
		workers: workers,
		slots:   make(chan struct{}, workers-1),
	}
}

// Workers returns the configured worker count.
func (p *Pool) Workers() int {
	return p.workers
}

// Stats returns a snapshot of the execution counters.
func (p *Pool) Stats() Stats {
	return Stats{Spawned: p.spawned.Load(), Inline: p.inline.Load()}
}

// Join runs all tasks and waits for them to complete.
//
// The first task always runs in the calling goroutine, after the others have
// been dispatched. It returns the first error reported by a task, a
// *PanicError if a task panicked, or nil. Once a task has failed, tasks that
// have not started yet are skipped.
func (p *Pool) Join(tasks ...func() error) error {
	switch len(tasks) {
	case 0:
		return nil
	case 1:
		return runTask(tasks[0])
	}

	var (
		ec      ErrorCollector
		wg      sync.WaitGroup
		pending []func() error
	)
	for _, task := range tasks[1:] {
		select {
		case p.slots <- struct{}{}:
			p.spawned.Add(1)
			wg.Add(1)
			go func(task func() error) {
				defer func() {
					<-p.slots
					wg.Done()
				}()
				if ec.Failed() {
					return
				}
				ec.SetError(runTask(task))
			}(task)
		default:
			p.inline.Add(1)
			pending = append(pending, task)
		}
	}

	ec.SetError(runTask(tasks[0]))
	for _, task := range pending {
		if ec.Failed() {
			break
		}
		ec.SetError(runTask(task))
	}
	wg.Wait()
	return ec.Err()
}

func runTask(task func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return task()
}
