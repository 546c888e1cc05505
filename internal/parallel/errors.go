// Package parallel provides the fork-join primitives used by the π engine.
package parallel

import (
	"sync"
	"sync/atomic"
)

// ErrorCollector collects the first error from parallel goroutines.
// It is thread-safe and can be used by multiple goroutines simultaneously.
//
// Usage:
//
//	var ec parallel.ErrorCollector
//	var wg sync.WaitGroup
//	wg.Add(2)
//	go func() {
//	    defer wg.Done()
//	    ec.SetError(doWork1())
//	}()
//	go func() {
//	    defer wg.Done()
//	    ec.SetError(doWork2())
//	}()
//	wg.Wait()
//	if err := ec.Err(); err != nil {
//	    return err
//	}
type ErrorCollector struct {
	once   sync.Once
	failed atomic.Bool
	err    error
}

// SetError records an error if one hasn't been recorded yet.
// Nil errors are ignored.
func (c *ErrorCollector) SetError(err error) {
	if err != nil {
		c.once.Do(func() {
			c.err = err
			c.failed.Store(true)
		})
	}
}

// Failed reports whether an error has been recorded. Unlike Err it may be
// polled while goroutines are still running.
func (c *ErrorCollector) Failed() bool {
	return c.failed.Load()
}

// Err returns the first recorded error, or nil if no error was recorded.
// It should be called after all goroutines have completed.
func (c *ErrorCollector) Err() error {
	return c.err
}

// Reset resets the collector for reuse.
// WARNING: This is NOT thread-safe and should only be called when
// no goroutines are using the collector.
func (c *ErrorCollector) Reset() {
	c.once = sync.Once{}
	c.failed.Store(false)
	c.err = nil
}
