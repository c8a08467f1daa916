// Package counter implements a shareable, threadsafe non-negative counter.
package counter

import (
	"math"
	"strconv"
	"sync/atomic"
)

// Counter is a non-negative integer counter safe for concurrent use.
//
// Counter is a small handle: copying it yields a clone that shares the
// underlying count with the original, so increments through any copy are
// visible through all of them. Use Create or From; the zero Counter has no
// storage.
type Counter struct {
	count *atomic.Uint64
	stop  *uint64
}

// Create returns a counter starting at zero with no stop value.
func Create() Counter {
	return From(0)
}

// From returns a counter starting at startAt.
func From(startAt uint64) Counter {
	c := Counter{count: new(atomic.Uint64)}
	c.count.Store(startAt)
	return c
}

// WithStop returns a clone of c carrying stop as metadata.
//
// The stop value is informational only: Incr does not halt or saturate at it.
func (c Counter) WithStop(stop uint64) Counter {
	c.stop = &stop
	return c
}

// Count returns the current value.
func (c Counter) Count() uint64 {
	return c.count.Load()
}

// StopAt returns the configured stop value, if any.
func (c Counter) StopAt() (uint64, bool) {
	if c.stop == nil {
		return 0, false
	}
	return *c.stop, true
}

// Incr adds one and returns the new value. The count saturates at math.MaxUint64.
func (c Counter) Incr() uint64 {
	for {
		cur := c.count.Load()
		if cur == math.MaxUint64 {
			return cur
		}
		if c.count.CompareAndSwap(cur, cur+1) {
			return cur + 1
		}
	}
}

// Decr subtracts one and returns the new value. At zero it is a no-op.
func (c Counter) Decr() uint64 {
	for {
		cur := c.count.Load()
		if cur == 0 {
			return 0
		}
		if c.count.CompareAndSwap(cur, cur-1) {
			return cur - 1
		}
	}
}

func (c Counter) String() string {
	return strconv.FormatUint(c.Count(), 10)
}
