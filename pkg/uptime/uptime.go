// Package uptime tracks elapsed time since a service started and renders it
// as days, hours, minutes and seconds.
package uptime

import "time"

// Clock is the time source used by Uptime.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now. Readings carry Go's
// monotonic clock, so elapsed time ignores wall-clock adjustments.
func SystemClock() Clock { return systemClock{} }

// Uptime is anchored to the instant it was created. Copies share the same
// start instant.
type Uptime struct {
	startedAt time.Time
	clock     Clock
}

// New starts tracking from now.
func New() Uptime {
	return NewWithClock(SystemClock())
}

// NewWithClock starts tracking from c.Now().
func NewWithClock(c Clock) Uptime {
	if c == nil {
		c = SystemClock()
	}
	return Uptime{startedAt: c.Now(), clock: c}
}

// StartedAt returns the instant this Uptime was created.
func (u Uptime) StartedAt() time.Time {
	return u.startedAt
}

// Elapsed returns the time since StartedAt, never negative.
func (u Uptime) Elapsed() time.Duration {
	c := u.clock
	if c == nil {
		c = SystemClock()
	}
	d := c.Now().Sub(u.startedAt)
	if d < 0 {
		return 0
	}
	return d
}

// Seconds returns the elapsed whole seconds.
func (u Uptime) Seconds() uint64 {
	return uint64(u.Elapsed() / time.Second)
}

// Get returns the elapsed time as days, hours, minutes and seconds.
func (u Uptime) Get() DaysHoursMinutesSeconds {
	return SecondsToHMS(u.Seconds())
}

func (u Uptime) String() string {
	return u.Get().String()
}
