// Package hostclock is the microsecond clock shared by the host pin drivers.
package hostclock

import (
	"time"

	"periph.io/x/host/v3/cpu"
)

// Clock counts microseconds from its creation on the monotonic clock.
type Clock struct {
	start time.Time
}

// New returns a clock starting at zero.
func New() Clock {
	return Clock{start: time.Now()}
}

// NowUs returns the microseconds elapsed since New. It wraps after about 71 minutes.
func (c Clock) NowUs() uint32 {
	return uint32(time.Since(c.start) / time.Microsecond)
}

// DelayUs busy-waits for n microseconds. The scheduler's sleep granularity is far
// coarser than a slot.
func (c Clock) DelayUs(n uint32) {
	if n == 0 {
		return
	}
	cpu.Nanospin(time.Duration(n) * time.Microsecond)
}
