package onepin

import "runtime"

// Pin is the one bidirectional line of the link.
//
// Implementations must not log, allocate or block. DriveLow and DriveHigh on a released
// pin change its direction; that is expected to be markedly slower than a level change
// on a pin that already drives, and the two costs are calibrated separately.
type Pin interface {
	// DriveLow sets the pin to a driven output at logical 0.
	DriveLow()
	// DriveHigh sets the pin to a driven output at logical 1.
	DriveHigh()
	// Release sets the pin to a high impedance input with the pull-up asserted.
	Release()
	// Sample reads the current level of the pin, true for HIGH.
	Sample() bool
}

// Clock is the host time base.
type Clock interface {
	// NowUs returns a monotonic microsecond counter. It may wrap.
	NowUs() uint32
	// DelayUs busy-waits at least n microseconds with 1µs resolution or better.
	DelayUs(n uint32)
}

// Driver is everything the link needs from the host.
type Driver interface {
	Pin
	Clock
}

// Marker is an optional debug output flipped at protocol milestones so a logic
// analyzer can line up the sampling points with the wire.
type Marker interface {
	Toggle()
}

// Guard brackets every slot, e.g. to keep interrupts or the scheduler away while the
// slot is timed. Enter and Exit cost time too and should be short.
type Guard interface {
	Enter()
	Exit()
}

// OSThreadGuard pins the calling goroutine to its OS thread for the duration of a slot.
type OSThreadGuard struct{}

func (OSThreadGuard) Enter() { runtime.LockOSThread() }
func (OSThreadGuard) Exit()  { runtime.UnlockOSThread() }

type noGuard struct{}

func (noGuard) Enter() {}
func (noGuard) Exit()  {}

type noMarker struct{}

func (noMarker) Toggle() {}
