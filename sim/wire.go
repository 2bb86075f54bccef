// Package sim provides a simulated OnePin wire for host side testing.
//
// Wire implements onepin.Driver on a virtual microsecond clock. Every primitive advances
// the clock by its configured cost and then takes effect, so the same code that meets the
// timing on hardware can be checked against the recorded trace. A Secondary attached to
// the wire plays the SEC end.
package sim

import (
	"math/rand"

	"github.com/mcsakoff/go-onepin"
)

// Op is a recorded driver call.
type Op uint8

const (
	OpDriveLow Op = iota + 1
	OpDriveHigh
	OpRelease
	OpSample
	OpDelay
	OpNow
)

func (o Op) String() string {
	switch o {
	case OpDriveLow:
		return "drive_low"
	case OpDriveHigh:
		return "drive_high"
	case OpRelease:
		return "release"
	case OpSample:
		return "sample"
	case OpDelay:
		return "delay"
	case OpNow:
		return "now"
	}
	return "unknown"
}

// Event is one driver call. At is the clock when the call took effect.
// Arg is the requested delay for OpDelay and the level (1 = HIGH) for OpSample.
type Event struct {
	At  uint32
	Op  Op
	Arg uint32
}

// Config sets the host the wire pretends to be.
type Config struct {
	// Start is the initial clock value, e.g. close to the wrap to exercise it.
	Start uint32
	// SwitchCost is the µs cost of a direction change.
	SwitchCost uint32
	// WriteCost is the µs cost of a level change on a driven pin.
	WriteCost uint32
	// SampleCost is the µs cost of reading the pin.
	SampleCost uint32
	// Jitter adds up to this many µs to every delay, drawn from a generator seeded with Seed.
	Jitter uint32
	Seed   int64
}

// Wire is a simulated line with PRI on the driver side.
type Wire struct {
	cfg Config
	rnd *rand.Rand
	sec *Secondary

	now      uint32
	output   bool // PRI drives the line
	level    bool // PRI drive level
	lowSince uint32
	trace    []Event
}

var _ onepin.Driver = (*Wire)(nil)

// New creates a wire. The pin starts released, like an MCU pin after reset.
func New(cfg Config) *Wire {
	return &Wire{
		cfg:   cfg,
		rnd:   rand.New(rand.NewSource(cfg.Seed)),
		now:   cfg.Start,
		level: true,
	}
}

// Attach connects sec to the far end of the wire. A nil sec leaves the line floating HIGH.
func (w *Wire) Attach(sec *Secondary) {
	w.sec = sec
}

func (w *Wire) DriveLow() {
	w.drive(false, OpDriveLow)
}

func (w *Wire) DriveHigh() {
	w.drive(true, OpDriveHigh)
}

func (w *Wire) Release() {
	wasLow := w.output && !w.level
	w.now += w.cfg.SwitchCost
	w.output = false
	w.record(OpRelease, 0)
	if wasLow {
		w.rising()
	}
}

func (w *Wire) Sample() bool {
	w.now += w.cfg.SampleCost
	high := w.Level()
	var arg uint32
	if high {
		arg = 1
	}
	w.record(OpSample, arg)
	return high
}

func (w *Wire) NowUs() uint32 {
	w.record(OpNow, 0)
	return w.now
}

func (w *Wire) DelayUs(n uint32) {
	d := n
	if w.cfg.Jitter > 0 {
		d += uint32(w.rnd.Int63n(int64(w.cfg.Jitter) + 1))
	}
	w.now += d
	w.record(OpDelay, n)
}

// Level returns the current line level as seen on the wire.
func (w *Wire) Level() bool {
	if w.output {
		return w.level
	}
	if w.sec != nil && w.sec.pulling(w.now) {
		return false
	}
	return true
}

// Idle reports whether PRI drives the line HIGH.
func (w *Wire) Idle() bool {
	return w.output && w.level
}

// Now returns the virtual clock without recording a call.
func (w *Wire) Now() uint32 {
	return w.now
}

// Trace returns a copy of the recorded calls.
func (w *Wire) Trace() []Event {
	out := make([]Event, len(w.trace))
	copy(out, w.trace)
	return out
}

// ClearTrace forgets the recorded calls, e.g. the ones made by calibration.
func (w *Wire) ClearTrace() {
	w.trace = w.trace[:0]
}

// Delays returns the arguments of all recorded delays, in order.
func (w *Wire) Delays() []uint32 {
	var out []uint32
	for _, e := range w.trace {
		if e.Op == OpDelay {
			out = append(out, e.Arg)
		}
	}
	return out
}

func (w *Wire) drive(high bool, op Op) {
	if w.output {
		w.now += w.cfg.WriteCost
	} else {
		w.now += w.cfg.SwitchCost
	}
	wasHigh := w.Level()
	wasLow := w.output && !w.level
	w.output = true
	w.level = high
	w.record(op, 0)
	switch {
	case !high && wasHigh:
		w.lowSince = w.now
	case high && wasLow:
		w.rising()
	}
}

func (w *Wire) rising() {
	if w.sec != nil {
		w.sec.edge(w.now, w.now-w.lowSince)
	}
}

func (w *Wire) record(op Op, arg uint32) {
	w.trace = append(w.trace, Event{At: w.now, Op: op, Arg: arg})
}
