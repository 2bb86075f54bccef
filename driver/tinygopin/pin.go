//go:build tinygo

// Package tinygopin drives a OnePin wire from a microcontroller GPIO under TinyGo.
package tinygopin

import (
	"machine"
	"runtime/interrupt"
	"time"

	"github.com/mcsakoff/go-onepin"
)

// Pin is a onepin.Driver on one machine pin.
type Pin struct {
	pin    machine.Pin
	output bool
	start  time.Time
}

var _ onepin.Driver = (*Pin)(nil)

// New configures p as a pulled-up input and returns a driver on it.
func New(p machine.Pin) *Pin {
	p.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return &Pin{pin: p, start: time.Now()}
}

func (p *Pin) DriveLow() {
	p.pin.Low()
	p.drive()
}

func (p *Pin) DriveHigh() {
	p.pin.High()
	p.drive()
}

// drive switches to output after the level is latched.
func (p *Pin) drive() {
	if !p.output {
		p.pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
		p.output = true
	}
}

func (p *Pin) Release() {
	p.pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	p.output = false
}

func (p *Pin) Sample() bool {
	return p.pin.Get()
}

func (p *Pin) NowUs() uint32 {
	return uint32(time.Since(p.start) / time.Microsecond)
}

// DelayUs spins; the scheduler would sleep for much longer than asked.
func (p *Pin) DelayUs(n uint32) {
	if n == 0 {
		return
	}
	d := time.Duration(n) * time.Microsecond
	for start := time.Now(); time.Since(start) < d; {
	}
}

// IRQGuard disables interrupts for the length of a slot.
type IRQGuard struct {
	state interrupt.State
}

func (g *IRQGuard) Enter() {
	g.state = interrupt.Disable()
}

func (g *IRQGuard) Exit() {
	interrupt.Restore(g.state)
}

// Marker toggles a spare pin for a logic analyzer.
type Marker struct {
	pin machine.Pin
}

// NewMarker makes p an output driven LOW.
func NewMarker(p machine.Pin) Marker {
	p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	p.Low()
	return Marker{pin: p}
}

func (m Marker) Toggle() {
	m.pin.Set(!m.pin.Get())
}
