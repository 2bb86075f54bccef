// Package rpiopin drives a OnePin wire from a Raspberry Pi GPIO through go-rpio's
// memory mapped registers, which keeps a level change well under a microsecond.
package rpiopin

import (
	"fmt"

	"github.com/stianeikeland/go-rpio/v4"

	"github.com/mcsakoff/go-onepin"
	"github.com/mcsakoff/go-onepin/internal/hostclock"
)

// Pin is a onepin.Driver on one BCM numbered GPIO.
type Pin struct {
	hostclock.Clock
	pin    rpio.Pin
	output bool
}

var _ onepin.Driver = (*Pin)(nil)

// Open maps the GPIO registers and sets up pin bcm as a pulled-up input.
// Close releases the mapping.
func Open(bcm uint8) (*Pin, error) {
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("rpio open: %w", err)
	}
	p := rpio.Pin(bcm)
	p.Input()
	p.PullUp()
	return &Pin{Clock: hostclock.New(), pin: p}, nil
}

// The output latch is written before the direction changes so the line never
// glitches to the previous level.

func (p *Pin) DriveLow() {
	p.pin.Low()
	p.drive()
}

func (p *Pin) DriveHigh() {
	p.pin.High()
	p.drive()
}

func (p *Pin) drive() {
	if !p.output {
		p.pin.Output()
		p.output = true
	}
}

func (p *Pin) Release() {
	p.pin.Input()
	p.output = false
}

func (p *Pin) Sample() bool {
	return p.pin.Read() == rpio.High
}

// Close releases the pin and unmaps the registers.
func (p *Pin) Close() error {
	p.Release()
	return rpio.Close()
}

// Marker toggles a spare GPIO for a logic analyzer. Open a Pin first.
type Marker struct {
	pin rpio.Pin
}

// NewMarker makes bcm an output driven LOW.
func NewMarker(bcm uint8) Marker {
	p := rpio.Pin(bcm)
	p.Low()
	p.Output()
	return Marker{pin: p}
}

func (m Marker) Toggle() {
	m.pin.Toggle()
}
