// Package periphpin drives a OnePin wire from any periph.io GPIO.
//
// The line is emulated open drain: Release switches the pin to an input with the
// pull-up enabled, so an external pull-up is only needed on long wires.
package periphpin

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/mcsakoff/go-onepin"
	"github.com/mcsakoff/go-onepin/internal/hostclock"
)

// pin is the part of gpio.PinIO used here.
type pin interface {
	Out(l gpio.Level) error
	In(pull gpio.Pull, edge gpio.Edge) error
	Read() gpio.Level
}

// Pin is a onepin.Driver over one GPIO.
type Pin struct {
	hostclock.Clock
	p   pin
	err error
}

var _ onepin.Driver = (*Pin)(nil)

// New wraps p. The pin is left as it is until the link calibrates.
func New(p gpio.PinIO) *Pin {
	return newPin(p)
}

func newPin(p pin) *Pin {
	return &Pin{Clock: hostclock.New(), p: p}
}

// ByName initializes the periph host drivers and opens the named GPIO, e.g. "GPIO17".
func ByName(name string) (*Pin, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph init: %w", err)
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("gpio %q not found", name)
	}
	return New(p), nil
}

func (p *Pin) DriveLow() {
	p.check(p.p.Out(gpio.Low))
}

func (p *Pin) DriveHigh() {
	p.check(p.p.Out(gpio.High))
}

func (p *Pin) Release() {
	p.check(p.p.In(gpio.PullUp, gpio.NoEdge))
}

func (p *Pin) Sample() bool {
	return p.p.Read() == gpio.High
}

// Err returns the first error reported by the GPIO, if any. Slot timing leaves no room
// to handle errors per call.
func (p *Pin) Err() error {
	return p.err
}

func (p *Pin) check(err error) {
	if err != nil && p.err == nil {
		p.err = err
	}
}

// Marker toggles a spare GPIO for a logic analyzer.
type Marker struct {
	p     gpio.PinOut
	level gpio.Level
}

// NewMarker drives p LOW and returns a marker on it.
func NewMarker(p gpio.PinOut) (*Marker, error) {
	if err := p.Out(gpio.Low); err != nil {
		return nil, err
	}
	return &Marker{p: p}, nil
}

func (m *Marker) Toggle() {
	m.level = !m.level
	_ = m.p.Out(m.level)
}
