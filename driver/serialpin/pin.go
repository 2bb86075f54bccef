// Package serialpin drives a OnePin wire from the modem control lines of a USB serial
// adapter.
//
// Wiring: RTS switches an open-collector transistor that pulls the wire LOW, and CTS is
// tied to the wire. Both lines are active low on TTL adapters, so asserting RTS pulls
// the wire down and CTS reads as set while the wire is LOW. The wire itself needs a
// pull-up; DriveHigh and Release both let it float there.
//
// Every primitive is a USB round trip, hundreds of microseconds on most adapters.
// Use a slot time of several milliseconds.
package serialpin

import (
	"fmt"

	"go.bug.st/serial"

	"github.com/mcsakoff/go-onepin"
	"github.com/mcsakoff/go-onepin/internal/hostclock"
)

// port is the part of serial.Port used here.
type port interface {
	SetRTS(rts bool) error
	GetModemStatusBits() (*serial.ModemStatusBits, error)
	Close() error
}

// Pin is a onepin.Driver over a serial port's RTS and CTS lines.
type Pin struct {
	hostclock.Clock
	device string
	port   port
	err    error
}

var _ onepin.Driver = (*Pin)(nil)

// Open opens device and releases the wire.
func Open(device string) (*Pin, error) {
	mode := &serial.Mode{
		BaudRate: 115200,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	p, err := serial.Open(device, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", device, err)
	}
	pin := newPin(device, p)
	if err := p.SetRTS(false); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("release %s: %w", device, err)
	}
	return pin, nil
}

func newPin(device string, p port) *Pin {
	return &Pin{Clock: hostclock.New(), device: device, port: p}
}

// Device returns the serial port name.
func (p *Pin) Device() string {
	return p.device
}

func (p *Pin) DriveLow() {
	p.check(p.port.SetRTS(true))
}

func (p *Pin) DriveHigh() {
	p.check(p.port.SetRTS(false))
}

func (p *Pin) Release() {
	p.check(p.port.SetRTS(false))
}

// Sample returns true when the wire is HIGH. A failed status read counts as HIGH,
// which is what an idle wire without SEC looks like.
func (p *Pin) Sample() bool {
	bits, err := p.port.GetModemStatusBits()
	if err != nil {
		p.check(err)
		return true
	}
	return !bits.CTS
}

// Err returns the first error from the port, if any.
func (p *Pin) Err() error {
	return p.err
}

// Close releases the wire and closes the port.
func (p *Pin) Close() error {
	_ = p.port.SetRTS(false)
	return p.port.Close()
}

func (p *Pin) check(err error) {
	if err != nil && p.err == nil {
		p.err = err
	}
}
