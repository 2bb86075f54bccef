// Package onepin implements the primary (PRI) side of OnePin, a half duplex point-to-point
// link between two devices over a single digital I/O line and ground.
//
// PRI initiates every transaction down to the bit level. Each transaction starts with a
// Reset/Presence handshake, followed by Write slots (PRI to SEC) or Read slots (SEC to PRI)
// for as many bits as the packet width in that direction. The protocol borrows from the
// Dallas 1-Wire bus but is point-to-point, so there is no ROM addressing or search.
//
// The host's own I/O calls take a noticeable fraction of a slot. Begin measures the average
// cost of a direction switch and of a level change, and every delay afterwards is shortened
// by the matching correction.
//
// A Link is not reentrant. Write and Read hold the host for the whole packet (roughly
// bits*2T for a write, bits*4T for a read, plus 8T for the reset); interrupts that run
// longer than the slack in a slot corrupt that slot. Use Config.Guard to bracket slots.
package onepin

import (
	"fmt"
	"sync"
)

// Config controls the link. Zero fields take their defaults.
type Config struct {
	// BitsPri is the number of bits per PRI to SEC packet, 1..32.
	BitsPri uint8
	// BitsSec is the number of bits per SEC to PRI packet, 1..32.
	BitsSec uint8
	// Slot is the base time slot T in microseconds. Default 80.
	Slot uint32
	// Guard, if set, brackets every slot.
	Guard Guard
	// Marker, if set, is toggled at the presence sample, at the end of a reset and after
	// every bit.
	Marker Marker
}

// DefaultConfig returns the default link configuration.
func DefaultConfig() Config {
	return Config{
		BitsPri: DefaultBitsPri,
		BitsSec: DefaultBitsSec,
		Slot:    DefaultSlot,
	}
}

// Stats counts link activity since construction.
type Stats struct {
	Resets      uint64 // Reset/Presence slots issued
	Absent      uint64 // resets without a presence response
	BitsWritten uint64
	BitsRead    uint64
	// Clamps counts delays that calibration corrections swallowed completely. If it keeps
	// growing the host is too slow for the slot; raise Config.Slot.
	Clamps uint64
}

// Link is the PRI end of one physical wire.
type Link struct {
	drv     Driver
	tm      Timing
	bitsPri uint8
	bitsSec uint8
	guard   Guard
	marker  Marker

	mx         sync.Mutex
	started    bool
	presence   bool   // result of the last presence check
	switchTime uint32 // average microseconds for a direction switch; measured in Begin()
	writeTime  uint32 // average microseconds for a level change; measured in Begin()
	stats      Stats
}

// New creates a link on d with the default slot time.
// Nothing touches the wire until Begin is called.
func New(d Driver, bitsPri, bitsSec uint8) (*Link, error) {
	cfg := DefaultConfig()
	cfg.BitsPri = bitsPri
	cfg.BitsSec = bitsSec
	return NewWithConfig(d, cfg)
}

// NewWithConfig creates a link on d with cfg.
func NewWithConfig(d Driver, cfg Config) (*Link, error) {
	if d == nil {
		return nil, ErrNilDriver
	}
	if cfg.BitsPri < 1 || cfg.BitsPri > MaxBits {
		return nil, fmt.Errorf("pri bits per packet %d: %w", cfg.BitsPri, ErrInvalidWidth)
	}
	if cfg.BitsSec < 1 || cfg.BitsSec > MaxBits {
		return nil, fmt.Errorf("sec bits per packet %d: %w", cfg.BitsSec, ErrInvalidWidth)
	}
	if cfg.Slot == 0 {
		cfg.Slot = DefaultSlot
	}
	l := &Link{
		drv:     d,
		tm:      NewTiming(cfg.Slot),
		bitsPri: cfg.BitsPri,
		bitsSec: cfg.BitsSec,
		guard:   cfg.Guard,
		marker:  cfg.Marker,
	}
	if l.guard == nil {
		l.guard = noGuard{}
	}
	if l.marker == nil {
		l.marker = noMarker{}
	}
	return l, nil
}

// Begin calibrates the host I/O overhead and leaves the wire idle (driven HIGH).
// It must be called once before Write or Read; calling it again recalibrates.
func (l *Link) Begin() {
	l.lock()
	defer l.unlock()

	debugf("onepin: bpp pri:%d sec:%d slot:%dus", l.bitsPri, l.bitsSec, l.tm.Slot)
	l.calibrate()
	debugf("onepin: avg switch %dus, avg write %dus", l.switchTime, l.writeTime)

	if shortest := l.tm.ShortestCorrected(); l.switchTime >= shortest || l.writeTime >= shortest {
		warnf("onepin: host overhead (switch %dus, write %dus) reaches the %dus slot interval; raise the slot time",
			l.switchTime, l.writeTime, shortest)
	}
	l.started = true
}

// Write sends the low BitsPri bits of data to SEC, LSB first.
//
// Unless noReset is set, a Reset/Presence handshake comes first and nothing is sent when
// SEC does not answer. With noReset the bits are sent unconditionally as a continuation of
// the current transaction. Write returns the presence state after the call.
func (l *Link) Write(data uint32, noReset bool) bool {
	l.lock()
	defer l.unlock()

	if !l.started {
		return false
	}
	if !noReset && !l.reset() {
		return false
	}
	for i := uint8(0); i < l.bitsPri; i++ {
		l.writeBit(data & 1)
		data >>= 1
	}
	return l.presence
}

// Read receives a BitsSec wide packet from SEC, LSB first.
//
// Unless noReset is set, a Reset/Presence handshake comes first and NotPresent is returned
// when SEC does not answer. With 32 bit packets NotPresent is also a valid payload; check
// IsPresent to tell them apart.
func (l *Link) Read(noReset bool) uint32 {
	l.lock()
	defer l.unlock()

	if !l.started {
		return NotPresent
	}
	if !noReset && !l.reset() {
		return NotPresent
	}
	var packet uint32
	mask := uint32(1)
	for i := uint8(0); i < l.bitsSec; i++ {
		if l.readBit() {
			packet |= mask
		}
		mask <<= 1
	}
	return packet
}

// IsPresent returns the result of the last Reset/Presence handshake.
// It never signals on the wire, so it can't be used to wait for SEC to come online.
func (l *Link) IsPresent() bool {
	l.lock()
	defer l.unlock()

	return l.presence
}

// Started reports whether Begin has run.
func (l *Link) Started() bool {
	l.lock()
	defer l.unlock()

	return l.started
}

// Calibration returns the measured direction switch and level change costs in microseconds.
func (l *Link) Calibration() (switchUs, writeUs uint32) {
	l.lock()
	defer l.unlock()

	return l.switchTime, l.writeTime
}

// Stats returns a snapshot of the link counters.
func (l *Link) Stats() Stats {
	l.lock()
	defer l.unlock()

	return l.stats
}

// Timing returns the wire timing in use.
func (l *Link) Timing() Timing {
	return l.tm
}

// BitsPri returns the PRI to SEC packet width.
func (l *Link) BitsPri() uint8 {
	return l.bitsPri
}

// BitsSec returns the SEC to PRI packet width.
func (l *Link) BitsSec() uint8 {
	return l.bitsSec
}

func (l *Link) lock() {
	l.mx.Lock()
}

func (l *Link) unlock() {
	l.mx.Unlock()
}
