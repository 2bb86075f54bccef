package onepin

import "github.com/mcsakoff/go-onepin/internal/mathx"

// Slot primitives. Every slot starts and ends with the pin driven HIGH.
// Nothing here may log or allocate: the measured overheads only hold if the code between
// calibration and use stays this thin.

// Delay us microseconds less a calibration correction, saturating at zero.
func (l *Link) delay(us, correction uint32) {
	d, clamped := mathx.SatSub(us, correction)
	if clamped {
		l.stats.Clamps++
	}
	l.drv.DelayUs(d)
}

// Emit one LOW pulse of active µs followed by pause µs of HIGH.
func (l *Link) pull(active, pause uint32) {
	l.drv.DriveLow()
	l.delay(active, l.writeTime)
	l.drv.DriveHigh()
	if pause != 0 {
		l.delay(pause, l.writeTime)
	}
}

// Reset/Presence
//
// PRI holds the line LOW for RstSignal and releases it. SEC answers on the rising edge by
// pulling LOW for RstPresence. PRI samples once, RstPrsSample after its rising edge, then
// takes the line back and waits RstEnd before the next slot.
func (l *Link) reset() bool {
	l.guard.Enter()
	l.drv.DriveHigh()
	l.pull(l.tm.RstSignal, 0)
	l.drv.Release()
	l.delay(l.tm.RstPrsSample, l.switchTime)
	l.marker.Toggle() // sampling point
	l.presence = !l.drv.Sample()
	l.drv.DriveHigh()
	l.delay(l.tm.RstEnd, l.switchTime)
	l.marker.Toggle() // end of signal
	l.guard.Exit()

	l.stats.Resets++
	if !l.presence {
		l.stats.Absent++
	}
	return l.presence
}

// Write 0/1
//
// SEC tells the bits apart by the time between the PRI falling and rising edges.
func (l *Link) writeBit(bit uint32) {
	l.guard.Enter()
	if bit != 0 {
		l.pull(l.tm.Wr1Signal, l.tm.Wr1Pause)
	} else {
		l.pull(l.tm.Wr0Signal, l.tm.Wr0Pause)
	}
	l.marker.Toggle()
	l.guard.Exit()
	l.stats.BitsWritten++
}

// Read
//
// PRI holds the line LOW for RdInit and releases it. SEC then holds the line HIGH or LOW
// for Rd0Signal to send a 1 or a 0, and PRI samples RdSample into that window.
func (l *Link) readBit() bool {
	l.guard.Enter()
	l.pull(l.tm.RdInit, 0)
	l.drv.Release()
	l.delay(l.tm.RdSample, l.switchTime)
	bit := l.drv.Sample()
	l.drv.DriveHigh()
	l.marker.Toggle() // bit sampled
	l.delay(l.tm.RdPause, l.switchTime)
	l.guard.Exit()
	l.stats.BitsRead++
	return bit
}
