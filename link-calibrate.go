package onepin

// Calibration
// -----------
//
// The clock is not accurate enough for a single I/O call, so a power of two count of
// operations is timed and the total shifted down to an average. Each loop iteration
// makes two calls, hence the extra bit of shift.
const (
	calSwitchLoops = 64  // 128 direction changes
	calSwitchShift = 7   // divide by 2 * calSwitchLoops
	calWriteLoops  = 128 // 256 level changes
	calWriteShift  = 8   // divide by 2 * calWriteLoops
)

func (l *Link) calibrate() {
	// start released so the first iteration switches too
	l.drv.Release()
	start := l.drv.NowUs()
	for i := 0; i < calSwitchLoops; i++ {
		l.drv.DriveHigh()
		l.drv.Release()
	}
	l.switchTime = (l.drv.NowUs() - start) >> calSwitchShift

	// time level changes with the pin already an output
	l.drv.DriveHigh()
	start = l.drv.NowUs()
	for i := 0; i < calWriteLoops; i++ {
		l.drv.DriveHigh()
		l.drv.DriveLow()
	}
	l.writeTime = (l.drv.NowUs() - start) >> calWriteShift

	// idle
	l.drv.DriveHigh()
	l.presence = false
}
