package onepin

// Link Signaling Protocol
// -----------------------
//
// The link idles HIGH and all signaling is done by pulling it LOW. Timing is divided into
// fixed slots (T) and every protocol interval is a multiple or half multiple of T. There is
// no clock line: both ends synchronize on the PRI falling edge, so PRI timing has to be the
// accurate one.
//
//	Reset/Presence  PRI low 5T, releases; SEC pulls low 1.5T; PRI samples T after its rising edge
//	Write 1         PRI low 0.5T, high 0.5T
//	Write 0         PRI low 1.5T, high 0.5T
//	Read            PRI low 2.5T, releases; SEC holds HIGH/LOW for T; PRI samples at 0.5T
//
// Packets are 1 to 32 bits, least significant bit first.

const (
	// DefaultSlot is the base time slot T in microseconds.
	DefaultSlot uint32 = 80

	// DefaultBitsPri is the default size in bits of a PRI to SEC packet.
	DefaultBitsPri uint8 = 32
	// DefaultBitsSec is the default size in bits of a SEC to PRI packet.
	DefaultBitsSec uint8 = 8
	// MaxBits is the largest supported packet width in either direction.
	MaxBits uint8 = 32

	// NotPresent is returned by Read when SEC did not answer the reset.
	// It cannot be told apart from an all-ones 32 bit packet; see Link.IsPresent.
	NotPresent uint32 = 0xffffffff
)

// Timing holds the wire timing in microseconds, all derived from the slot T.
type Timing struct {
	Slot uint32

	// Reset
	RstSignal    uint32 // PRI low to reset SEC for a new transaction
	RstPresence  uint32 // duration of the SEC presence signal
	RstPrsSample uint32 // PRI presence sampling time after its rising edge
	RstEnd       uint32 // delay after presence sampling before the next slot

	// Write 1
	Wr1Signal uint32 // line active time (low)
	Wr1Pause  uint32 // line high time after active
	Wr1Detect uint32 // SEC detection threshold

	// Write 0
	Wr0Signal uint32
	Wr0Pause  uint32
	Wr0Detect uint32

	// Read
	RdInit    uint32 // PRI read activation signal
	RdDetect  uint32 // SEC read detection threshold
	Rd0Signal uint32 // SEC hold time to signal a bit
	RdSample  uint32 // PRI sampling time after the read activation
	RdPause   uint32 // PRI pause before the next slot
}

// NewTiming derives the protocol timing from a base slot of t microseconds.
// Changing t rescales the whole protocol.
func NewTiming(t uint32) Timing {
	tm := Timing{
		Slot: t,

		RstSignal:    5 * t,
		RstPresence:  (3 * t) / 2,
		RstPrsSample: t,
		RstEnd:       (3 * t) / 2,

		Wr1Signal: t / 2,
		Wr1Detect: t,

		Wr0Signal: (3 * t) / 2,
		Wr0Detect: 2 * t,

		RdInit:    (5 * t) / 2,
		RdDetect:  3 * t,
		Rd0Signal: t,
		RdPause:   t,
	}
	tm.Wr1Pause = t - tm.Wr1Signal
	tm.Wr0Pause = 2*t - tm.Wr0Signal
	tm.RdSample = tm.Rd0Signal / 2
	return tm
}

// ShortestCorrected returns the smallest nominal delay that has a calibration
// correction subtracted from it. A correction at or above this value gets clamped.
func (tm Timing) ShortestCorrected() uint32 {
	shortest := tm.Wr1Signal
	for _, d := range []uint32{
		tm.Wr1Pause, tm.Wr0Signal, tm.Wr0Pause,
		tm.RstSignal, tm.RstPrsSample, tm.RstEnd,
		tm.RdInit, tm.RdSample, tm.RdPause,
	} {
		if d < shortest {
			shortest = d
		}
	}
	return shortest
}
