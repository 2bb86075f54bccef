package sim

import "github.com/mcsakoff/go-onepin"

// Secondary models the SEC end of the link.
//
// It times every PRI low pulse up to the rising edge and classifies it with the SEC
// detection thresholds: shorter than Wr1Detect is a 1, shorter than Wr0Detect a 0,
// shorter than RdDetect a read request, anything longer a reset. Bits are ignored until
// the first reset it answers, as a real SEC would resynchronize on it.
type Secondary struct {
	tm      onepin.Timing
	bitsPri uint8
	bitsSec uint8
	present bool

	synced   bool
	resets   int
	cur      uint32
	curBits  uint8
	received []uint32

	replies []uint32
	out     uint32
	outBits uint8

	holdFrom uint32
	holdFor  uint32
}

// NewSecondary creates a present SEC using timing tm and the given packet widths.
func NewSecondary(tm onepin.Timing, bitsPri, bitsSec uint8) *Secondary {
	return &Secondary{
		tm:      tm,
		bitsPri: bitsPri,
		bitsSec: bitsSec,
		present: true,
	}
}

// SetPresent switches the device on or off. An absent device never touches the line.
func (s *Secondary) SetPresent(present bool) {
	s.present = present
	if !present {
		s.synced = false
		s.holdFor = 0
	}
}

// Reply queues packets to answer read slots with, one packet per BitsSec read slots.
// With the queue empty the device leaves the line HIGH, which reads as all ones.
func (s *Secondary) Reply(packets ...uint32) {
	s.replies = append(s.replies, packets...)
}

// Received returns the complete packets written by PRI so far.
func (s *Secondary) Received() []uint32 {
	out := make([]uint32, len(s.received))
	copy(out, s.received)
	return out
}

// Resets returns the number of reset signals seen while present.
func (s *Secondary) Resets() int {
	return s.resets
}

func (s *Secondary) pulling(now uint32) bool {
	return s.holdFor > 0 && now-s.holdFrom < s.holdFor
}

func (s *Secondary) hold(from, d uint32) {
	s.holdFrom = from
	s.holdFor = d
}

// Called on every PRI rising edge at time now after a low pulse of low µs.
func (s *Secondary) edge(now, low uint32) {
	if !s.present {
		return
	}
	switch {
	case low >= s.tm.RdDetect:
		s.resets++
		s.synced = true
		s.cur, s.curBits = 0, 0
		s.outBits = 0
		s.hold(now, s.tm.RstPresence)
	case !s.synced:
	case low < s.tm.Wr1Detect:
		s.receive(1)
	case low < s.tm.Wr0Detect:
		s.receive(0)
	default:
		if s.nextBit() == 0 {
			s.hold(now, s.tm.Rd0Signal)
		}
	}
}

func (s *Secondary) receive(bit uint32) {
	s.cur |= bit << s.curBits
	s.curBits++
	if s.curBits == s.bitsPri {
		s.received = append(s.received, s.cur)
		s.cur, s.curBits = 0, 0
	}
}

func (s *Secondary) nextBit() uint32 {
	if s.outBits == 0 {
		s.out = onepin.NotPresent
		if len(s.replies) > 0 {
			s.out = s.replies[0]
			s.replies = s.replies[1:]
		}
		s.outBits = s.bitsSec
	}
	bit := s.out & 1
	s.out >>= 1
	s.outBits--
	return bit
}
