package sim

import "github.com/mcsakoff/go-onepin"

// Kind is a decoded slot type.
type Kind uint8

const (
	KindWrite1 Kind = iota + 1
	KindWrite0
	KindRead
	KindReset
)

func (k Kind) String() string {
	switch k {
	case KindWrite1:
		return "write1"
	case KindWrite0:
		return "write0"
	case KindRead:
		return "read"
	case KindReset:
		return "reset"
	}
	return "unknown"
}

// Slot is one PRI signal found in a trace.
type Slot struct {
	Kind Kind
	// Start is the falling edge.
	Start uint32
	// Low is the time from the falling edge to the PRI rising edge.
	Low uint32
	// Length runs to the next falling edge, or to the end of the trace for the last slot.
	Length uint32
	// Sampled is the first level PRI read during the slot, valid if HasSample is set.
	Sampled   bool
	HasSample bool
}

// Slots decodes the PRI pulses in trace, classified with the detection thresholds of tm.
func Slots(trace []Event, tm onepin.Timing) []Slot {
	var (
		slots []Slot
		cur   = -1
		low   bool // PRI drives low
		high  = true
	)
	for _, e := range trace {
		switch e.Op {
		case OpDriveLow:
			if high {
				if cur >= 0 {
					slots[cur].Length = e.At - slots[cur].Start
				}
				slots = append(slots, Slot{Start: e.At})
				cur = len(slots) - 1
			}
			low, high = true, false
		case OpDriveHigh, OpRelease:
			if low && cur >= 0 {
				slots[cur].Low = e.At - slots[cur].Start
				slots[cur].Kind = classify(slots[cur].Low, tm)
			}
			low, high = false, true
		case OpSample:
			if cur >= 0 && !slots[cur].HasSample {
				slots[cur].Sampled = e.Arg != 0
				slots[cur].HasSample = true
			}
		}
	}
	if cur >= 0 {
		slots[cur].Length = trace[len(trace)-1].At - slots[cur].Start
	}
	return slots
}

// Decode reads the bits carried by consecutive write slots, LSB first.
func Decode(slots []Slot) (value uint32, n int) {
	for _, s := range slots {
		switch s.Kind {
		case KindWrite1:
			value |= 1 << uint(n)
		case KindWrite0:
		default:
			continue
		}
		n++
	}
	return value, n
}

// Count returns the number of slots of kind k.
func Count(slots []Slot, k Kind) int {
	n := 0
	for _, s := range slots {
		if s.Kind == k {
			n++
		}
	}
	return n
}

func classify(low uint32, tm onepin.Timing) Kind {
	switch {
	case low < tm.Wr1Detect:
		return KindWrite1
	case low < tm.Wr0Detect:
		return KindWrite0
	case low < tm.RdDetect:
		return KindRead
	}
	return KindReset
}
