package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mcsakoff/go-onepin"
)

func TestWire_Costs(t *testing.T) {
	w := New(Config{Start: 100, SwitchCost: 10, WriteCost: 3, SampleCost: 1})
	require.True(t, w.Level(), "released line floats high")
	require.False(t, w.Idle())

	w.DriveHigh() // switch
	w.DriveLow()  // write
	w.DriveHigh() // write
	w.Release()   // switch
	w.Sample()
	w.DelayUs(25)
	require.Equal(t, uint32(100+10+3+3+10+1+25), w.Now())

	trace := w.Trace()
	require.Equal(t, []Event{
		{At: 110, Op: OpDriveHigh},
		{At: 113, Op: OpDriveLow},
		{At: 116, Op: OpDriveHigh},
		{At: 126, Op: OpRelease},
		{At: 127, Op: OpSample, Arg: 1},
		{At: 152, Op: OpDelay, Arg: 25},
	}, trace)
	require.Equal(t, []uint32{25}, w.Delays())

	w.ClearTrace()
	require.Empty(t, w.Trace())
}

func TestWire_ClockWraps(t *testing.T) {
	w := New(Config{Start: 0xfffffff0})
	start := w.NowUs()
	w.DelayUs(0x20)
	require.Equal(t, uint32(0x20), w.NowUs()-start)
}

func TestWire_Jitter(t *testing.T) {
	w := New(Config{Jitter: 4, Seed: 1})
	for i := 0; i < 100; i++ {
		before := w.Now()
		w.DelayUs(10)
		d := w.Now() - before
		require.GreaterOrEqual(t, d, uint32(10))
		require.LessOrEqual(t, d, uint32(14))
	}
}

func TestSecondary_Presence(t *testing.T) {
	tm := onepin.NewTiming(onepin.DefaultSlot)
	w := New(Config{})
	sec := NewSecondary(tm, 8, 8)
	w.Attach(sec)

	w.DriveLow()
	w.DelayUs(tm.RstSignal)
	w.DriveHigh()
	w.Release()
	require.False(t, w.Level(), "presence pulse")
	w.DelayUs(tm.RstPresence - 1)
	require.False(t, w.Level())
	w.DelayUs(1)
	require.True(t, w.Level(), "presence ends after RstPresence")
	require.Equal(t, 1, sec.Resets())

	sec.SetPresent(false)
	w.DriveLow()
	w.DelayUs(tm.RstSignal)
	w.DriveHigh()
	w.Release()
	require.True(t, w.Level())
	require.Equal(t, 1, sec.Resets())
}

func TestSecondary_IgnoresBitsBeforeReset(t *testing.T) {
	tm := onepin.NewTiming(onepin.DefaultSlot)
	w := New(Config{})
	sec := NewSecondary(tm, 2, 2)
	w.Attach(sec)

	pulse := func(low uint32) {
		w.DriveLow()
		w.DelayUs(low)
		w.DriveHigh()
		w.DelayUs(tm.Slot)
	}
	pulse(tm.Wr1Signal)
	pulse(tm.Wr1Signal)
	require.Empty(t, sec.Received())

	pulse(tm.RstSignal)
	pulse(tm.Wr1Signal)
	pulse(tm.Wr0Signal)
	pulse(tm.Wr0Signal)
	pulse(tm.Wr1Signal)
	require.Equal(t, []uint32{0x1, 0x2}, sec.Received())
}

func TestSecondary_ReadBits(t *testing.T) {
	tm := onepin.NewTiming(onepin.DefaultSlot)
	w := New(Config{})
	sec := NewSecondary(tm, 8, 3)
	w.Attach(sec)
	sec.Reply(0x5)

	w.DriveLow()
	w.DelayUs(tm.RstSignal)
	w.DriveHigh()
	w.DelayUs(tm.RstPresence)

	var got []bool
	for i := 0; i < 3; i++ {
		w.DriveLow()
		w.DelayUs(tm.RdInit)
		w.DriveHigh()
		w.Release()
		w.DelayUs(tm.RdSample)
		got = append(got, w.Sample())
		w.DriveHigh()
		w.DelayUs(tm.RdPause)
	}
	require.Equal(t, []bool{true, false, true}, got)
}

func TestSlots_Classify(t *testing.T) {
	tm := onepin.NewTiming(onepin.DefaultSlot)
	testCases := []struct {
		low    uint32
		expect Kind
	}{
		{1, KindWrite1},
		{tm.Wr1Signal, KindWrite1},
		{tm.Wr1Detect - 1, KindWrite1},
		{tm.Wr1Detect, KindWrite0},
		{tm.Wr0Signal, KindWrite0},
		{tm.Wr0Detect, KindRead},
		{tm.RdInit, KindRead},
		{tm.RdDetect, KindReset},
		{tm.RstSignal, KindReset},
	}
	for _, tc := range testCases {
		require.Equalf(t, tc.expect, classify(tc.low, tm), "low %d", tc.low)
	}
}

func TestSlots_Decode(t *testing.T) {
	tm := onepin.NewTiming(onepin.DefaultSlot)
	w := New(Config{WriteCost: 2})
	w.DriveHigh()
	for _, low := range []uint32{tm.Wr1Signal, tm.Wr0Signal, tm.Wr1Signal, tm.Wr1Signal} {
		w.DriveLow()
		w.DelayUs(low - 2)
		w.DriveHigh()
		w.DelayUs(tm.Slot - 2)
	}
	slots := Slots(w.Trace(), tm)
	require.Len(t, slots, 4)
	require.Equal(t, tm.Wr1Signal, slots[0].Low)
	require.Equal(t, tm.Wr1Signal+tm.Slot, slots[0].Length)
	require.Equal(t, tm.Wr0Signal+tm.Slot, slots[1].Length)
	require.Equal(t, tm.Wr1Signal+tm.Slot-2, slots[3].Length, "last slot runs to the end of the trace")

	v, n := Decode(slots)
	require.Equal(t, 4, n)
	require.Equal(t, uint32(0xd), v)
	require.Equal(t, 3, Count(slots, KindWrite1))
	require.Equal(t, 1, Count(slots, KindWrite0))
	require.Zero(t, Count(slots, KindReset))
}

func TestKind_String(t *testing.T) {
	require.Equal(t, "reset", KindReset.String())
	require.Equal(t, "read", KindRead.String())
	require.Equal(t, "write0", KindWrite0.String())
	require.Equal(t, "write1", KindWrite1.String())
	require.Equal(t, "delay", OpDelay.String())
}
