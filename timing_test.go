package onepin

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTiming(t *testing.T) {
	testCases := []struct {
		slot   uint32
		expect Timing
	}{
		{80, Timing{
			Slot:      80,
			RstSignal: 400, RstPresence: 120, RstPrsSample: 80, RstEnd: 120,
			Wr1Signal: 40, Wr1Pause: 40, Wr1Detect: 80,
			Wr0Signal: 120, Wr0Pause: 40, Wr0Detect: 160,
			RdInit: 200, RdDetect: 240, Rd0Signal: 80, RdSample: 40, RdPause: 80,
		}},
		{81, Timing{
			Slot:      81,
			RstSignal: 405, RstPresence: 121, RstPrsSample: 81, RstEnd: 121,
			Wr1Signal: 40, Wr1Pause: 41, Wr1Detect: 81,
			Wr0Signal: 121, Wr0Pause: 41, Wr0Detect: 162,
			RdInit: 202, RdDetect: 243, Rd0Signal: 81, RdSample: 40, RdPause: 81,
		}},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.expect, NewTiming(tc.slot))
	}
}

func TestTimingSlotTotals(t *testing.T) {
	for _, slot := range []uint32{2, 80, 81, 100, 1000} {
		tm := NewTiming(slot)
		require.Equal(t, slot, tm.Wr1Signal+tm.Wr1Pause, "write 1 slot is T")
		require.Equal(t, 2*slot, tm.Wr0Signal+tm.Wr0Pause, "write 0 slot is 2T")
		require.Less(t, tm.Wr1Signal, tm.Wr1Detect)
		require.Less(t, tm.Wr1Detect, tm.Wr0Signal+1)
		require.Less(t, tm.Wr0Signal, tm.Wr0Detect)
		require.Less(t, tm.Wr0Detect, tm.RdInit)
		require.Less(t, tm.RdInit, tm.RdDetect)
		require.Less(t, tm.RdDetect, tm.RstSignal)
	}
}

func TestTimingShortestCorrected(t *testing.T) {
	require.Equal(t, uint32(40), NewTiming(80).ShortestCorrected())
	require.Equal(t, uint32(40), NewTiming(81).ShortestCorrected())
	require.Equal(t, uint32(500), NewTiming(1000).ShortestCorrected())
}
