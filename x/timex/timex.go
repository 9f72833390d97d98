package timex

import (
	"time"

	"wdtgroom/x/mathx"
)

// LFOscHz is the low-frequency oscillator rate used by tick-based timers.
const LFOscHz = 32768

// NowMs returns Unix milliseconds as int64.
func NowMs() int64 { return time.Now().UnixMilli() }

// LFTicks converts d to 32.768 kHz ticks, saturating at the uint32 range.
func LFTicks(d time.Duration) uint32 {
	if d <= 0 {
		return 0
	}
	secs, rem := uint64(d/time.Second), uint64(d%time.Second)
	t := secs*LFOscHz + rem*LFOscHz/uint64(time.Second)
	return uint32(mathx.Min(t, uint64(^uint32(0))))
}

// FromLFTicks converts ticks back to a duration.
func FromLFTicks(ticks uint32) time.Duration {
	return time.Duration(uint64(ticks) * uint64(time.Second) / LFOscHz)
}
