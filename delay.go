/*
Copyright 2024 Tim St. Pierre
Timing for the HD44780 interface
*/
package lcd1602

import (
	"time"

	"periph.io/x/host/v3/cpu"
)

// Minimum timings used by the driver. Each one is at or above the HD44780
// datasheet figure it stands for.
const (
	// Data lines stable before EN rises.
	SetupDelay = 1 * time.Microsecond
	// EN high time, datasheet minimum 450ns.
	PulseWidth = 1 * time.Microsecond
	// After EN falls, datasheet minimum 37µs.
	RecoveryDelay = 50 * time.Microsecond
	// Execution time of most instructions, datasheet 37µs.
	ExecDelay = 50 * time.Microsecond
	// Clear Display and Return Home, datasheet 1.52ms.
	ClearDelay = 2 * time.Millisecond

	PowerOnDelay = 50 * time.Millisecond
	Reset1Delay  = 4500 * time.Microsecond
	ResetDelay   = 150 * time.Microsecond
)

// Delayer blocks for at least the given duration.
type Delayer interface {
	Sleep(d time.Duration)
}

// DelayFunc adapts a function to Delayer.
type DelayFunc func(d time.Duration)

func (f DelayFunc) Sleep(d time.Duration) {
	f(d)
}

// spinLimit is the longest delay that busy-waits instead of sleeping. The
// scheduler cannot be trusted for microsecond sleeps.
const spinLimit = time.Millisecond

// SystemDelay spins for short delays and sleeps for long ones.
var SystemDelay Delayer = DelayFunc(func(d time.Duration) {
	if d <= 0 {
		return
	}
	if d < spinLimit {
		cpu.Nanospin(d)
		return
	}
	time.Sleep(d)
})
