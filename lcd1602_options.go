/*
Copyright 2024 Tim St. Pierre
Options for lcd1602 character display
*/
package lcd1602

import (
	"errors"
	"fmt"
	"time"
)

// Opts configures a Dev. The zero value of every field selects the default.
type Opts struct {
	// The I²C slave address of the PCF8574 (0x20-0x27) or PCF8574A (0x38-0x3F)
	I2CAddr uint16
	// How many lines does the display have, 1 or 2
	Lines uint8
	// Characters per line. Print never sends more than this many.
	Cols uint8
	// Extra pause after each character, on top of the controller execution time.
	CharDelay time.Duration
	// Cursor and Blink select the initial display control flags.
	Cursor bool
	Blink  bool
	// BacklightOff starts the display with the backlight dark.
	BacklightOff bool

	// Delay paces every transition. Nil uses SystemDelay.
	Delay Delayer
	// Observer, when set, is told about every transmission.
	Observer Observer
}

var DefaultOpts = Opts{
	I2CAddr: 0x27,
	Lines:   2,
	Cols:    16,
}

const maxCols = 40

func (o *Opts) i2cAddr() (uint16, error) {
	switch o.I2CAddr {
	case 0:
		// Default address.
		return 0x27, nil
	case 0x20, 0x21, 0x22, 0x23, 0x24, 0x25, 0x26, 0x27:
		return o.I2CAddr, nil
	case 0x38, 0x39, 0x3A, 0x3B, 0x3C, 0x3D, 0x3E, 0x3F:
		return o.I2CAddr, nil
	default:
		return 0, errors.New("given address not supported by device")
	}
}

func (o *Opts) geometry() (lines, cols uint8, err error) {
	lines, cols = o.Lines, o.Cols
	if lines == 0 {
		lines = DefaultOpts.Lines
	}
	if cols == 0 {
		cols = DefaultOpts.Cols
	}
	if lines > 2 {
		return 0, 0, fmt.Errorf("%d lines not supported", lines)
	}
	if cols > maxCols {
		return 0, 0, fmt.Errorf("%d cols exceeds the %d byte DDRAM line", cols, maxCols)
	}
	return lines, cols, nil
}
