/*
Copyright 2024 Tim St. Pierre
PCF8574 output port as wired on the common 1602 I2C backpack
*/
package lcd1602

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3"
)

// Expander pins. RW is wired but always driven low; the driver never reads.
const (
	RS        = 0
	WR        = 1
	EN        = 2
	BACKLIGHT = 3
	D4        = 4
	D5        = 5
	D6        = 6
	D7        = 7
)

const (
	bitRS        byte = 1 << RS
	bitEN        byte = 1 << EN
	bitBacklight byte = 1 << BACKLIGHT
	dataMask     byte = 0xF0
)

// ErrNotInitialized is returned by display operations on a Dev whose
// initialization sequence has not completed.
var ErrNotInitialized = errors.New("lcd1602: display not initialized")

// BusError reports a failed single-byte write to the expander, including a
// missing acknowledge.
type BusError struct {
	Addr  uint16
	Value byte
	Err   error
}

func (e *BusError) Error() string {
	return fmt.Sprintf("lcd1602: write 0x%02X to 0x%02X: %v", e.Value, e.Addr, e.Err)
}

func (e *BusError) Unwrap() error {
	return e.Err
}

// port sends raw bytes to the expander. Every byte is its own transaction.
type port struct {
	c    conn.Conn
	addr uint16
}

func (p *port) write(b byte) error {
	if err := p.c.Tx([]byte{b}, nil); err != nil {
		return &BusError{Addr: p.addr, Value: b, Err: err}
	}
	return nil
}

// pinInterpret sets or clears one expander pin in data.
func pinInterpret(pin, data byte, value bool) byte {
	mask := byte(0x01) << pin
	if value {
		return data | mask
	}
	return data &^ mask
}
