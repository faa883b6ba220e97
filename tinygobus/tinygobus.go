/*
Copyright 2024 Tim St. Pierre
Use a TinyGo I2C bus with the lcd1602 driver
*/

// Package tinygobus presents a TinyGo drivers.I2C, such as machine.I2C0, as
// a periph i2c.Bus so lcd1602.NewI2C can drive a display from a
// microcontroller.
package tinygobus

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"tinygo.org/x/drivers"
)

// Bus wraps a drivers.I2C.
type Bus struct {
	name string
	bus  drivers.I2C
}

// New returns b as an i2c.Bus. The name is only used by String.
func New(b drivers.I2C, name string) *Bus {
	if name == "" {
		name = "tinygo"
	}
	return &Bus{name: name, bus: b}
}

func (b *Bus) String() string {
	return fmt.Sprintf("I2C(%s)", b.name)
}

// Tx implements i2c.Bus.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	return b.bus.Tx(addr, w, r)
}

// SetSpeed is not supported; TinyGo sets the frequency when the bus is
// configured.
func (b *Bus) SetSpeed(f physic.Frequency) error {
	return fmt.Errorf("tinygobus: SetSpeed(%s) not supported, configure the bus frequency instead", f)
}

var _ i2c.Bus = &Bus{}
