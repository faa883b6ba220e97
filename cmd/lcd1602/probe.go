/*
Copyright 2024 Tim St. Pierre
Backpack address detection
*/
package main

import (
	"errors"

	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/i2c"
)

// probeOrder lists PCF8574 and PCF8574A addresses, most common first.
var probeOrder = []uint16{
	0x27, 0x3F,
	0x20, 0x21, 0x22, 0x23, 0x24, 0x25, 0x26,
	0x38, 0x39, 0x3A, 0x3B, 0x3C, 0x3D, 0x3E,
}

var errNotFound = errors.New("no PCF8574 answered on the bus")

// probe returns the first address that acknowledges a one byte read. Reading
// the port does not change the outputs.
func probe(bus i2c.Bus) (uint16, error) {
	var buf [1]byte
	for _, addr := range probeOrder {
		err := bus.Tx(addr, nil, buf[:])
		if err == nil {
			log.WithField("addr", addr).Infof("found expander, port reads 0x%02X", buf[0])
			return addr, nil
		}
		log.WithField("addr", addr).Debugf("no answer: %v", err)
	}
	return 0, errNotFound
}
