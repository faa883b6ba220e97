/*
Copyright 2024 Tim St. Pierre
Power-on initialization of the HD44780 in 4-bit mode
*/
package lcd1602

import (
	"errors"
	"fmt"
	"time"
)

var errNoBus = errors.New("lcd1602: no bus")

type stepOp int

const (
	opWait stepOp = iota
	opNibble
	opCommand
)

// step is one transfer of the initialization sequence and the minimum time
// the controller needs before the next one.
type step struct {
	name  string
	op    stepOp
	value byte
	delay time.Duration
}

// initSequence is the datasheet "initializing by instruction" procedure for
// 4-bit operation. Until the 0x2 nibble the controller may be in 8-bit mode,
// so the first four transfers are single nibbles.
func (d *Dev) initSequence() []step {
	return []step{
		{name: "power settle", op: opWait, delay: PowerOnDelay},
		{name: "reset 1", op: opNibble, value: 0x3, delay: Reset1Delay},
		{name: "reset 2", op: opNibble, value: 0x3, delay: ResetDelay},
		{name: "reset 3", op: opNibble, value: 0x3, delay: ResetDelay},
		{name: "4-bit mode", op: opNibble, value: 0x2, delay: ResetDelay},
		{name: "function set", op: opCommand, value: d.functionSet(), delay: ExecDelay},
		{name: "display control", op: opCommand, value: d.displaySwitch(), delay: ExecDelay},
		{name: "clear", op: opCommand, value: CMD_Clear_Display, delay: ClearDelay},
		{name: "entry mode", op: opCommand, value: d.entryMode(), delay: ExecDelay},
	}
}

// Init runs the initialization sequence. The Dev is unusable until it
// returns nil; a failure part way leaves the controller in an unknown state.
func (d *Dev) Init() error {
	d.initialized = false
	if d.p.c == nil {
		return errNoBus
	}
	if d.delay == nil {
		d.delay = SystemDelay
	}
	for _, s := range d.initSequence() {
		var (
			seq  []byte
			kind Kind
			err  error
		)
		switch s.op {
		case opNibble:
			var n [3]byte
			n, err = d.sendNibble(s.value<<4, false)
			seq, kind = n[:], KindNibble
		case opCommand:
			seq, err = d.sendByte(s.value, false)
			kind = KindCommand
		}
		if err != nil {
			return fmt.Errorf("lcd1602: init %s: %w", s.name, err)
		}
		d.delay.Sleep(s.delay)
		if s.op != opWait {
			d.notify(kind, s.value, seq)
		}
	}
	d.initialized = true
	return nil
}

func (d *Dev) functionSet() byte {
	option := byte(CMD_Function_Set)
	if d.lines == 2 {
		option |= OPT_2_Lines
	}
	return option
}
