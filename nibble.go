/*
Copyright 2024 Tim St. Pierre
4-bit transfers and byte framing
*/
package lcd1602

import (
	"fmt"
	"time"
)

// sendNibble presents the high four bits of n on D4-D7 and pulses EN. The
// controller latches on the falling edge, so each level is its own bus
// transaction: lines set up, EN high, EN low.
func (d *Dev) sendNibble(n byte, rs bool) ([3]byte, error) {
	b := n & dataMask
	b = pinInterpret(RS, b, rs)
	b = pinInterpret(BACKLIGHT, b, d.backlight)
	seq := [3]byte{b, b | bitEN, b &^ bitEN}
	waits := [3]time.Duration{SetupDelay, PulseWidth, RecoveryDelay}
	for i, v := range seq {
		if err := d.p.write(v); err != nil {
			return seq, err
		}
		d.delay.Sleep(waits[i])
	}
	return seq, nil
}

// sendByte transfers v as two nibbles, high first. RS is the same for both;
// the controller only assembles a byte from two halves with the same RS.
func (d *Dev) sendByte(v byte, data bool) ([]byte, error) {
	hi, err := d.sendNibble(v&0xF0, data)
	if err != nil {
		return nil, err
	}
	lo, err := d.sendNibble((v<<4)&0xF0, data)
	if err != nil {
		return nil, err
	}
	return append(hi[:], lo[:]...), nil
}

// execDelay is how long the controller needs to process cmd.
func execDelay(cmd byte) time.Duration {
	if cmd == CMD_Clear_Display || cmd&^0x01 == CMD_Return_Home {
		return ClearDelay
	}
	return ExecDelay
}

func (d *Dev) command(cmd byte) error {
	return d.commandWait(cmd, execDelay(cmd))
}

func (d *Dev) commandWait(cmd byte, wait time.Duration) error {
	seq, err := d.sendByte(cmd, false)
	if err != nil {
		return fmt.Errorf("lcd1602: command 0x%02X: %w", cmd, err)
	}
	d.delay.Sleep(wait)
	d.notify(KindCommand, cmd, seq)
	return nil
}

func (d *Dev) data(c byte) error {
	seq, err := d.sendByte(c, true)
	if err != nil {
		return fmt.Errorf("lcd1602: data 0x%02X: %w", c, err)
	}
	d.delay.Sleep(ExecDelay + d.opts.CharDelay)
	d.notify(KindData, c, seq)
	return nil
}

func (d *Dev) notify(k Kind, v byte, seq []byte) {
	if d.opts.Observer == nil {
		return
	}
	d.opts.Observer.Observe(Event{
		Kind:      k,
		Addr:      d.p.addr,
		Value:     v,
		Bytes:     seq,
		Backlight: d.backlight,
	})
}
