/*
Copyright 2024 Tim St. Pierre
*/
package main

import (
	"testing"
	"time"

	lcd1602 "github.com/tstpierre-tc/i2clcd"
	"github.com/tstpierre-tc/i2clcd/lcdsim"
)

func TestDisplayOpts(t *testing.T) {
	for _, tc := range []struct {
		addr, lines, cols uint
		want              lcd1602.Opts
	}{
		{0x27, 2, 16, lcd1602.Opts{I2CAddr: 0x27, Lines: 2, Cols: 16}},
		{0, 0, 0, lcd1602.Opts{I2CAddr: 0x27, Lines: 2, Cols: 16}},
		{0x3F, 1, 20, lcd1602.Opts{I2CAddr: 0x3F, Lines: 1, Cols: 20}},
	} {
		got, err := displayOpts(tc.addr, tc.lines, tc.cols)
		if err != nil {
			t.Fatal(err)
		}
		if got.I2CAddr != tc.want.I2CAddr || got.Lines != tc.want.Lines || got.Cols != tc.want.Cols {
			t.Errorf("displayOpts(0x%X, %d, %d) = %+v", tc.addr, tc.lines, tc.cols, got)
		}
	}
}

func TestDisplayOptsOutOfRange(t *testing.T) {
	for _, tc := range []struct{ addr, lines, cols uint }{
		{0x27, 2, 256},
		{0x27, 258, 16},
		{0x127, 2, 16},
	} {
		if _, err := displayOpts(tc.addr, tc.lines, tc.cols); err == nil {
			t.Errorf("displayOpts(0x%X, %d, %d): expected error", tc.addr, tc.lines, tc.cols)
		}
	}
}

func TestSimDefaultAddress(t *testing.T) {
	opts, err := displayOpts(0, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	sim := lcdsim.New(opts.I2CAddr, int(opts.Cols))
	opts.Delay = lcd1602.DelayFunc(func(time.Duration) {})
	dev, err := lcd1602.NewI2C(sim, &opts)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := dev.Print("ok"); err != nil {
		t.Fatal(err)
	}
	if got := sim.Line(0); got != "ok              " {
		t.Errorf("line 0 = %q", got)
	}
}
