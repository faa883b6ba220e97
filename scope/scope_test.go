/*
Copyright 2024 Tim St. Pierre
*/
package scope

import (
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	lcd1602 "github.com/tstpierre-tc/i2clcd"
	"github.com/tstpierre-tc/i2clcd/lcdsim"
)

func TestNarration(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.DebugLevel)
	n := New(logger, log.DebugLevel)
	dev, err := lcd1602.NewI2C(lcdsim.New(0x27, 16), &lcd1602.Opts{
		Delay:    lcd1602.DelayFunc(func(time.Duration) {}),
		Observer: n,
	})
	if err != nil {
		t.Fatal(err)
	}
	entries := hook.AllEntries()
	if len(entries) != 8 {
		t.Fatalf("%d init entries", len(entries))
	}
	if entries[0].Message != "NIBBLE" || entries[0].Data["value"] != "0x3" {
		t.Errorf("first entry %q %v", entries[0].Message, entries[0].Data)
	}
	if entries[4].Message != "CMD function set (4-bit, 2 lines, 5x8)" {
		t.Errorf("function set entry %q", entries[4].Message)
	}
	if entries[4].Data["bus"] != "28 2C 28 88 8C 88" {
		t.Errorf("function set bytes %v", entries[4].Data["bus"])
	}

	hook.Reset()
	_, _ = dev.Print("Hi")
	_ = dev.SetBacklight(false)
	entries = hook.AllEntries()
	if len(entries) != 3 {
		t.Fatalf("%d entries", len(entries))
	}
	if entries[0].Message != "DATA" || entries[0].Data["char"] != "H" || entries[0].Data["bits"] != "01001000" {
		t.Errorf("data entry %v", entries[0].Data)
	}
	last := hook.LastEntry()
	if last.Message != "RAW" || last.Data["backlight"] != false || last.Data["bus"] != "00" {
		t.Errorf("raw entry %q %v", last.Message, last.Data)
	}
	if last.Level != log.DebugLevel {
		t.Errorf("level %v", last.Level)
	}
	if n.Count() != 11 {
		t.Errorf("count %d", n.Count())
	}
}

func TestDescribe(t *testing.T) {
	for cmd, want := range map[byte]string{
		0x00: "no-op",
		0x01: "clear display",
		0x02: "return home",
		0x03: "return home",
		0x06: "entry mode (increment, no shift)",
		0x05: "entry mode (decrement, shift)",
		0x0C: "display control (display on, cursor off, blink off)",
		0x0F: "display control (display on, cursor on, blink on)",
		0x14: "shift (cursor, right)",
		0x18: "shift (display, left)",
		0x28: "function set (4-bit, 2 lines, 5x8)",
		0x30: "function set (8-bit, 1 line, 5x8)",
		0x48: "set CGRAM address 0x08",
		0xC0: "set DDRAM address 0x40",
		0x85: "set DDRAM address 0x05",
	} {
		if got := Describe(cmd); got != want {
			t.Errorf("Describe(0x%02X) = %q, want %q", cmd, got, want)
		}
	}
}
