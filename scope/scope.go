/*
Copyright 2024 Tim St. Pierre
Bus narration for following the display traffic on an oscilloscope
*/

// Package scope logs every transmission of an lcd1602.Dev, one entry per
// command, character, initialization nibble or raw backlight write, with the
// expander bytes that went over the bus. Attach it with Opts.Observer.
package scope

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	lcd1602 "github.com/tstpierre-tc/i2clcd"
)

// Narrator is an lcd1602.Observer writing to a logrus logger.
type Narrator struct {
	entry *log.Entry
	level log.Level
	count int
}

// New returns a Narrator logging at level through logger. A nil logger uses
// the logrus standard logger.
func New(logger *log.Logger, level log.Level) *Narrator {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Narrator{entry: log.NewEntry(logger), level: level}
}

// Observe implements lcd1602.Observer.
func (n *Narrator) Observe(e lcd1602.Event) {
	n.count++
	fields := log.Fields{
		"seq":       n.count,
		"kind":      e.Kind.String(),
		"addr":      fmt.Sprintf("0x%02X", e.Addr),
		"value":     fmt.Sprintf("0x%02X", e.Value),
		"bits":      fmt.Sprintf("%08b", e.Value),
		"backlight": e.Backlight,
		"bus":       hexBytes(e.Bytes),
	}
	msg := ""
	switch e.Kind {
	case lcd1602.KindData:
		fields["char"] = string(rune(e.Value))
		msg = "DATA"
	case lcd1602.KindCommand:
		msg = "CMD " + Describe(e.Value)
	case lcd1602.KindNibble:
		fields["value"] = fmt.Sprintf("0x%X", e.Value)
		msg = "NIBBLE"
	case lcd1602.KindRaw:
		msg = "RAW"
	}
	n.entry.WithFields(fields).Log(n.level, msg)
}

// Count returns the number of transmissions seen.
func (n *Narrator) Count() int {
	return n.count
}

// Describe names an HD44780 instruction byte.
func Describe(cmd byte) string {
	switch {
	case cmd&lcd1602.CMD_DDRAM_Set != 0:
		return fmt.Sprintf("set DDRAM address 0x%02X", cmd&0x7F)
	case cmd&lcd1602.CMD_CGRAM_Set != 0:
		return fmt.Sprintf("set CGRAM address 0x%02X", cmd&0x3F)
	case cmd&lcd1602.CMD_Function_Set != 0:
		return flags("function set", cmd, []flag{
			{lcd1602.OPT_8_Bit, "8-bit", "4-bit"},
			{lcd1602.OPT_2_Lines, "2 lines", "1 line"},
			{lcd1602.OPT_5x10_Dots, "5x10", "5x8"},
		})
	case cmd&lcd1602.CMD_Cursor_Display_Shift != 0:
		return flags("shift", cmd, []flag{
			{lcd1602.OPT_Display_Shift, "display", "cursor"},
			{lcd1602.OPT_Shift_Right, "right", "left"},
		})
	case cmd&lcd1602.CMD_Display_Control != 0:
		return flags("display control", cmd, []flag{
			{lcd1602.OPT_Enable_Display, "display on", "display off"},
			{lcd1602.OPT_Enable_Cursor, "cursor on", "cursor off"},
			{lcd1602.OPT_Enable_Blink, "blink on", "blink off"},
		})
	case cmd&lcd1602.CMD_Entry_Mode != 0:
		return flags("entry mode", cmd, []flag{
			{lcd1602.OPT_Increment, "increment", "decrement"},
			{lcd1602.OPT_Cursor_Shift, "shift", "no shift"},
		})
	case cmd&lcd1602.CMD_Return_Home != 0:
		return "return home"
	case cmd&lcd1602.CMD_Clear_Display != 0:
		return "clear display"
	}
	return "no-op"
}

type flag struct {
	bit     byte
	on, off string
}

func flags(name string, cmd byte, fs []flag) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		if cmd&f.bit != 0 {
			parts[i] = f.on
		} else {
			parts[i] = f.off
		}
	}
	return name + " (" + strings.Join(parts, ", ") + ")"
}

func hexBytes(b []byte) string {
	parts := make([]string, len(b))
	for i, v := range b {
		parts[i] = fmt.Sprintf("%02X", v)
	}
	return strings.Join(parts, " ")
}

var _ lcd1602.Observer = &Narrator{}
