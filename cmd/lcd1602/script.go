/*
Copyright 2024 Tim St. Pierre
Display command scripts
*/
package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/shlex"

	lcd1602 "github.com/tstpierre-tc/i2clcd"
)

// runner executes parsed script lines against a display.
type runner struct {
	dev   *lcd1602.Dev
	sleep func(time.Duration)
}

type op struct {
	line int
	text string
	run  func(r *runner) error
}

// parseScript turns display commands, one per line, into ops. Lines are
// split like a shell would; "#" starts a comment. All lines are checked
// before anything is sent to the display.
func parseScript(lines []string) ([]op, error) {
	var ops []op
	for i, l := range lines {
		words, err := shlex.Split(l)
		if err != nil {
			return nil, fmt.Errorf("line %d: %v", i+1, err)
		}
		if len(words) == 0 {
			continue
		}
		run, err := compile(words[0], words[1:])
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %v", i+1, words[0], err)
		}
		ops = append(ops, op{line: i + 1, text: strings.TrimSpace(l), run: run})
	}
	return ops, nil
}

func (r *runner) run(ops []op) error {
	for _, o := range ops {
		if err := o.run(r); err != nil {
			return fmt.Errorf("line %d %q: %w", o.line, o.text, err)
		}
	}
	return nil
}

func compile(name string, args []string) (func(r *runner) error, error) {
	switch name {
	case "clear", "home", "init":
		if len(args) != 0 {
			return nil, fmt.Errorf("takes no arguments")
		}
		switch name {
		case "clear":
			return func(r *runner) error { return r.dev.Clear() }, nil
		case "home":
			return func(r *runner) error { return r.dev.Home() }, nil
		default:
			return func(r *runner) error { return r.dev.Init() }, nil
		}

	case "cursor":
		if len(args) != 2 {
			return nil, fmt.Errorf("want COL ROW")
		}
		col, err := parseByte(args[0])
		if err != nil {
			return nil, err
		}
		row, err := parseByte(args[1])
		if err != nil {
			return nil, err
		}
		return func(r *runner) error { return r.dev.SetCursor(col, row) }, nil

	case "print":
		text := strings.Join(args, " ")
		return func(r *runner) error {
			_, err := r.dev.Print(text)
			return err
		}, nil

	case "type":
		if len(args) != 2 {
			return nil, fmt.Errorf("want TEXT DELAY")
		}
		pause, err := time.ParseDuration(args[1])
		if err != nil {
			return nil, err
		}
		text := args[0]
		return func(r *runner) error {
			for _, c := range lcd1602.CharCodes(text) {
				if err := r.dev.WriteChar(c); err != nil {
					return err
				}
				r.sleep(pause)
			}
			return nil
		}, nil

	case "write":
		if len(args) == 0 {
			return nil, fmt.Errorf("want at least one character code")
		}
		codes := make([]byte, len(args))
		for i, a := range args {
			c, err := parseByte(a)
			if err != nil {
				return nil, err
			}
			codes[i] = c
		}
		return func(r *runner) error {
			_, err := r.dev.Write(codes)
			return err
		}, nil

	case "glyph":
		if len(args) != 9 {
			return nil, fmt.Errorf("want SLOT and 8 rows")
		}
		slot, err := parseByte(args[0])
		if err != nil {
			return nil, err
		}
		if slot > 7 {
			return nil, fmt.Errorf("slot %d out of range 0-7", slot)
		}
		var rows [8]byte
		for i, a := range args[1:] {
			if rows[i], err = parseByte(a); err != nil {
				return nil, err
			}
		}
		return func(r *runner) error { return r.dev.CreateChar(slot, rows) }, nil

	case "backlight", "display", "underline", "blink":
		if len(args) != 1 {
			return nil, fmt.Errorf("want on or off")
		}
		on, err := parseOnOff(args[0])
		if err != nil {
			return nil, err
		}
		switch name {
		case "backlight":
			return func(r *runner) error { return r.dev.SetBacklight(on) }, nil
		case "display":
			return func(r *runner) error { return r.dev.Display(on) }, nil
		case "underline":
			return func(r *runner) error { return r.dev.Cursor(on) }, nil
		default:
			return func(r *runner) error { return r.dev.Blink(on) }, nil
		}

	case "scroll", "move":
		if len(args) != 1 || (args[0] != "left" && args[0] != "right") {
			return nil, fmt.Errorf("want left or right")
		}
		right := args[0] == "right"
		if name == "scroll" {
			return func(r *runner) error { return r.dev.DisplayShift(right) }, nil
		}
		return func(r *runner) error { return r.dev.CursorShift(right) }, nil

	case "sleep":
		if len(args) != 1 {
			return nil, fmt.Errorf("want DURATION")
		}
		d, err := time.ParseDuration(args[0])
		if err != nil {
			return nil, err
		}
		return func(r *runner) error {
			r.sleep(d)
			return nil
		}, nil
	}
	return nil, fmt.Errorf("unknown command")
}

func parseByte(s string) (byte, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, err
	}
	return byte(v), nil
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "1", "true":
		return true, nil
	case "off", "0", "false":
		return false, nil
	}
	return false, fmt.Errorf("%q is not on or off", s)
}

// demoScript walks through the patterns that are easiest to pick out on a
// scope: plain text, both lines, backlight toggling, slow characters and
// an ascending run of character codes.
func demoScript() []string {
	s := []string{
		"# basic text",
		"clear",
		`print "Hello, Scope!"`,
		"sleep 3s",
		"# two lines",
		"clear",
		"cursor 0 0",
		`print "Line 1: I2C"`,
		"cursor 0 1",
		`print "Line 2: Analysis"`,
		"sleep 3s",
		"# backlight",
	}
	for i := 0; i < 5; i++ {
		s = append(s, "backlight off", "sleep 1s", "backlight on", "sleep 1s")
	}
	return append(s,
		"# slow characters",
		"clear",
		"cursor 0 0",
		`type "I2C Waveform" 500ms`,
		"# ascending codes",
		"clear",
		"cursor 0 0",
		"type ABCDEFGHIJKLMNOP 300ms",
	)
}
