/*
Copyright 2024 Tim St. Pierre
Terminal rendering of the simulated display
*/
package lcdsim

import (
	"bytes"
	"image/color"
	"io"
	"os"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

var (
	// Yellow-green STN panel, lit and unlit.
	panelLit  = color.NRGBA{R: 0x9A, G: 0xC8, B: 0x2A, A: 0xFF}
	panelDark = color.NRGBA{R: 0x2C, G: 0x3A, B: 0x10, A: 0xFF}
)

// Terminal draws the simulated display as a framed block of text.
type Terminal struct {
	w       io.Writer
	color   bool
	palette ansi256.Palette
	buf     bytes.Buffer
}

// NewTerminal renders to stdout, with colours only when stdout is a
// terminal.
func NewTerminal() *Terminal {
	fd := os.Stdout.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return NewTerminalWriter(colorable.NewColorableStdout(), tty)
}

// NewTerminalWriter renders to w. Without colour the backlight state is
// shown in the frame instead.
func NewTerminalWriter(w io.Writer, useColor bool) *Terminal {
	if !useColor {
		w = colorable.NewNonColorable(w)
	}
	return &Terminal{w: w, color: useColor, palette: *ansi256.Default}
}

// Render draws the current contents of s.
func (t *Terminal) Render(s *Sim) error {
	st := s.State()
	rows := [][]byte{s.Row(0), s.Row(1)}
	if !st.TwoLine {
		rows = rows[:1]
	}
	cols := len(rows[0])

	t.buf.Reset()
	border := "+" + string(bytes.Repeat([]byte{'-'}, cols)) + "+"
	label := " backlight off"
	if st.Backlight {
		label = " backlight on"
	}
	t.buf.WriteString(border + label + "\n")
	edge := "|"
	if t.color {
		bg := panelDark
		if st.Backlight {
			bg = panelLit
		}
		edge = t.palette.Block(bg) + "\033[0m"
	}
	for _, r := range rows {
		t.buf.WriteString(edge)
		for _, c := range r {
			t.buf.WriteRune(printable(c, st.DisplayOn))
		}
		t.buf.WriteString(edge + "\n")
	}
	t.buf.WriteString(border + "\n")
	_, err := t.buf.WriteTo(t.w)
	return err
}

// printable maps a character code to something a terminal can show. CGRAM
// codes and the upper ROM half have no portable equivalent.
func printable(c byte, on bool) rune {
	switch {
	case !on:
		return ' '
	case c < 0x08:
		return '0' + rune(c)
	case c < 0x20 || c >= 0x80:
		return '?'
	default:
		return rune(c)
	}
}
