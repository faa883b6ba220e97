/*
Copyright 2024 Tim St. Pierre
Image snapshots of the simulated display
*/
package lcdsim

import (
	"image"
	"io"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// Snapshot geometry, in pixels. A cell is one 5x8 character plus a gap.
const (
	dotSize  = 3
	cellW    = 6 * dotSize
	cellH    = 9 * dotSize
	bezel    = 12
	glyphPad = 2
)

// Snapshot draws the visible contents of s. CGRAM characters are drawn from
// their dot patterns, everything else with a bitmap font.
func Snapshot(s *Sim) image.Image {
	st := s.State()
	rows := [][]byte{s.Row(0)}
	if st.TwoLine {
		rows = append(rows, s.Row(1))
	}
	cols := len(rows[0])
	w := cols*cellW + 2*bezel
	h := len(rows)*cellH + 2*bezel

	dc := gg.NewContext(w, h)
	dc.SetRGB255(0x20, 0x20, 0x20)
	dc.Clear()
	if st.Backlight {
		dc.SetColor(panelLit)
	} else {
		dc.SetColor(panelDark)
	}
	dc.DrawRectangle(bezel/2, bezel/2, float64(w-bezel), float64(h-bezel))
	dc.Fill()
	if !st.DisplayOn {
		return dc.Image()
	}

	dc.SetFontFace(basicfont.Face7x13)
	dc.SetRGB255(0x10, 0x18, 0x08)
	for r, line := range rows {
		y := float64(bezel + r*cellH)
		for c, code := range line {
			x := float64(bezel + c*cellW)
			if code < 0x08 {
				drawGlyph(dc, s.Glyph(int(code)), x, y)
				continue
			}
			if code <= ' ' || code >= 0x80 {
				continue
			}
			dc.DrawStringAnchored(string(rune(code)), x+cellW/2, y+cellH/2, 0.5, 0.5)
		}
	}
	return dc.Image()
}

func drawGlyph(dc *gg.Context, g [8]byte, x, y float64) {
	for row, bits := range g {
		for col := 0; col < 5; col++ {
			if bits&(0x10>>col) == 0 {
				continue
			}
			dc.DrawRectangle(x+glyphPad+float64(col*dotSize), y+glyphPad+float64(row*dotSize), dotSize-1, dotSize-1)
		}
	}
	dc.Fill()
}

// WritePNG encodes a snapshot of s to w.
func WritePNG(w io.Writer, s *Sim) error {
	img := Snapshot(s)
	dc := gg.NewContextForImage(img)
	return dc.EncodePNG(w)
}
