/*
Copyright 2024 Tim St. Pierre
Simulated 1602 display behind a PCF8574, for running without hardware
*/

// Package lcdsim emulates an HD44780 character display wired to a PCF8574
// backpack. Sim implements i2c.Bus, so a driver writes to it exactly as it
// would to real hardware, and the simulator decodes the expander byte stream
// the way the controller does: data and RS are latched on the falling edge of
// EN, two nibbles make a byte once 4-bit mode is selected, and bit 3 drives
// the backlight.
package lcdsim

import (
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

const (
	pinRS        = 0x01
	pinEN        = 0x04
	pinBacklight = 0x08

	lineLen   = 40
	line2Base = 0x40
)

// ErrNoDevice is returned for transactions to any address but the
// simulated one, like a missing acknowledge on a real bus.
var ErrNoDevice = errors.New("lcdsim: no device at address")

// Sim is a simulated display. The zero value is not usable; use New.
type Sim struct {
	mu sync.Mutex

	addr  uint16
	cols  int
	speed physic.Frequency

	port    byte
	writes  int
	latches int

	eightBit bool
	pending  bool
	high     byte

	ddram     [0x80]byte
	cgram     [64]byte
	ac        byte
	cgMode    bool
	twoLine   bool
	increment bool
	shiftOn   bool
	shift     int

	displayOn bool
	cursor    bool
	blink     bool
}

// New returns a powered-up display answering at addr with cols visible
// characters per line.
func New(addr uint16, cols int) *Sim {
	s := &Sim{addr: addr, cols: cols}
	s.reset()
	return s
}

// reset puts the controller in its power-on state: 8-bit interface, one
// line, display off, DDRAM blank.
func (s *Sim) reset() {
	s.eightBit = true
	s.pending = false
	s.increment = true
	for i := range s.ddram {
		s.ddram[i] = ' '
	}
}

func (s *Sim) String() string {
	return fmt.Sprintf("lcdsim(0x%02X)", s.addr)
}

// SetSpeed implements i2c.Bus.
func (s *Sim) SetSpeed(f physic.Frequency) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.speed = f
	return nil
}

// Close implements i2c.BusCloser.
func (s *Sim) Close() error {
	return nil
}

// Tx implements i2c.Bus. Each written byte becomes the expander's output
// port. A read returns the current port value, as a PCF8574 does.
func (s *Sim) Tx(addr uint16, w, r []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if addr != s.addr {
		return ErrNoDevice
	}
	for _, b := range w {
		s.output(b)
	}
	for i := range r {
		r[i] = s.port
	}
	return nil
}

func (s *Sim) output(b byte) {
	prev := s.port
	s.port = b
	s.writes++
	if prev&pinEN != 0 && b&pinEN == 0 {
		s.latch(prev)
	}
}

// latch handles one falling edge of EN with the lines as they were while EN
// was high.
func (s *Sim) latch(b byte) {
	s.latches++
	n := b >> 4
	rs := b&pinRS != 0
	if s.eightBit {
		// D0-D3 are not wired, the low half reads as zero.
		if !rs {
			s.instruction(n << 4)
		}
		return
	}
	if !s.pending {
		s.high = n
		s.pending = true
		return
	}
	s.pending = false
	v := s.high<<4 | n
	if rs {
		s.writeData(v)
	} else {
		s.instruction(v)
	}
}

func (s *Sim) instruction(v byte) {
	switch {
	case v&0x80 != 0:
		s.ac = v & 0x7F
		s.cgMode = false
	case v&0x40 != 0:
		s.ac = v & 0x3F
		s.cgMode = true
	case v&0x20 != 0:
		s.eightBit = v&0x10 != 0
		s.twoLine = v&0x08 != 0
	case v&0x10 != 0:
		right := v&0x04 != 0
		if v&0x08 != 0 {
			if right {
				s.shift--
			} else {
				s.shift++
			}
		} else {
			s.step(right)
		}
	case v&0x08 != 0:
		s.displayOn = v&0x04 != 0
		s.cursor = v&0x02 != 0
		s.blink = v&0x01 != 0
	case v&0x04 != 0:
		s.increment = v&0x02 != 0
		s.shiftOn = v&0x01 != 0
	case v&0x02 != 0:
		s.ac = 0
		s.cgMode = false
		s.shift = 0
	case v&0x01 != 0:
		for i := range s.ddram {
			s.ddram[i] = ' '
		}
		s.ac = 0
		s.cgMode = false
		s.shift = 0
		s.increment = true
	}
}

func (s *Sim) writeData(v byte) {
	if s.cgMode {
		s.cgram[s.ac&0x3F] = v & 0x1F
		s.ac = (s.ac + 1) & 0x3F
		return
	}
	s.ddram[s.ac&0x7F] = v
	s.step(s.increment)
	if s.shiftOn {
		if s.increment {
			s.shift++
		} else {
			s.shift--
		}
	}
}

// step moves the address counter one position, wrapping between the two
// 40 byte lines in 2-line mode.
func (s *Sim) step(forward bool) {
	if s.cgMode {
		if forward {
			s.ac = (s.ac + 1) & 0x3F
		} else {
			s.ac = (s.ac - 1) & 0x3F
		}
		return
	}
	if !s.twoLine {
		if forward {
			s.ac = (s.ac + 1) % 80
		} else {
			s.ac = (s.ac + 79) % 80
		}
		return
	}
	switch {
	case forward && s.ac == lineLen-1:
		s.ac = line2Base
	case forward && s.ac == line2Base+lineLen-1:
		s.ac = 0
	case forward:
		s.ac++
	case s.ac == 0:
		s.ac = line2Base + lineLen - 1
	case s.ac == line2Base:
		s.ac = lineLen - 1
	default:
		s.ac--
	}
}

// Row returns the character codes visible on row 0 or 1.
func (s *Sim) Row(row int) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.row(row)
}

func (s *Sim) row(row int) []byte {
	out := make([]byte, s.cols)
	base := 0
	if row != 0 {
		if !s.twoLine {
			for i := range out {
				out[i] = ' '
			}
			return out
		}
		base = line2Base
	}
	for c := range out {
		off := ((c+s.shift)%lineLen + lineLen) % lineLen
		out[c] = s.ddram[base+off]
	}
	return out
}

// Line returns row as a string, mapping each character code to the rune of
// the same value.
func (s *Sim) Line(row int) string {
	codes := s.Row(row)
	r := make([]rune, len(codes))
	for i, c := range codes {
		r[i] = rune(c)
	}
	return string(r)
}

// Glyph returns the 5x8 pattern stored in CGRAM slot 0-7.
func (s *Sim) Glyph(slot int) [8]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	var g [8]byte
	copy(g[:], s.cgram[(slot&7)*8:])
	return g
}

// State is a snapshot of the controller and expander.
type State struct {
	FourBit   bool
	TwoLine   bool
	DisplayOn bool
	Cursor    bool
	Blink     bool
	Increment bool
	Backlight bool
	Address   byte
	// Writes counts expander bytes, Latches counts EN falling edges.
	Writes  int
	Latches int
	Speed   physic.Frequency
}

// State returns the current controller state.
func (s *Sim) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		FourBit:   !s.eightBit,
		TwoLine:   s.twoLine,
		DisplayOn: s.displayOn,
		Cursor:    s.cursor,
		Blink:     s.blink,
		Increment: s.increment,
		Backlight: s.port&pinBacklight != 0,
		Address:   s.ac,
		Writes:    s.writes,
		Latches:   s.latches,
		Speed:     s.speed,
	}
}

var _ i2c.BusCloser = &Sim{}
