/*
Copyright 2024 Tim St. Pierre
Controls a 1602 character LCD display using I2C backpack
Thanks to Dave Cheney for figuring out the registers!
*/
package lcd1602

import (
	"fmt"
	"unicode/utf8"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
)

const (
	// Commands
	CMD_Clear_Display        = 0x01
	CMD_Return_Home          = 0x02
	CMD_Entry_Mode           = 0x04
	CMD_Display_Control      = 0x08
	CMD_Cursor_Display_Shift = 0x10
	CMD_Function_Set         = 0x20
	CMD_CGRAM_Set            = 0x40
	CMD_DDRAM_Set            = 0x80

	// Options
	OPT_Increment      = 0x02 // CMD_Entry_Mode
	OPT_Cursor_Shift   = 0x01 // CMD_Entry_Mode
	OPT_Enable_Display = 0x04 // CMD_Display_Control
	OPT_Enable_Cursor  = 0x02 // CMD_Display_Control
	OPT_Enable_Blink   = 0x01 // CMD_Display_Control
	OPT_Display_Shift  = 0x08 // CMD_Cursor_Display_Shift
	OPT_Shift_Right    = 0x04 // CMD_Cursor_Display_Shift 0 = Left
	OPT_8_Bit          = 0x10 // CMD_Function_Set 0 = 4 bit
	OPT_2_Lines        = 0x08 // CMD_Function_Set 0 = 1 line
	OPT_5x10_Dots      = 0x04 // CMD_Function_Set 0 = 5x8 dots

	// Second line DDRAM offset
	Line2Offset = 0x40
)

// Dev is a 1602 style display behind a PCF8574 backpack.
//
// A Dev is not safe for concurrent use. Interleaving two operations would
// mix their nibbles in the controller.
type Dev struct {
	p     port
	delay Delayer
	opts  Opts
	lines uint8
	cols  uint8

	initialized   bool
	backlight     bool
	displayEnable bool
	cursor        bool
	blink         bool
	displayShift  bool
	shiftRight    bool
}

func (d *Dev) String() string {
	if d.p.c == nil {
		return "lcd1602{no bus}"
	}
	return fmt.Sprintf("lcd1602{%s}", d.p.c)
}

// NewI2C returns a new device that communicates over I²C. The display is
// initialized before NewI2C returns; on error no Dev is returned.
//
// Use default options if nil is used.
func NewI2C(b i2c.Bus, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	addr, err := opts.i2cAddr()
	if err != nil {
		return nil, fmt.Errorf("lcd1602 %x: %v", opts.I2CAddr, err)
	}
	return makeDev(&i2c.Dev{Bus: b, Addr: addr}, addr, opts)
}

// New returns a device writing through c, which must already be bound to
// the expander. Opts.I2CAddr is only used to label errors and events.
func New(c conn.Conn, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	addr, err := opts.i2cAddr()
	if err != nil {
		return nil, fmt.Errorf("lcd1602 %x: %v", opts.I2CAddr, err)
	}
	return makeDev(c, addr, opts)
}

func makeDev(c conn.Conn, addr uint16, opts *Opts) (*Dev, error) {
	lines, cols, err := opts.geometry()
	if err != nil {
		return nil, fmt.Errorf("lcd1602 %x: %v", addr, err)
	}
	d := &Dev{
		p:             port{c: c, addr: addr},
		delay:         opts.Delay,
		opts:          *opts,
		lines:         lines,
		cols:          cols,
		backlight:     !opts.BacklightOff,
		displayEnable: true,
		cursor:        opts.Cursor,
		blink:         opts.Blink,
	}
	if d.delay == nil {
		d.delay = SystemDelay
	}
	if err := d.Init(); err != nil {
		return nil, err
	}
	return d, nil
}

// Halt blanks the screen and turns off the backlight.
func (d *Dev) Halt() error {
	if err := d.Clear(); err != nil {
		return err
	}
	return d.SetBacklight(false)
}

// Cols returns the characters per line Print honours.
func (d *Dev) Cols() int {
	return int(d.cols)
}

// Lines returns the number of display lines.
func (d *Dev) Lines() int {
	return int(d.lines)
}

// Backlight reports the backlight state asserted on every write.
func (d *Dev) Backlight() bool {
	return d.backlight
}

// SetBacklight changes the backlight bit carried by every expander write and
// applies it immediately with a bare write of that bit alone.
func (d *Dev) SetBacklight(on bool) error {
	if !d.initialized {
		return ErrNotInitialized
	}
	d.backlight = on
	b := pinInterpret(BACKLIGHT, 0x00, on)
	if err := d.p.write(b); err != nil {
		return fmt.Errorf("lcd1602: backlight: %w", err)
	}
	d.notify(KindRaw, b, []byte{b})
	return nil
}

// Clear blanks the display and moves the cursor to the first column of the
// first line.
func (d *Dev) Clear() error {
	if !d.initialized {
		return ErrNotInitialized
	}
	return d.command(CMD_Clear_Display)
}

// Home moves the cursor to the first column of the first line and undoes any
// display shift.
func (d *Dev) Home() error {
	if !d.initialized {
		return ErrNotInitialized
	}
	return d.command(CMD_Return_Home)
}

// SetCursor moves the DDRAM address to col on row, both zero based. Row 0 is
// the first line; any other row selects the second.
//
// The position is not checked against the display geometry. Values past the
// end of a line land in DDRAM that is not visible, or wrap into the other
// line, exactly as the controller decides.
func (d *Dev) SetCursor(col, row byte) error {
	if !d.initialized {
		return ErrNotInitialized
	}
	return d.command(ddramAddress(col, row))
}

func ddramAddress(col, row byte) byte {
	address := col
	if row != 0 {
		address = Line2Offset + col
	}
	return CMD_DDRAM_Set | address
}

// Print writes text at the cursor, one byte per character. Characters beyond
// Cols are dropped without error. See CharCodes for the encoding.
//
// It returns the number of characters sent.
func (d *Dev) Print(text string) (int, error) {
	if !d.initialized {
		return 0, ErrNotInitialized
	}
	codes := CharCodes(text)
	if len(codes) > int(d.cols) {
		codes = codes[:d.cols]
	}
	for i, c := range codes {
		if err := d.data(c); err != nil {
			return i, err
		}
	}
	return len(codes), nil
}

// CharCodes maps text to controller character codes, one per character.
// Runes keep only their low byte, which indexes the character ROM. A byte
// that is not valid UTF-8, such as "\xdf" for the degree sign, is a ROM code
// already and passes through unchanged.
func CharCodes(text string) []byte {
	out := make([]byte, 0, len(text))
	for len(text) > 0 {
		r, size := utf8.DecodeRuneInString(text)
		c := byte(r)
		if r == utf8.RuneError && size == 1 {
			c = text[0]
		}
		out = append(out, c)
		text = text[size:]
	}
	return out
}

// Write sends every byte of buf as character data, without truncation.
func (d *Dev) Write(buf []byte) (int, error) {
	if !d.initialized {
		return 0, ErrNotInitialized
	}
	for i, c := range buf {
		if err := d.data(c); err != nil {
			return i, err
		}
	}
	return len(buf), nil
}

// WriteChar sends one character code, for example a CreateChar slot.
func (d *Dev) WriteChar(char byte) error {
	if !d.initialized {
		return ErrNotInitialized
	}
	return d.data(char)
}

// CreateChar stores a 5x8 glyph in CGRAM slot 0-7. Each row uses the low five
// bits. The cursor is left at the first column of the first line.
func (d *Dev) CreateChar(slot byte, rows [8]byte) error {
	if !d.initialized {
		return ErrNotInitialized
	}
	if err := d.command(CMD_CGRAM_Set | (slot&0x07)<<3); err != nil {
		return err
	}
	for _, r := range rows {
		if err := d.data(r & 0x1F); err != nil {
			return err
		}
	}
	return d.command(CMD_DDRAM_Set)
}

// Display turns the whole display on or off without touching DDRAM.
func (d *Dev) Display(on bool) error {
	if !d.initialized {
		return ErrNotInitialized
	}
	d.displayEnable = on
	return d.writeDisplaySwitch()
}

// Cursor shows or hides the underline cursor.
func (d *Dev) Cursor(on bool) error {
	if !d.initialized {
		return ErrNotInitialized
	}
	d.cursor = on
	return d.writeDisplaySwitch()
}

// Blink turns the blinking block cursor on or off.
func (d *Dev) Blink(on bool) error {
	if !d.initialized {
		return ErrNotInitialized
	}
	d.blink = on
	return d.writeDisplaySwitch()
}

// SetDisplayShift makes every write shift the display instead of the cursor.
func (d *Dev) SetDisplayShift(value bool) error {
	if !d.initialized {
		return ErrNotInitialized
	}
	d.displayShift = value
	return d.writeEntryMode()
}

// SetShiftRight makes the cursor move left after each write, for right to
// left text.
func (d *Dev) SetShiftRight(value bool) error {
	if !d.initialized {
		return ErrNotInitialized
	}
	d.shiftRight = value
	return d.writeEntryMode()
}

// DisplayShift scrolls the whole display one position.
func (d *Dev) DisplayShift(right bool) error {
	if !d.initialized {
		return ErrNotInitialized
	}
	option := byte(CMD_Cursor_Display_Shift | OPT_Display_Shift)
	if right {
		option = option | OPT_Shift_Right
	}
	return d.command(option)
}

// CursorShift moves the cursor one position without writing.
func (d *Dev) CursorShift(right bool) error {
	if !d.initialized {
		return ErrNotInitialized
	}
	option := byte(CMD_Cursor_Display_Shift)
	if right {
		option = option | OPT_Shift_Right
	}
	return d.command(option)
}

func (d *Dev) displaySwitch() byte {
	option := byte(CMD_Display_Control)
	if d.displayEnable {
		option = option | OPT_Enable_Display
	}
	if d.cursor {
		option = option | OPT_Enable_Cursor
	}
	if d.blink {
		option = option | OPT_Enable_Blink
	}
	return option
}

func (d *Dev) writeDisplaySwitch() error {
	return d.command(d.displaySwitch())
}

func (d *Dev) entryMode() byte {
	option := byte(CMD_Entry_Mode)
	if !d.shiftRight {
		option = option | OPT_Increment
	}
	if d.displayShift {
		option = option | OPT_Cursor_Shift
	}
	return option
}

func (d *Dev) writeEntryMode() error {
	return d.command(d.entryMode())
}

var _ conn.Resource = &Dev{}
