package ssd1322

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"github.com/flavioheleno/ssd1322fb/framebuffer"
	"github.com/flavioheleno/ssd1322fb/image4bit"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Controller RAM geometry.
const (
	// PixelsPerColumn is the number of pixels covered by one column address.
	PixelsPerColumn = 4
	// RAMColumns is the number of column addresses in display RAM (480 pixels).
	RAMColumns = 120
	// MaxWidth and MaxHeight are the largest panel the controller can drive.
	MaxWidth  = RAMColumns * PixelsPerColumn
	MaxHeight = 128
)

// Command opcodes.
const (
	cmdSetColumn   = 0x15
	cmdWriteRAM    = 0x5C
	cmdSetRow      = 0x75
	cmdNormal      = 0xA6
	cmdInverse     = 0xA7
	cmdDisplayOff  = 0xAE
	cmdDisplayOn   = 0xAF
	cmdSetContrast = 0xC1
)

var (
	errHalted     = errors.New("ssd1322: halted")
	errOutOfRange = errors.New("ssd1322: address out of range")
	errOverflow   = errors.New("ssd1322: data exceeds the address window")

	errInvalidResource = errors.New("ssd1322: invalid resource")
)

// Opts describes the panel wired to the controller.
type Opts struct {
	// W and H are the panel size in pixels. W is a multiple of
	// PixelsPerColumn.
	W, H int

	Rotated       bool // turn the picture by 180°
	Sequential    bool // single instead of dual COM line mode
	SwapTopBottom bool // reverse the COM scan direction

	// RST is wired to RES#; nil skips the hardware reset.
	RST gpio.PinIO
}

// DefaultOpts is a 256x64 panel without reset pin.
var DefaultOpts = Opts{W: 256, H: 64}

func (o *Opts) validate() error {
	if o.W <= 0 || o.W%PixelsPerColumn != 0 || o.W > MaxWidth {
		return errors.New("ssd1322: width must be a multiple of 4 between 4 and 480")
	}
	if o.H <= 0 || o.H > MaxHeight {
		return errors.New("ssd1322: height must be between 1 and 128")
	}
	return nil
}

// Dev is an open SSD1322 controller.
//
// Dev implements framebuffer.Transport, so a framebuffer.FrameBuffer of the
// panel size can be sent with fb.Transfer(dev) or dev.Transfer(fb). Data that
// would overrun the window opened by SetAddress is rejected instead of
// wrapping around it.
type Dev struct {
	c   conn.Conn
	dc  gpio.PinOut // low for commands, high for data
	rst gpio.PinIO

	rect         image.Rectangle
	columns      int // column addresses per row
	columnOffset int // first column address of the panel in the 480 pixel RAM

	frame *framebuffer.FrameBuffer // last frame sent through Draw, Write or Transfer

	// window is the number of bytes left before the write cursor wraps.
	window int

	// delay is used between addressed writes on the direct-draw path and
	// during reset.
	delay func(time.Duration)

	halted bool
}

var (
	_ display.Drawer        = (*Dev)(nil)
	_ framebuffer.Transport = (*Dev)(nil)
)

// NewSPI connects to the controller on p at 10MHz in SPI mode 0, resets it
// when opts.RST is set, runs the init sequence and clears the RAM.
//
// dc drives the D/C# line. A nil opts means DefaultOpts.
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	c, err := p.Connect(10*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("ssd1322: %w", err)
	}

	d := newDev(c, dc, opts)
	if err := d.init(opts); err != nil {
		return nil, err
	}
	return d, nil
}

// newDev builds the handle without talking to the controller. opts must be valid.
func newDev(c conn.Conn, dc gpio.PinOut, opts *Opts) *Dev {
	columns := opts.W / PixelsPerColumn
	return &Dev{
		c:            c,
		dc:           dc,
		rst:          opts.RST,
		rect:         image.Rect(0, 0, opts.W, opts.H),
		columns:      columns,
		columnOffset: (RAMColumns - columns) / 2,
		frame:        framebuffer.New(opts.W/2, opts.H),
		window:       opts.W / 2 * opts.H,
		delay:        time.Sleep,
	}
}

func (d *Dev) init(opts *Opts) error {
	if d.rst != nil {
		if err := d.rst.Out(gpio.Low); err != nil {
			return fmt.Errorf("ssd1322: failed to pull RST low: %w", err)
		}
		d.delay(200 * time.Millisecond)

		if err := d.rst.Out(gpio.High); err != nil {
			return fmt.Errorf("ssd1322: failed to pull RST high: %w", err)
		}
		d.delay(200 * time.Millisecond)
	}

	if err := d.sendCommands(initSequence(opts)); err != nil {
		return err
	}

	if err := d.FillRAM(0x00); err != nil {
		return err
	}

	return d.sendCommand(cmdDisplayOn)
}

// initSequence returns the command bytes configuring the controller for opts.
func initSequence(opts *Opts) []byte {
	cmds := []byte{
		0xFD, 0x12, // command lock off
		cmdDisplayOff,
		0xB3, 0xF2, // oscillator and clock divide
		0xCA, byte(opts.H - 1), // multiplex ratio
		0xA2, 0x00, // vertical offset
		0xA1, 0x00, // start line
	}

	// Remap: horizontal address increment and COM scan remap. On common 256x64
	// modules this puts the left pixel of each byte in the high nibble.
	remap1, remap2 := byte(0x14), byte(0x11)
	if opts.Rotated {
		remap1 = 0x06
	}
	if opts.SwapTopBottom {
		remap1 ^= 0x10 // COM scan direction
	}
	if opts.Sequential {
		remap2 &^= 0x10 // single COM line mode
	}

	return append(cmds,
		0xA0, remap1, remap2,
		0xAB, 0x01, // internal VDD
		0xB4, 0xA0, 0xFD, // external VSL
		cmdSetContrast, 0xFF,
		0xC7, 0x0F, // master current
		0xB9,       // linear gray table
		0xB1, 0xE2, // phase 1 and 2 periods
		0xD1, 0x82, 0x20, // enhancement B
		0xBB, 0x1F, // precharge voltage
		0xB6, 0x08, // second precharge
		0xBE, 0x07, // VCOMH
		cmdNormal,
		0xA9, // partial display off
	)
}

func (d *Dev) sendCommand(cmd byte) error {
	return d.sendCommands([]byte{cmd})
}

// sendCommands pulls D/C# low and sends cmds.
func (d *Dev) sendCommands(cmds []byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return fmt.Errorf("ssd1322: %w", err)
	}
	return d.c.Tx(cmds, nil)
}

func (d *Dev) sendData(data []byte) error {
	if err := d.dc.Out(gpio.High); err != nil {
		return fmt.Errorf("ssd1322: %w", err)
	}
	return d.c.Tx(data, nil)
}

// SetAddress opens a RAM write window starting at column address col (4 pixels
// per column, relative to the panel's left edge) and row, reaching to the
// panel's last column and row. Data written afterwards fills the window left
// to right, top to bottom.
func (d *Dev) SetAddress(col, row byte) error {
	if d.halted {
		return errHalted
	}
	if int(col) >= d.columns || int(row) >= d.rect.Dy() {
		return errOutOfRange
	}
	if err := d.sendCommands([]byte{
		cmdSetColumn, byte(d.columnOffset + int(col)), byte(d.columnOffset + d.columns - 1),
		cmdSetRow, row, byte(d.rect.Dy() - 1),
		cmdWriteRAM,
	}); err != nil {
		return err
	}
	d.window = (d.columns - int(col)) * PixelsPerColumn / 2 * (d.rect.Dy() - int(row))
	return nil
}

// TransmitByte writes one data byte (two pixels) at the RAM write cursor.
func (d *Dev) TransmitByte(b byte) error {
	return d.TransmitBuffer([]byte{b})
}

// TransmitBuffer writes p as display data at the RAM write cursor. p must fit
// in what is left of the current address window.
func (d *Dev) TransmitBuffer(p []byte) error {
	if d.halted {
		return errHalted
	}
	if len(p) > d.window {
		return errOverflow
	}
	if err := d.sendData(p); err != nil {
		return err
	}
	d.window -= len(p)
	return nil
}

// FillRAM sets every byte of the panel's RAM window to v.
func (d *Dev) FillRAM(v byte) error {
	if err := d.SetAddress(0, 0); err != nil {
		return err
	}
	return d.TransmitBuffer(bytes.Repeat([]byte{v}, d.frame.Len()))
}

// NewFrameBuffer allocates a framebuffer matching the panel size.
func (d *Dev) NewFrameBuffer() *framebuffer.FrameBuffer {
	return framebuffer.New(d.rect.Dx()/2, d.rect.Dy())
}

// Transfer sends fb, which must match the panel size, as a full frame.
func (d *Dev) Transfer(fb *framebuffer.FrameBuffer) error {
	if d.halted {
		return errHalted
	}
	if fb.Width() != d.rect.Dx() || fb.Height() != d.rect.Dy() {
		return fmt.Errorf("ssd1322: framebuffer is %dx%d, display is %dx%d", fb.Width(), fb.Height(), d.rect.Dx(), d.rect.Dy())
	}
	if err := fb.Transfer(d); err != nil {
		return err
	}
	copy(d.frame.Bytes(), fb.Bytes())
	return nil
}

// ColorModel implements display.Drawer. It is always image4bit.Gray4Model.
func (d *Dev) ColorModel() color.Model {
	return image4bit.Gray4Model
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Write sends a whole packed frame, two pixels per byte. len(pixels) must
// equal the framebuffer size of the panel.
func (d *Dev) Write(pixels []byte) (int, error) {
	if d.halted {
		return 0, errHalted
	}
	if len(pixels) != d.frame.Len() {
		return 0, errors.New("ssd1322: invalid buffer size")
	}
	copy(d.frame.Bytes(), pixels)
	if err := d.frame.Transfer(d); err != nil {
		return 0, err
	}
	return len(pixels), nil
}

// Draw implements display.Drawer. src is converted to Gray4 and composed into
// the current frame over dst (aligned with sp), then the whole frame is sent.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return errHalted
	}

	dst = dst.Intersect(d.rect)
	if dst.Empty() {
		return nil
	}

	// A full-size packed image needs no conversion.
	if img, ok := src.(*image4bit.HorizontalNibble); ok && dst == d.rect && sp == (image.Point{}) && img.Rect == d.rect {
		copy(d.frame.Bytes(), img.Pix)
	} else {
		draw.Draw(d.frame.Image(), dst, src, sp, draw.Src)
	}
	return d.frame.Transfer(d)
}

// SetContrast changes the segment output current.
func (d *Dev) SetContrast(contrast byte) error {
	if d.halted {
		return errHalted
	}
	return d.sendCommands([]byte{cmdSetContrast, contrast})
}

// Invert switches between normal and inverse display. RAM is left as is.
func (d *Dev) Invert(invert bool) error {
	if d.halted {
		return errHalted
	}
	mode := byte(cmdNormal)
	if invert {
		mode = cmdInverse
	}
	return d.sendCommand(mode)
}

// Halt turns the display off. Every later call on d fails.
func (d *Dev) Halt() error {
	d.halted = true
	return d.sendCommand(cmdDisplayOff)
}

func (d *Dev) String() string {
	return fmt.Sprintf("ssd1322.Dev{%dx%d}", d.rect.Dx(), d.rect.Dy())
}
