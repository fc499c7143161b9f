// Package framebuffer composes glyphs, bitmaps and line primitives into an
// off-screen 4-bit packed buffer and hands the finished frame to a display.
//
// The buffer is widthBytes*height bytes. Each byte holds two horizontally
// adjacent pixels, so the logical pixel grid is widthBytes*2 pixels wide. Pixel
// (virtual) x coordinates are turned into byte (physical) coordinates by
// image4bit.ToPhysical only; even x is the high nibble, odd x the low nibble.
//
// Drawing calls never fail loudly. A request that does not fit the buffer, or
// that references a short or nil resource, is dropped whole and reported
// through the returned Status; the buffer is left untouched in that case.
//
// A FrameBuffer is not safe for concurrent use. One render pass (fill, draw,
// Transfer) is expected to own it.
package framebuffer

import (
	"fmt"

	"github.com/flavioheleno/ssd1322fb/image4bit"
)

// Default geometry: a 256x64 pixel panel.
const (
	DefaultWidthBytes = 128
	DefaultHeight     = 64
)

// Status reports what happened to a draw request.
type Status uint8

const (
	// OK means the request was drawn (or had nothing to draw).
	OK Status = iota
	// OutOfBounds means the request did not fit in the buffer and was skipped.
	OutOfBounds
	// InvalidResource means the source data was nil or too short and was skipped.
	InvalidResource
	// OutOfRange means a character is not covered by the font and was skipped.
	OutOfRange
)

func (s Status) String() string {
	switch s {
	case OK:
		return "ok"
	case OutOfBounds:
		return "out of bounds"
	case InvalidResource:
		return "invalid resource"
	case OutOfRange:
		return "out of range"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
}

// Transport is the display side of a transfer.
type Transport interface {
	// SetAddress moves the controller write cursor.
	SetAddress(x, y byte) error
	// TransmitBuffer writes p as display data, blocking until done.
	TransmitBuffer(p []byte) error
}

// FrameBuffer is a fixed size packed 4-bit pixel buffer.
type FrameBuffer struct {
	pix        []byte
	widthBytes int
	height     int
}

// New allocates a zeroed framebuffer of widthBytes x height bytes.
func New(widthBytes, height int) *FrameBuffer {
	if widthBytes <= 0 || height <= 0 {
		panic("framebuffer: dimensions must be positive")
	}
	return &FrameBuffer{
		pix:        make([]byte, widthBytes*height),
		widthBytes: widthBytes,
		height:     height,
	}
}

// NewDefault allocates a DefaultWidthBytes x DefaultHeight framebuffer.
func NewDefault() *FrameBuffer {
	return New(DefaultWidthBytes, DefaultHeight)
}

// WidthBytes returns the number of bytes per row.
func (fb *FrameBuffer) WidthBytes() int { return fb.widthBytes }

// Width returns the number of pixels per row.
func (fb *FrameBuffer) Width() int { return fb.widthBytes * 2 }

// Height returns the number of rows.
func (fb *FrameBuffer) Height() int { return fb.height }

// Len returns the buffer size in bytes.
func (fb *FrameBuffer) Len() int { return len(fb.pix) }

// Bytes returns the live buffer in row-major order. It is not a copy.
func (fb *FrameBuffer) Bytes() []byte { return fb.pix }

// Image returns an image view sharing the buffer memory, for use with image/draw.
func (fb *FrameBuffer) Image() *image4bit.HorizontalNibble {
	return image4bit.FromBuffer(fb.pix, fb.widthBytes, fb.height)
}

// Fill sets every byte to v. 0x00 clears all pixels, 0xFF lights them all.
func (fb *FrameBuffer) Fill(v byte) {
	for i := range fb.pix {
		fb.pix[i] = v
	}
}

// Clear turns every pixel off.
func (fb *FrameBuffer) Clear() {
	fb.Fill(0x00)
}

// Transfer sends the whole buffer to t, after moving the write cursor to (0, 0).
func (fb *FrameBuffer) Transfer(t Transport) error {
	if err := t.SetAddress(0, 0); err != nil {
		return fmt.Errorf("framebuffer: set address: %w", err)
	}
	if err := t.TransmitBuffer(fb.pix); err != nil {
		return fmt.Errorf("framebuffer: transmit: %w", err)
	}
	return nil
}

// offset returns the byte index of physical column x in row y.
func (fb *FrameBuffer) offset(x, y int) int {
	return y*fb.widthBytes + x
}
