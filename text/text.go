// Package text lays out strings on a framebuffer with a bitmap font.
//
// A Composer holds the font used for drawing. Switching fonts only affects
// later calls; pixels already in the framebuffer are never touched.
//
//	c := text.New(font.Basic())
//	x := c.DrawString(fb, 0, 0, "Hello, ")
//	c.DrawString(fb, x, 0, "world")
package text

import (
	"github.com/flavioheleno/ssd1322fb/font"
	"github.com/flavioheleno/ssd1322fb/framebuffer"
)

// Composer draws glyphs from its current font.
type Composer struct {
	font *font.Font
}

// New returns a Composer drawing with f.
func New(f *font.Font) *Composer {
	return &Composer{font: f}
}

// SetFont changes the font used by subsequent calls.
func (c *Composer) SetFont(f *font.Font) {
	c.font = f
}

// Font returns the current font.
func (c *Composer) Font() *font.Font {
	return c.font
}

// DrawChar draws r with the top of the text line at row y and the pen at
// virtual x. It returns how far the pen should advance.
//
// A rune the font does not cover yields (0, OutOfRange) and nothing is drawn.
// For a covered rune the advance is returned even when the blit itself is
// rejected, so a clipped character still takes its place in the line.
func (c *Composer) DrawChar(fb *framebuffer.FrameBuffer, x, y int, r rune) (advance int, st framebuffer.Status) {
	g, ok := c.font.Glyph(r)
	if !ok {
		return 0, framebuffer.OutOfRange
	}
	return g.Advance, fb.Blit(x, y+g.Baseline, g.Rows, g.Columns, g.Data)
}

// DrawString draws s starting at virtual x and returns the pen position after
// the last character. Runes outside the font are skipped without moving the pen.
func (c *Composer) DrawString(fb *framebuffer.FrameBuffer, x, y int, s string) int {
	for _, r := range s {
		advance, _ := c.DrawChar(fb, x, y, r)
		x += advance
	}
	return x
}

// Measure returns the width in pixels DrawString would advance for s.
func (c *Composer) Measure(s string) int {
	width := 0
	for _, r := range s {
		if g, ok := c.font.Glyph(r); ok {
			width += g.Advance
		}
	}
	return width
}
