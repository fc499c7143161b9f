package image4bit

import (
	"image"
	"image/color"
)

// Gray4 is a gray level between 0 (off) and 15 (full intensity). Bits above
// the low nibble of Y are ignored.
type Gray4 struct {
	Y uint8
}

// RGBA implements color.Color.
func (c Gray4) RGBA() (r, g, b, a uint32) {
	// Replicate the nibble: 0x9 becomes 0x9999.
	y := uint32(c.Y&0x0F) * 0x1111
	return y, y, y, 0xFFFF
}

// Level returns the 4-bit intensity of c.
func (c Gray4) Level() byte {
	return c.Y & 0x0F
}

func toGray4(c color.Color) color.Color {
	if g, ok := c.(Gray4); ok {
		return g
	}
	r, g, b, a := c.RGBA()
	if a == 0 {
		return Gray4{}
	}
	// 0.299R + 0.587G + 0.114B on 16-bit channels, premultiplied by alpha.
	y := (299*r + 587*g + 114*b + 500) / 1000
	return Gray4{Y: uint8(y >> 12)}
}

// Gray4Model maps any color to a Gray4 by luminance. Transparent
// colors map to 0.
var Gray4Model = color.ModelFunc(toGray4)

// HorizontalNibble is a 4-bit grayscale image where pixels are stored in
// horizontal nibble packing.
type HorizontalNibble struct {
	Pix    []byte // packed pixels, even x in the high nibble
	Stride int    // distance in bytes between vertically adjacent pixels
	Rect   image.Rectangle
}

// NewHorizontalNibble allocates a blank image covering r. It panics when the
// width of r is odd.
func NewHorizontalNibble(r image.Rectangle) *HorizontalNibble {
	w, h := r.Dx(), r.Dy()
	if w < 0 || h < 0 {
		return &HorizontalNibble{Rect: r}
	}
	if w%2 != 0 {
		panic("image4bit: width must be even")
	}
	return &HorizontalNibble{
		Pix:    make([]byte, w/2*h),
		Stride: w / 2,
		Rect:   r,
	}
}

// FromBuffer wraps an existing packed buffer without copying it. Writes through
// the image land in buf.
func FromBuffer(buf []byte, stride, height int) *HorizontalNibble {
	if stride < 0 || height < 0 || len(buf) < stride*height {
		panic("image4bit: buffer too small for geometry")
	}
	return &HorizontalNibble{
		Pix:    buf[:stride*height],
		Stride: stride,
		Rect:   image.Rect(0, 0, stride*2, height),
	}
}

func (p *HorizontalNibble) ColorModel() color.Model {
	return Gray4Model
}

func (p *HorizontalNibble) Bounds() image.Rectangle {
	return p.Rect
}

// At implements image.Image.
func (p *HorizontalNibble) At(x, y int) color.Color {
	return p.Gray4At(x, y)
}

// Gray4At is At without the interface conversion. Points outside the image
// read as 0.
func (p *HorizontalNibble) Gray4At(x, y int) Gray4 {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return Gray4{}
	}
	offset, n := p.pixOffset(x, y)
	return Gray4{Y: n.Get(p.Pix[offset])}
}

// Set converts c with Gray4Model and stores it at (x, y).
func (p *HorizontalNibble) Set(x, y int, c color.Color) {
	p.SetGray4(x, y, Gray4Model.Convert(c).(Gray4))
}

// SetGray4 sets the Gray4 color of the pixel at (x, y), replacing the previous level.
func (p *HorizontalNibble) SetGray4(x, y int, c Gray4) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	offset, n := p.pixOffset(x, y)
	p.Pix[offset] = n.Put(p.Pix[offset], c.Y)
}

// OrGray4 ORs the level of c into the pixel at (x, y). Bits already lit stay lit.
func (p *HorizontalNibble) OrGray4(x, y int, c Gray4) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	offset, n := p.pixOffset(x, y)
	p.Pix[offset] = n.Or(p.Pix[offset], c.Y)
}

// pixOffset returns the byte offset and nibble for the pixel at (x, y).
func (p *HorizontalNibble) pixOffset(x, y int) (int, Nibble) {
	return PixOffset(p.Stride, x-p.Rect.Min.X, y-p.Rect.Min.Y)
}
