package framebuffer

import "github.com/flavioheleno/ssd1322fb/image4bit"

// Align picks which pixel of a byte column a vertical line lights.
type Align uint8

const (
	// AlignLeft lights the high nibble (left pixel).
	AlignLeft Align = iota
	// AlignRight lights the low nibble (right pixel).
	AlignRight
)

// The primitives below take byte column coordinates, not pixels: x selects a
// byte of the row and a horizontal length counts bytes.

// HorizontalLine sets length bytes of row y, starting at byte column x, to 0xFF.
func (fb *FrameBuffer) HorizontalLine(x, y, length int) Status {
	if x < 0 || y < 0 || length < 0 || x+length > fb.widthBytes || y >= fb.height {
		return OutOfBounds
	}
	start := fb.offset(x, y)
	for i := start; i < start+length; i++ {
		fb.pix[i] = 0xFF
	}
	return OK
}

// VerticalLine lights one nibble of byte column x on rows y to y+length-1.
func (fb *FrameBuffer) VerticalLine(x, y, length int, align Align) Status {
	if x < 0 || y < 0 || length < 0 || x >= fb.widthBytes || y+length > fb.height {
		return OutOfBounds
	}
	vx := x * 2
	if align == AlignRight {
		vx++
	}
	for i := 0; i < length; i++ {
		offset, n := image4bit.PixOffset(fb.widthBytes, vx, y+i)
		fb.pix[offset] = n.Put(fb.pix[offset], 0x0F)
	}
	return OK
}

// Rectangle outlines the byte columns x1..x2 and rows y1..y2. The left edge is
// the left pixel of column x1 and the right edge the right pixel of column x2.
func (fb *FrameBuffer) Rectangle(x1, y1, x2, y2 int) Status {
	if x1 > x2 || y1 > y2 || x1 < 0 || y1 < 0 || x2 >= fb.widthBytes || y2 >= fb.height {
		return OutOfBounds
	}
	width, height := x2-x1+1, y2-y1+1
	fb.VerticalLine(x1, y1, height, AlignLeft)
	fb.VerticalLine(x2, y1, height, AlignRight)
	fb.HorizontalLine(x1, y1, width)
	fb.HorizontalLine(x1, y2, width)
	return OK
}
