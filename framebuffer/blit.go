package framebuffer

import (
	"github.com/flavioheleno/ssd1322fb/image4bit"
	"github.com/flavioheleno/ssd1322fb/resource"
)

// SetPixel lights the pixel at virtual x, row y at full intensity. The sibling
// pixel sharing the byte is left as it was.
func (fb *FrameBuffer) SetPixel(vx, y int) Status {
	return fb.OrPixel(vx, y, 0x0F)
}

// OrPixel ORs a 4-bit level into the pixel at virtual x, row y. It never
// darkens a pixel.
func (fb *FrameBuffer) OrPixel(vx, y int, level byte) Status {
	if vx < 0 || y < 0 || vx >= fb.Width() || y >= fb.height {
		return OutOfBounds
	}
	offset, n := image4bit.PixOffset(fb.widthBytes, vx, y)
	fb.pix[offset] = n.Or(fb.pix[offset], level)
	return OK
}

// Pixel returns the 4-bit level at virtual x, row y, or 0 outside the buffer.
func (fb *FrameBuffer) Pixel(vx, y int) byte {
	if vx < 0 || y < 0 || vx >= fb.Width() || y >= fb.height {
		return 0
	}
	offset, n := image4bit.PixOffset(fb.widthBytes, vx, y)
	return n.Get(fb.pix[offset])
}

// Blit copies a rows x columns packed resource to virtual x, row y.
//
// The resource must end strictly before the last byte column and the last row:
// physical_x+columns < WidthBytes and y+rows < Height. Anything else is
// rejected with OutOfBounds and nothing is drawn.
//
// When vx is even the source rows are copied byte for byte, overwriting the
// destination. When vx is odd the source is off by one nibble, so each lit
// source nibble is OR-ed into its destination pixel one at a time; zero nibbles
// are transparent and pixels already lit are never cleared. The OR uses the
// source level rather than full intensity: a gray resource stays gray, and over
// lit pixels the two levels combine bitwise.
func (fb *FrameBuffer) Blit(vx, y, rows, columns int, src []byte) Status {
	if src == nil || rows < 0 || columns < 0 || len(src) < rows*columns {
		return InvalidResource
	}
	px, n := image4bit.ToPhysical(vx)
	if vx < 0 || y < 0 || px+columns >= fb.widthBytes || y+rows >= fb.height {
		return OutOfBounds
	}
	if rows == 0 || columns == 0 {
		return OK
	}

	if n == image4bit.High {
		for i := 0; i < rows; i++ {
			copy(fb.pix[fb.offset(px, y+i):], src[i*columns:(i+1)*columns])
		}
		return OK
	}

	for i := 0; i < rows; i++ {
		for j, b := range src[i*columns : (i+1)*columns] {
			left := image4bit.High.Get(b)
			right := image4bit.Low.Get(b)
			if left != 0 {
				fb.OrPixel(vx+j*2, y+i, left)
			}
			if right != 0 {
				fb.OrPixel(vx+j*2+1, y+i, right)
			}
		}
	}
	return OK
}

// DrawBitmap blits b with its top-left corner at virtual x, row y.
func (fb *FrameBuffer) DrawBitmap(vx, y int, b resource.Bitmap) Status {
	return fb.Blit(vx, y, b.Rows, b.Columns, b.Data)
}
