package ssd1322

import (
	"bytes"
	"time"

	"github.com/flavioheleno/ssd1322fb/font"
	"github.com/flavioheleno/ssd1322fb/framebuffer"
	"github.com/flavioheleno/ssd1322fb/resource"
)

// The Put* functions draw straight into display RAM without a framebuffer.
// Coordinates are column addresses (4 pixels each) and rows. Each call writes
// only the bytes it covers, so neighbouring pixels inside the same column are
// overwritten with blank.

// Settle times after opening an address window.
const (
	lineDelay   = time.Millisecond
	bitmapDelay = 100 * time.Microsecond
)

// PutHorizontalLine lights length columns of row starting at col.
func (d *Dev) PutHorizontalLine(col, row, length int) error {
	if col < 0 || row < 0 || length < 0 || col+length > d.columns || row >= d.rect.Dy() {
		return errOutOfRange
	}
	if length == 0 {
		return nil
	}
	if err := d.SetAddress(byte(col), byte(row)); err != nil {
		return err
	}
	d.delay(lineDelay)
	return d.TransmitBuffer(bytes.Repeat([]byte{0xFF}, length*2))
}

// PutVerticalLine lights the leftmost (AlignLeft) or rightmost (AlignRight)
// pixel of column col on length rows starting at row.
func (d *Dev) PutVerticalLine(col, row, length int, align framebuffer.Align) error {
	if col < 0 || row < 0 || length < 0 || col >= d.columns || row+length > d.rect.Dy() {
		return errOutOfRange
	}
	data := []byte{0xF0, 0x00}
	if align == framebuffer.AlignRight {
		data = []byte{0x00, 0x0F}
	}
	for i := 0; i < length; i++ {
		if err := d.SetAddress(byte(col), byte(row+i)); err != nil {
			return err
		}
		d.delay(lineDelay)
		if err := d.TransmitBuffer(data); err != nil {
			return err
		}
	}
	return nil
}

// PutRectangle outlines columns col1..col2 and rows row1..row2.
func (d *Dev) PutRectangle(col1, row1, col2, row2 int) error {
	if col1 > col2 || row1 > row2 || col1 < 0 || row1 < 0 || col2 >= d.columns || row2 >= d.rect.Dy() {
		return errOutOfRange
	}
	height := row2 - row1 + 1
	if err := d.PutVerticalLine(col1, row1, height, framebuffer.AlignLeft); err != nil {
		return err
	}
	if err := d.PutVerticalLine(col2, row1, height, framebuffer.AlignRight); err != nil {
		return err
	}
	width := col2 - col1 + 1
	if err := d.PutHorizontalLine(col1, row1, width); err != nil {
		return err
	}
	return d.PutHorizontalLine(col1, row2, width)
}

// PutBitmap writes b with its top-left corner at column col and row. The
// bitmap width must cover whole columns, which resource.FromImage guarantees.
func (d *Dev) PutBitmap(col, row int, b resource.Bitmap) error {
	return d.putPacked(col, row, b.Rows, b.Columns, b.Data)
}

func (d *Dev) putPacked(col, row, rows, columns int, data []byte) error {
	if data == nil || rows < 0 || columns < 0 || columns%2 != 0 || len(data) < rows*columns {
		return errInvalidResource
	}
	if col < 0 || row < 0 || col+columns/2 > d.columns || row+rows > d.rect.Dy() {
		return errOutOfRange
	}
	if columns == 0 {
		return nil
	}
	for i := 0; i < rows; i++ {
		if err := d.SetAddress(byte(col), byte(row+i)); err != nil {
			return err
		}
		d.delay(bitmapDelay)
		if err := d.TransmitBuffer(data[i*columns : (i+1)*columns]); err != nil {
			return err
		}
	}
	return nil
}

// PutString writes s with f, the top of the text line at row. Each glyph
// starts on a column boundary; the column advances by the glyph's advance
// rounded up to whole columns. Runes outside f are skipped. It returns the
// column after the last glyph.
//
// A glyph that does not fit stops the string with an error.
func (d *Dev) PutString(col, row int, f *font.Font, s string) (int, error) {
	for _, r := range s {
		g, ok := f.Glyph(r)
		if !ok {
			continue
		}
		if err := d.putPacked(col, row+g.Baseline, g.Rows, g.Columns, g.Data); err != nil {
			return col, err
		}
		col += max(g.Columns/2, (g.Advance+PixelsPerColumn-1)/PixelsPerColumn)
	}
	return col, nil
}
