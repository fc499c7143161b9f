// Package resource holds packed 4-bit bitmaps and converts ordinary images into them.
//
// A Bitmap row is Columns bytes long; each byte carries two pixels, the left one in
// the high nibble. Widths are padded with blank pixels to a multiple of 4 pixels so
// that a bitmap always covers whole SSD1322 column addresses.
package resource

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	// Registered decoders for Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"

	"github.com/flavioheleno/ssd1322fb/image4bit"
)

// PixelsPerColumn is the number of pixels covered by one controller column address.
const PixelsPerColumn = 4

// Bitmap is an immutable packed 4-bit image.
type Bitmap struct {
	Name    string
	Data    []byte
	Columns int // bytes per row
	Rows    int
}

// Width returns the bitmap width in pixels.
func (b Bitmap) Width() int {
	return b.Columns * 2
}

// Valid reports whether Data holds at least Rows*Columns bytes.
func (b Bitmap) Valid() bool {
	return b.Data != nil && b.Columns >= 0 && b.Rows >= 0 && len(b.Data) >= b.Columns*b.Rows
}

// At returns the 4-bit level of pixel (x, y), or 0 outside the bitmap.
func (b Bitmap) At(x, y int) byte {
	if x < 0 || y < 0 || x >= b.Width() || y >= b.Rows || !b.Valid() {
		return 0
	}
	offset, n := image4bit.PixOffset(b.Columns, x, y)
	return n.Get(b.Data[offset])
}

// PaddedWidth rounds a pixel width up to a whole number of column addresses.
func PaddedWidth(w int) int {
	return (w + PixelsPerColumn - 1) / PixelsPerColumn * PixelsPerColumn
}

// FromImage converts img to a packed bitmap. Colors go through image4bit.Gray4Model;
// the padding added on the right is left blank.
func FromImage(name string, img image.Image) Bitmap {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	dst := image4bit.NewHorizontalNibble(image.Rect(0, 0, PaddedWidth(w), h))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.Set(x, y, img.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}

	return Bitmap{
		Name:    name,
		Data:    dst.Pix,
		Columns: dst.Stride,
		Rows:    h,
	}
}

// Decode reads a PNG, GIF, JPEG or BMP image from r and converts it.
func Decode(name string, r io.Reader) (Bitmap, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return Bitmap{}, fmt.Errorf("resource: decoding %s: %w", name, err)
	}
	return FromImage(name, img), nil
}

// Load decodes the image file at path. The bitmap is named after the file.
func Load(path string) (Bitmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return Bitmap{}, fmt.Errorf("resource: %w", err)
	}
	defer f.Close()

	return Decode(NameFromPath(path), f)
}

// NameFromPath derives an identifier from a file name: the extension and leading
// digits are dropped and punctuation becomes '_'.
func NameFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.TrimLeft(base, "0123456789")
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, base)
}
