package font

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/golang/freetype/truetype"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/flavioheleno/ssd1322fb/image4bit"
)

// BasicName is the name of the built-in font returned by Basic.
const BasicName = "basic7x13"

// Printable ASCII, the range covered by Basic.
const (
	FirstPrintable rune = 32
	LastPrintable  rune = 126
)

// DefaultDPI is used by ParseTTF when no resolution is given.
const DefaultDPI = 72

var errEmptyRange = errors.New("font: empty rune range")

// Basic returns the built-in 7x13 font covering printable ASCII.
var Basic = sync.OnceValue(func() *Font {
	f, err := FromFace(BasicName, basicfont.Face7x13, FirstPrintable, LastPrintable)
	if err != nil {
		panic(err)
	}
	return f
})

// ParseTTF rasterises the runes first..last of a TrueType font at the given
// point size. A zero dpi means DefaultDPI.
func ParseTTF(name string, data []byte, size, dpi float64, first, last rune) (*Font, error) {
	tt, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("font: parsing %s: %w", name, err)
	}
	if size <= 0 {
		return nil, fmt.Errorf("font: %s: invalid size %v", name, size)
	}
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	face := truetype.NewFace(tt, &truetype.Options{
		Size:    size,
		DPI:     dpi,
		Hinting: xfont.HintingFull,
	})
	defer face.Close()

	return FromFace(name, face, first, last)
}

// FromFace rasterises the runes first..last of face into a packed font.
//
// Glyph bitmaps start at the pen position; ink left of the pen or above the
// line top is cropped. Blank rows above and below the ink and blank columns on
// the right are trimmed, then the width is padded to a multiple of 4 pixels.
// Runes the face cannot render become empty glyphs advancing like a space, or
// like the first rune of the range the face has when it lacks a space too.
func FromFace(name string, face xfont.Face, first, last rune) (*Font, error) {
	if name == "" {
		return nil, errors.New("font: missing name")
	}
	if first < 0 || last < first {
		return nil, errEmptyRange
	}

	m := face.Metrics()
	ascent := m.Ascent.Ceil()
	descent := m.Descent.Ceil()
	height := m.Height.Ceil()
	if height < ascent+descent {
		height = ascent + descent
	}

	f := &Font{
		Name:       name,
		Atlas:      []byte{},
		Table:      make([]Entry, 0, last-first+1),
		First:      first,
		Height:     height,
		MaxDescent: descent,
	}
	fallback := defaultAdvance(face, first, last)
	for r := first; r <= last; r++ {
		e := f.rasterize(face, r, ascent)
		if e.Advance == 0 && e.Rows == 0 {
			e.Advance = fallback
		}
		f.Table = append(f.Table, e)
	}
	return f, nil
}

// defaultAdvance is the advance given to runes face has no glyph for.
func defaultAdvance(face xfont.Face, first, last rune) int {
	if a, ok := face.GlyphAdvance(' '); ok && a > 0 {
		return a.Round()
	}
	for r := first; r <= last; r++ {
		if a, ok := face.GlyphAdvance(r); ok && a > 0 {
			return a.Round()
		}
	}
	return 0
}

// rasterize appends the bitmap of r to the atlas and returns its entry.
func (f *Font) rasterize(face xfont.Face, r rune, ascent int) Entry {
	dr, mask, maskp, adv, ok := face.Glyph(fixed.P(0, ascent), r)
	e := Entry{Offset: len(f.Atlas), Advance: adv.Round()}
	if !ok || mask == nil {
		if a, _ := face.GlyphAdvance(r); e.Advance == 0 {
			e.Advance = a.Round()
		}
		return e
	}

	level := func(x, y int) byte {
		a := color.AlphaModel.Convert(mask.At(maskp.X+x-dr.Min.X, maskp.Y+y-dr.Min.Y)).(color.Alpha)
		return a.A >> 4
	}

	// Ink bounds in line coordinates, clipped to x >= 0 and 0 <= y < Height.
	ink := image.Rectangle{Min: image.Pt(dr.Max.X, dr.Max.Y), Max: image.Pt(0, 0)}
	clip := dr.Intersect(image.Rect(0, 0, dr.Max.X, f.Height))
	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		for x := clip.Min.X; x < clip.Max.X; x++ {
			if level(x, y) == 0 {
				continue
			}
			ink.Min.Y = min(ink.Min.Y, y)
			ink.Max.Y = max(ink.Max.Y, y+1)
			ink.Max.X = max(ink.Max.X, x+1)
		}
	}
	if ink.Max.Y <= ink.Min.Y {
		return e
	}

	width := (ink.Max.X + 3) / 4 * 4
	dst := image4bit.NewHorizontalNibble(image.Rect(0, 0, width, ink.Max.Y-ink.Min.Y))
	for y := ink.Min.Y; y < ink.Max.Y; y++ {
		for x := clip.Min.X; x < ink.Max.X; x++ {
			dst.SetGray4(x, y-ink.Min.Y, image4bit.Gray4{Y: level(x, y)})
		}
	}

	f.Atlas = append(f.Atlas, dst.Pix...)
	e.Columns = dst.Stride
	e.Rows = dst.Rect.Dy()
	e.Baseline = ink.Min.Y
	return e
}
