// Package font stores proportional bitmap fonts in the packed 4-bit layout used
// by the framebuffer.
//
// A Font is one atlas of glyph bitmaps plus a table indexed by rune-First. Each
// entry locates its bitmap in the atlas and carries the metrics a text renderer
// needs: how far below the line top the bitmap starts (Baseline) and how far the
// cursor moves afterwards (Advance).
//
// Fonts are built from any golang.org/x/image/font.Face with FromFace, from
// TrueType data with ParseTTF, or come precompiled from the ssd1322res tool.
// They are immutable once built and may be shared freely.
package font

import (
	"errors"
	"fmt"
)

// Entry locates one glyph in a font atlas.
type Entry struct {
	Offset   int // first byte in Atlas
	Columns  int // bytes per row
	Rows     int
	Baseline int // rows between the line top and the first bitmap row
	Advance  int // pixels the cursor moves after the glyph
}

// Size returns the number of atlas bytes used by the glyph.
func (e Entry) Size() int {
	return e.Columns * e.Rows
}

// Glyph is a resolved table entry with its bitmap.
type Glyph struct {
	Data     []byte
	Columns  int
	Rows     int
	Baseline int
	Advance  int
}

// Font is a bitmap font covering the runes First..First+len(Table)-1.
type Font struct {
	Name       string
	Atlas      []byte
	Table      []Entry
	First      rune
	Height     int // line height in rows
	MaxDescent int // rows below the baseline
}

// Last returns the last rune covered by f.
func (f *Font) Last() rune {
	return f.First + rune(len(f.Table)) - 1
}

// Contains reports whether r has a table entry.
func (f *Font) Contains(r rune) bool {
	return f != nil && r >= f.First && r-f.First < rune(len(f.Table))
}

// Glyph returns the glyph for r. ok is false when r is outside the font.
//
// Entries reaching past the atlas yield a nil Data slice so that drawing them
// is rejected as an invalid resource.
func (f *Font) Glyph(r rune) (g Glyph, ok bool) {
	if !f.Contains(r) {
		return Glyph{}, false
	}
	e := f.Table[r-f.First]
	g = Glyph{
		Columns:  e.Columns,
		Rows:     e.Rows,
		Baseline: e.Baseline,
		Advance:  e.Advance,
	}
	if e.Offset >= 0 && e.Size() >= 0 && e.Offset+e.Size() <= len(f.Atlas) {
		g.Data = f.Atlas[e.Offset : e.Offset+e.Size() : e.Offset+e.Size()]
		if g.Data == nil {
			g.Data = []byte{}
		}
	}
	return g, true
}

// Validate checks that every table entry lies within the atlas.
func (f *Font) Validate() error {
	if f == nil {
		return errors.New("font: nil font")
	}
	if f.Name == "" {
		return errors.New("font: missing name")
	}
	for i, e := range f.Table {
		if e.Columns < 0 || e.Rows < 0 || e.Offset < 0 || e.Offset+e.Size() > len(f.Atlas) {
			return fmt.Errorf("font: %s: entry %q out of atlas", f.Name, f.First+rune(i))
		}
	}
	return nil
}
