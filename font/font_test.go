package font

import (
	"bytes"
	"image"
	"image/color"
	"reflect"
	"testing"

	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
)

// tinyFace is a 3x4 face covering 'a' and 'b'. 'a' has two lit pixels, 'b' is blank.
func tinyFace() *basicfont.Face {
	mask := image.NewAlpha(image.Rect(0, 0, 3, 8))
	mask.SetAlpha(0, 1, color.Alpha{A: 0xFF})
	mask.SetAlpha(2, 2, color.Alpha{A: 0x80})

	return &basicfont.Face{
		Advance: 4,
		Width:   3,
		Height:  4,
		Ascent:  3,
		Descent: 1,
		Mask:    mask,
		Ranges: []basicfont.Range{
			{Low: 'a', High: 'c', Offset: 0},
		},
	}
}

func TestFromFace(t *testing.T) {
	f, err := FromFace("tiny", tinyFace(), 'a', 'b')
	if err != nil {
		t.Fatalf("FromFace() error = %v", err)
	}

	if f.Height != 4 || f.MaxDescent != 1 {
		t.Errorf("metrics = height %d descent %d, want 4 and 1", f.Height, f.MaxDescent)
	}
	if f.First != 'a' || f.Last() != 'b' {
		t.Errorf("range = %q..%q, want 'a'..'b'", f.First, f.Last())
	}

	wantAtlas := []byte{0xF0, 0x00, 0x00, 0x80}
	if !bytes.Equal(f.Atlas, wantAtlas) {
		t.Errorf("Atlas = % X, want % X", f.Atlas, wantAtlas)
	}
	wantTable := []Entry{
		{Offset: 0, Columns: 2, Rows: 2, Baseline: 1, Advance: 4},
		{Offset: 4, Advance: 4},
	}
	if !reflect.DeepEqual(f.Table, wantTable) {
		t.Errorf("Table = %+v, want %+v", f.Table, wantTable)
	}
}

func TestFromFaceMissingRune(t *testing.T) {
	f, err := FromFace("tiny", tinyFace(), 'b', 'd')
	if err != nil {
		t.Fatalf("FromFace() error = %v", err)
	}

	g, ok := f.Glyph('d')
	if !ok {
		t.Fatal("Glyph('d') not found")
	}
	if g.Rows != 0 || g.Columns != 0 || len(g.Data) != 0 {
		t.Errorf("missing rune glyph = %dx%d, want empty", g.Columns, g.Rows)
	}
	if g.Advance != 4 {
		t.Errorf("missing rune Advance = %d, want 4", g.Advance)
	}
	if g.Data == nil {
		t.Error("empty glyph Data is nil")
	}
}

func TestFromFaceNoCoverage(t *testing.T) {
	f, err := FromFace("tiny", tinyFace(), 'x', 'z')
	if err != nil {
		t.Fatalf("FromFace() error = %v", err)
	}
	for i, e := range f.Table {
		if e != (Entry{}) {
			t.Errorf("entry %q = %+v, want zero", f.First+rune(i), e)
		}
	}
}

func TestFromFaceInvalid(t *testing.T) {
	if _, err := FromFace("", tinyFace(), 'a', 'b'); err == nil {
		t.Error("FromFace() with no name succeeded")
	}
	if _, err := FromFace("tiny", tinyFace(), 'b', 'a'); err != errEmptyRange {
		t.Errorf("FromFace() inverted range error = %v, want %v", err, errEmptyRange)
	}
}

func TestGlyph(t *testing.T) {
	f := &Font{
		Name:  "test",
		Atlas: []byte{1, 2, 3, 4, 5, 6},
		Table: []Entry{
			{Offset: 0, Columns: 1, Rows: 2, Baseline: 3, Advance: 4},
			{Offset: 2, Columns: 2, Rows: 2, Advance: 5},
			{Offset: 4, Columns: 2, Rows: 2, Advance: 6},
		},
		First: 'x',
	}

	specs := []struct {
		r        rune
		ok       bool
		wantData []byte
		advance  int
	}{
		{'x', true, []byte{1, 2}, 4},
		{'y', true, []byte{3, 4, 5, 6}, 5},
		{'z', true, nil, 6},
		{'w', false, nil, 0},
		{'{', false, nil, 0},
	}

	for _, spec := range specs {
		g, ok := f.Glyph(spec.r)
		if ok != spec.ok {
			t.Errorf("Glyph(%q) ok = %v, want %v", spec.r, ok, spec.ok)
			continue
		}
		if !bytes.Equal(g.Data, spec.wantData) || (spec.wantData == nil) != (g.Data == nil) {
			t.Errorf("Glyph(%q).Data = %v, want %v", spec.r, g.Data, spec.wantData)
		}
		if g.Advance != spec.advance {
			t.Errorf("Glyph(%q).Advance = %d, want %d", spec.r, g.Advance, spec.advance)
		}
	}

	var nilFont *Font
	if _, ok := nilFont.Glyph('x'); ok {
		t.Error("nil font returned a glyph")
	}
}

func TestValidate(t *testing.T) {
	good := &Font{Name: "ok", Atlas: []byte{0, 0}, Table: []Entry{{Columns: 1, Rows: 2}}}
	if err := good.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	bad := []*Font{
		nil,
		{Atlas: []byte{0}},
		{Name: "short", Atlas: []byte{0}, Table: []Entry{{Columns: 1, Rows: 2}}},
		{Name: "negative", Atlas: []byte{0}, Table: []Entry{{Offset: -1}}},
	}
	for i, f := range bad {
		if err := f.Validate(); err == nil {
			t.Errorf("[%d] Validate() succeeded", i)
		}
	}
}

func TestBasic(t *testing.T) {
	f := Basic()
	if f != Basic() {
		t.Error("Basic() built the font twice")
	}
	if f.Name != BasicName || f.First != FirstPrintable || f.Last() != LastPrintable {
		t.Fatalf("Basic() = %s %q..%q", f.Name, f.First, f.Last())
	}
	if f.Height != 13 || f.MaxDescent != 2 {
		t.Errorf("metrics = height %d descent %d, want 13 and 2", f.Height, f.MaxDescent)
	}

	space, _ := f.Glyph(' ')
	if space.Rows != 0 || space.Advance != 7 {
		t.Errorf("space = %d rows advance %d, want 0 rows advance 7", space.Rows, space.Advance)
	}

	for r := FirstPrintable + 1; r <= LastPrintable; r++ {
		g, ok := f.Glyph(r)
		if !ok || g.Data == nil {
			t.Fatalf("Glyph(%q) missing", r)
		}
		if g.Rows == 0 {
			t.Errorf("Glyph(%q) has no ink", r)
		}
		if g.Advance != 7 {
			t.Errorf("Glyph(%q).Advance = %d, want 7", r, g.Advance)
		}
		if g.Columns > 4 || (g.Columns*2)%4 != 0 {
			t.Errorf("Glyph(%q).Columns = %d, want a multiple of 2 up to 4", r, g.Columns)
		}
		if g.Baseline+g.Rows > f.Height {
			t.Errorf("Glyph(%q) rows %d..%d exceed height %d", r, g.Baseline, g.Baseline+g.Rows, f.Height)
		}
	}
}

func TestParseTTF(t *testing.T) {
	f, err := ParseTTF("goregular", goregular.TTF, 12, 0, 'A', 'Z')
	if err != nil {
		t.Fatalf("ParseTTF() error = %v", err)
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if f.Height <= 0 || f.MaxDescent <= 0 || f.MaxDescent >= f.Height {
		t.Errorf("metrics = height %d descent %d", f.Height, f.MaxDescent)
	}

	i, _ := f.Glyph('I')
	w, _ := f.Glyph('W')
	if i.Rows == 0 || w.Rows == 0 {
		t.Fatal("glyphs have no ink")
	}
	if i.Advance >= w.Advance {
		t.Errorf("advance I = %d, W = %d, want a proportional font", i.Advance, w.Advance)
	}
	if w.Baseline+w.Rows > f.Height-f.MaxDescent+1 {
		t.Errorf("capital W descends: rows %d..%d, height %d", w.Baseline, w.Baseline+w.Rows, f.Height)
	}
}

func TestParseTTFInvalid(t *testing.T) {
	if _, err := ParseTTF("junk", []byte("not a font"), 12, 72, 'a', 'z'); err == nil {
		t.Error("ParseTTF() accepted garbage")
	}
	if _, err := ParseTTF("goregular", goregular.TTF, 0, 72, 'a', 'z'); err == nil {
		t.Error("ParseTTF() accepted a zero size")
	}
}

func TestFindByName(t *testing.T) {
	defer func(origList []*Font) {
		availableFonts = origList
	}(availableFonts)

	availableFonts = []*Font{
		{Name: "foo"},
		{Name: "bar"},
	}

	exp := availableFonts[1]
	if got := FindByName("bar"); got != exp {
		t.Fatalf("expected to get font: %v; got %v", exp, got)
	}

	if got := FindByName(BasicName); got != Basic() {
		t.Fatalf("expected the built-in font for %q; got %v", BasicName, got)
	}

	if got := FindByName("not-existing-font"); got != nil {
		t.Fatalf("expected to get nil for a font that does not exist; got %v", got)
	}
}

func TestRegister(t *testing.T) {
	defer func(origList []*Font) {
		availableFonts = origList
	}(availableFonts)
	availableFonts = nil

	f := &Font{Name: "custom", Atlas: []byte{}, Table: []Entry{{}}}
	if err := Register(f); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if got := FindByName("custom"); got != f {
		t.Errorf("FindByName() = %v, want the registered font", got)
	}

	if err := Register(&Font{Name: "custom"}); err == nil {
		t.Error("Register() accepted a duplicate name")
	}
	if err := Register(&Font{Name: BasicName}); err == nil {
		t.Error("Register() accepted a built-in name")
	}
	if err := Register(&Font{Name: "broken", Table: []Entry{{Columns: 1, Rows: 1}}}); err == nil {
		t.Error("Register() accepted an entry outside the atlas")
	}

	if got, want := Names(), []string{BasicName, "custom"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}
