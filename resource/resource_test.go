package resource

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPaddedWidth(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 0},
		{1, 4},
		{4, 4},
		{5, 8},
		{7, 8},
		{8, 8},
		{13, 16},
	}

	for _, tt := range tests {
		if got := PaddedWidth(tt.in); got != tt.want {
			t.Errorf("PaddedWidth(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFromImagePacking(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 2))
	img.SetGray(0, 0, color.Gray{Y: 0xFF})
	img.SetGray(1, 0, color.Gray{Y: 0x80})
	img.SetGray(2, 1, color.Gray{Y: 0xFF})

	b := FromImage("dot", img)

	if b.Name != "dot" {
		t.Errorf("Name = %q, want dot", b.Name)
	}
	if b.Columns != 2 || b.Rows != 2 {
		t.Fatalf("geometry = %dx%d, want 2x2", b.Columns, b.Rows)
	}
	want := []byte{
		0xF8, 0x00,
		0x00, 0xF0,
	}
	if !bytes.Equal(b.Data, want) {
		t.Errorf("Data = % X, want % X", b.Data, want)
	}
	if b.Width() != 4 {
		t.Errorf("Width() = %d, want 4", b.Width())
	}
}

func TestFromImageOffsetBounds(t *testing.T) {
	img := image.NewGray(image.Rect(10, 20, 14, 21))
	img.SetGray(10, 20, color.Gray{Y: 0xFF})
	img.SetGray(13, 20, color.Gray{Y: 0xFF})

	b := FromImage("offset", img)

	want := []byte{0xF0, 0x0F}
	if !bytes.Equal(b.Data, want) {
		t.Errorf("Data = % X, want % X", b.Data, want)
	}
}

func TestFromImageTransparent(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0})
	img.SetNRGBA(1, 0, color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF})

	b := FromImage("alpha", img)

	if got := b.At(0, 0); got != 0 {
		t.Errorf("transparent pixel = %d, want 0", got)
	}
	if got := b.At(1, 0); got != 0x0F {
		t.Errorf("opaque pixel = %d, want 15", got)
	}
}

func TestBitmapAt(t *testing.T) {
	b := Bitmap{Data: []byte{0x12, 0x34}, Columns: 2, Rows: 1}

	for x, want := range []byte{1, 2, 3, 4} {
		if got := b.At(x, 0); got != want {
			t.Errorf("At(%d, 0) = %d, want %d", x, got, want)
		}
	}
	for _, p := range []image.Point{{-1, 0}, {4, 0}, {0, 1}, {0, -1}} {
		if got := b.At(p.X, p.Y); got != 0 {
			t.Errorf("At(%d, %d) = %d, want 0", p.X, p.Y, got)
		}
	}
}

func TestBitmapValid(t *testing.T) {
	tests := []struct {
		name string
		b    Bitmap
		want bool
	}{
		{"exact", Bitmap{Data: make([]byte, 6), Columns: 3, Rows: 2}, true},
		{"longer", Bitmap{Data: make([]byte, 8), Columns: 3, Rows: 2}, true},
		{"empty", Bitmap{Data: []byte{}}, true},
		{"nil data", Bitmap{Columns: 1, Rows: 1}, false},
		{"short", Bitmap{Data: make([]byte, 5), Columns: 3, Rows: 2}, false},
		{"negative", Bitmap{Data: make([]byte, 1), Columns: -1, Rows: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.b.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	return buf.Bytes()
}

func TestDecode(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 8, 2))
	for x := 0; x < 8; x++ {
		img.SetGray(x, 1, color.Gray{Y: 0xFF})
	}

	b, err := Decode("bar", bytes.NewReader(encodePNG(t, img)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	want := []byte{0, 0, 0, 0, 0xFF, 0xFF, 0xFF, 0xFF}
	if b.Columns != 4 || b.Rows != 2 || !bytes.Equal(b.Data, want) {
		t.Errorf("Decode() = %dx%d % X, want 4x2 % X", b.Columns, b.Rows, b.Data, want)
	}
}

func TestDecodeInvalid(t *testing.T) {
	_, err := Decode("junk", strings.NewReader("not an image"))
	if err == nil {
		t.Fatal("Decode() succeeded on garbage")
	}
	if !strings.Contains(err.Error(), "junk") {
		t.Errorf("error %q does not name the resource", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "01-logo.png")
	if err := os.WriteFile(path, encodePNG(t, image.NewGray(image.Rect(0, 0, 5, 3))), 0o644); err != nil {
		t.Fatal(err)
	}

	b, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if b.Name != "_logo" {
		t.Errorf("Name = %q, want _logo", b.Name)
	}
	if b.Columns != 4 || b.Rows != 3 {
		t.Errorf("geometry = %dx%d, want 4x3", b.Columns, b.Rows)
	}

	if _, err := Load(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("Load() of a missing file succeeded")
	}
}

func TestNameFromPath(t *testing.T) {
	tests := []struct {
		path, want string
	}{
		{"logo.png", "logo"},
		{"/tmp/assets/wifi-on.bmp", "wifi_on"},
		{"8bit face.gif", "bit_face"},
		{"Arrow_Up", "Arrow_Up"},
	}

	for _, tt := range tests {
		if got := NameFromPath(tt.path); got != tt.want {
			t.Errorf("NameFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
