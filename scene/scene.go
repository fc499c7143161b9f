// Package scene renders frames described in TOML files.
//
// A scene fills the framebuffer with a byte and then draws its items in order:
//
//	fill = 0
//	font = "basic7x13"
//
//	[[item]]
//	kind = "rect"
//	x = 0
//	y = 0
//	x2 = 127
//	y2 = 63
//
//	[[item]]
//	kind = "text"
//	x = 4
//	y = 2
//	text = "Hello"
//
//	[[item]]
//	kind = "text"
//	chain = true
//	y = 2
//	text = ", world"
//
// Pixel and text coordinates are in pixels; line and rectangle coordinates are
// byte columns, as in the framebuffer package. A chained text item starts where
// the previous text item ended.
package scene

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/flavioheleno/ssd1322fb/font"
	"github.com/flavioheleno/ssd1322fb/framebuffer"
	"github.com/flavioheleno/ssd1322fb/resource"
	"github.com/flavioheleno/ssd1322fb/text"
)

// Kind selects what an item draws.
type Kind string

const (
	KindText   Kind = "text"
	KindPixel  Kind = "pixel"
	KindHLine  Kind = "hline"
	KindVLine  Kind = "vline"
	KindRect   Kind = "rect"
	KindBitmap Kind = "bitmap"
	// KindFont switches the font used by the following text items.
	KindFont Kind = "font"
)

// Item is one drawing step.
type Item struct {
	Kind   Kind   `toml:"kind"`
	X      int    `toml:"x"`
	Y      int    `toml:"y"`
	X2     int    `toml:"x2"`     // rect
	Y2     int    `toml:"y2"`     // rect
	Length int    `toml:"length"` // hline, vline
	Align  string `toml:"align"`  // vline: "left" (default) or "right"
	Level  *int   `toml:"level"`  // pixel, defaults to 15
	Text   string `toml:"text"`
	Chain  bool   `toml:"chain"`
	Path   string `toml:"path"` // bitmap: image file, or a name in Options.Bitmaps
	Font   string `toml:"font"` // font
}

// Scene is a parsed scene file.
type Scene struct {
	Fill  int    `toml:"fill"`
	Font  string `toml:"font"`
	Items []Item `toml:"item"`

	dir string // base for relative bitmap paths
}

// Options tune Render.
type Options struct {
	// Bitmaps are looked up by item path before the file system.
	Bitmaps map[string]resource.Bitmap
}

// Parse decodes and validates a scene. Unknown keys are rejected.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads a scene file. Relative bitmap paths are resolved against the
// file's directory.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.dir = filepath.Dir(path)
	return s, nil
}

// Validate checks the scene for configuration errors. An empty font selects
// font.BasicName.
func (s *Scene) Validate() error {
	if s.Fill < 0 || s.Fill > 0xFF {
		return fmt.Errorf("scene: fill %d is not a byte", s.Fill)
	}
	if s.Font == "" {
		s.Font = font.BasicName
	}
	if font.FindByName(s.Font) == nil {
		return fmt.Errorf("scene: unknown font %q", s.Font)
	}

	for i, it := range s.Items {
		if err := it.validate(); err != nil {
			return fmt.Errorf("scene: item %d: %w", i+1, err)
		}
	}
	return nil
}

func (it *Item) validate() error {
	switch it.Kind {
	case KindText, KindHLine, KindRect:
	case KindPixel:
		if it.Level != nil && (*it.Level < 0 || *it.Level > 0x0F) {
			return fmt.Errorf("level %d out of 0..15", *it.Level)
		}
	case KindVLine:
		if it.Align != "" && it.Align != "left" && it.Align != "right" {
			return fmt.Errorf("unknown align %q", it.Align)
		}
	case KindBitmap:
		if it.Path == "" {
			return errors.New("bitmap without path")
		}
	case KindFont:
		if font.FindByName(it.Font) == nil {
			return fmt.Errorf("unknown font %q", it.Font)
		}
	case "":
		return errors.New("missing kind")
	default:
		return fmt.Errorf("unknown kind %q", it.Kind)
	}
	return nil
}

// Render fills fb and draws every item. The returned statuses hold one entry
// per item: a request that did not fit is reported there, not as an error.
// Errors are reserved for bitmaps that cannot be loaded.
func (s *Scene) Render(fb *framebuffer.FrameBuffer, opts *Options) ([]framebuffer.Status, error) {
	if opts == nil {
		opts = &Options{}
	}
	fb.Fill(byte(s.Fill))

	c := text.New(font.FindByName(s.Font))
	statuses := make([]framebuffer.Status, 0, len(s.Items))
	penX := 0

	for i, it := range s.Items {
		var st framebuffer.Status
		switch it.Kind {
		case KindText:
			x := it.X
			if it.Chain {
				x = penX
			}
			penX, st = drawText(c, fb, x, it.Y, it.Text)
		case KindPixel:
			level := 0x0F
			if it.Level != nil {
				level = *it.Level
			}
			st = fb.OrPixel(it.X, it.Y, byte(level))
		case KindHLine:
			st = fb.HorizontalLine(it.X, it.Y, it.Length)
		case KindVLine:
			align := framebuffer.AlignLeft
			if it.Align == "right" {
				align = framebuffer.AlignRight
			}
			st = fb.VerticalLine(it.X, it.Y, it.Length, align)
		case KindRect:
			st = fb.Rectangle(it.X, it.Y, it.X2, it.Y2)
		case KindBitmap:
			b, err := s.bitmap(it.Path, opts)
			if err != nil {
				return statuses, fmt.Errorf("scene: item %d: %w", i+1, err)
			}
			st = fb.DrawBitmap(it.X, it.Y, b)
		case KindFont:
			c.SetFont(font.FindByName(it.Font))
		default:
			return statuses, fmt.Errorf("scene: item %d: unknown kind %q", i+1, it.Kind)
		}
		statuses = append(statuses, st)
	}
	return statuses, nil
}

// drawText draws s and returns the pen position with the first failure seen.
func drawText(c *text.Composer, fb *framebuffer.FrameBuffer, x, y int, s string) (int, framebuffer.Status) {
	status := framebuffer.OK
	for _, r := range s {
		advance, st := c.DrawChar(fb, x, y, r)
		if st != framebuffer.OK && status == framebuffer.OK {
			status = st
		}
		x += advance
	}
	return x, status
}

func (s *Scene) bitmap(path string, opts *Options) (resource.Bitmap, error) {
	if b, ok := opts.Bitmaps[path]; ok {
		return b, nil
	}
	if !filepath.IsAbs(path) && s.dir != "" {
		path = filepath.Join(s.dir, path)
	}
	return resource.Load(path)
}
