// Package termview previews SSD1322 frames in a terminal.
//
// A View emulates the controller's display RAM and addressing well enough to
// stand in for the real device as a framebuffer.Transport: SetAddress opens a
// write window and TransmitBuffer fills it left to right, top to bottom,
// wrapping inside the window like the controller does. Every transmission is
// painted on a tcell screen, two pixel rows per terminal cell using the upper
// half block, so a 256x64 panel needs a 256x32 terminal.
package termview

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/flavioheleno/ssd1322fb/framebuffer"
	"github.com/flavioheleno/ssd1322fb/image4bit"
)

// PixelsPerColumn is the width of one column address.
const PixelsPerColumn = 4

const halfBlock = '▀'

var _ framebuffer.Transport = (*View)(nil)

// View paints an emulated display RAM on a tcell screen.
type View struct {
	screen tcell.Screen
	owned  bool // screen was created by Open

	width, height int // pixels
	stride        int // bytes per row
	ram           []byte

	// RAM write window and cursor, in bytes and rows.
	winX, winY int
	curX, curY int

	// Origin of the preview on the screen, in cells.
	originX, originY int

	mu sync.Mutex
}

// New returns a View of width x height pixels drawing on s, which must
// already be initialized. width must be a multiple of 4.
func New(s tcell.Screen, width, height int) (*View, error) {
	if width <= 0 || width%PixelsPerColumn != 0 || height <= 0 {
		return nil, fmt.Errorf("termview: invalid size %dx%d", width, height)
	}
	return &View{
		screen: s,
		width:  width,
		height: height,
		stride: width / 2,
		ram:    make([]byte, width/2*height),
	}, nil
}

// Open initializes the terminal and returns a View owning it.
func Open(width, height int) (*View, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("termview: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("termview: %w", err)
	}
	v, err := New(s, width, height)
	if err != nil {
		s.Fini()
		return nil, err
	}
	v.owned = true
	s.Clear()
	return v, nil
}

// Close restores the terminal if the View opened it.
func (v *View) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.owned {
		v.screen.Fini()
		v.owned = false
	}
}

// Screen returns the underlying screen, for event polling.
func (v *View) Screen() tcell.Screen {
	return v.screen
}

// SetOrigin moves the preview's top-left corner to cell (x, y) and repaints.
func (v *View) SetOrigin(x, y int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.originX, v.originY = x, y
	v.screen.Clear()
	v.paint(0, v.height)
	v.screen.Show()
}

// Size returns the emulated panel size in pixels.
func (v *View) Size() (width, height int) {
	return v.width, v.height
}

// SetAddress opens a write window from column address col (4 pixels) and row
// to the bottom right of the panel.
func (v *View) SetAddress(col, row byte) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if int(col)*PixelsPerColumn >= v.width || int(row) >= v.height {
		return errors.New("termview: address out of range")
	}
	v.winX, v.winY = int(col)*PixelsPerColumn/2, int(row)
	v.curX, v.curY = v.winX, v.winY
	return nil
}

// TransmitBuffer writes p at the cursor and shows the result.
func (v *View) TransmitBuffer(p []byte) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if len(p) == 0 {
		return nil
	}
	first, last := v.curY, v.curY
	wrapped := false
	for _, b := range p {
		v.ram[v.curY*v.stride+v.curX] = b
		last = max(last, v.curY)
		v.curX++
		if v.curX == v.stride {
			v.curX = v.winX
			v.curY++
			if v.curY == v.height {
				v.curY = v.winY
				wrapped = true
			}
		}
	}
	if wrapped {
		first, last = v.winY, v.height-1
	}
	v.paint(first, last+1)
	v.screen.Show()
	return nil
}

// Pixel returns the 4-bit level of pixel (x, y) in the emulated RAM.
func (v *View) Pixel(x, y int) byte {
	v.mu.Lock()
	defer v.mu.Unlock()

	if x < 0 || y < 0 || x >= v.width || y >= v.height {
		return 0
	}
	offset, n := image4bit.PixOffset(v.stride, x, y)
	return n.Get(v.ram[offset])
}

// Gray returns the terminal color of a 4-bit level.
func Gray(level byte) tcell.Color {
	c := int32(level&0x0F) * 17
	return tcell.NewRGBColor(c, c, c)
}

// paint redraws the cells covering pixel rows y0 up to y1.
func (v *View) paint(y0, y1 int) {
	for cy := y0 / 2; cy*2 < y1; cy++ {
		for x := 0; x < v.width; x++ {
			top := v.level(x, cy*2)
			bottom := v.level(x, cy*2+1)
			style := tcell.StyleDefault.Foreground(Gray(top)).Background(Gray(bottom))
			v.screen.SetContent(v.originX+x, v.originY+cy, halfBlock, nil, style)
		}
	}
}

func (v *View) level(x, y int) byte {
	if y >= v.height {
		return 0
	}
	offset, n := image4bit.PixOffset(v.stride, x, y)
	return n.Get(v.ram[offset])
}
