// Package image4bit implements the packed 4-bit gray pixel format used by the
// SSD1322 display RAM.
//
// A byte holds two horizontally adjacent pixels. The pixel with the even x
// coordinate sits in the high nibble and its right neighbour in the low one:
//
//	x      0   1   2   3
//	level  2   9   0   15
//	byte   0x29    0x0F
//
// The x coordinate of a pixel is its virtual address; the byte holding it is
// the physical one. ToPhysical converts between them and every packed pixel
// access in this module (framebuffer blits and primitives, HorizontalNibble)
// is routed through it.
//
// Gray4 is the color type and Gray4Model converts any color.Color to it.
// HorizontalNibble is a draw.Image over packed rows, either freshly allocated
// or wrapping an existing buffer:
//
//	img := image4bit.FromBuffer(fb.Bytes(), fb.WidthBytes(), fb.Height())
//	draw.Draw(img, image.Rect(0, 0, 16, 8), image.NewUniform(image4bit.Gray4{Y: 6}), image.Point{}, draw.Src)
package image4bit
