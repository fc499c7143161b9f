// Package ssd1322 drives a SSD1322 OLED controller over SPI and serves as the
// display end of the framebuffer engine in this module.
//
// The SSD1322 is a 4-bit grayscale OLED controller with a 480×128 pixel RAM.
// Panels are usually 256×64; a narrower panel is centered in the RAM, so for a
// 256 pixel panel the first column address is 0x1C.
//
// Pixels have 16 gray levels and are packed two per byte, the left one in the
// high nibble. One column address covers 4 pixels (2 bytes). Contrast
// (SetContrast) and inversion (Invert) are controller commands and do not touch
// display RAM.
//
// # Wiring
//
// The driver uses the 4-wire SPI interface. Besides the bus it needs one GPIO
// for D/C# and optionally one for RES#:
//
//	Panel    Host (Raspberry Pi pin names)
//	VCC      3.3V, or 5V on modules with a regulator
//	GND      GND
//	SCLK     SPI0 SCLK (GPIO11)
//	SDIN     SPI0 MOSI (GPIO10)
//	CS#      SPI0 CE0 (GPIO8), or tied low
//	D/C#     any GPIO, GPIO25 in the examples
//	RES#     any GPIO, optional
//
// # Basic Usage
//
// Compose a frame with the framebuffer, font and text packages and send it:
//
//	package main
//
//	import (
//		"log"
//
//		"github.com/flavioheleno/ssd1322fb"
//		"github.com/flavioheleno/ssd1322fb/font"
//		"github.com/flavioheleno/ssd1322fb/text"
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/conn/v3/spi/spireg"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		if _, err := host.Init(); err != nil {
//			log.Fatal(err)
//		}
//		spiBus, err := spireg.Open("")
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer spiBus.Close()
//
//		dev, err := ssd1322.NewSPI(spiBus, gpioreg.ByName("GPIO25"), nil)
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer dev.Halt()
//
//		fb := dev.NewFrameBuffer()
//		fb.Rectangle(0, 0, fb.WidthBytes()-1, fb.Height()-1)
//		text.New(font.Basic()).DrawString(fb, 4, 2, "Hello")
//
//		if err := dev.Transfer(fb); err != nil {
//			log.Fatal(err)
//		}
//	}
//
// # Reset
//
// Opts.RST names the GPIO wired to RES#. NewSPI then holds it low for 200ms
// and waits another 200ms after releasing it before sending the init
// sequence. Leave it nil to rely on the power-on reset:
//
//	dev, err := ssd1322.NewSPI(spiBus, dcPin, &ssd1322.Opts{W: 256, H: 64, RST: gpioreg.ByName("GPIO24")})
//
// # Drawing Modes
//
// Framebuffer: draw into a framebuffer.FrameBuffer and send it with Transfer.
// Dev implements framebuffer.Transport, so fb.Transfer(dev) works as well.
//
// image.Image: Dev is a periph.io display.Drawer. Draw composes any image into
// the current frame (converting colors to image4bit.Gray4) and sends the whole
// frame. Write sends a raw packed frame.
//
// Direct: PutHorizontalLine, PutVerticalLine, PutRectangle, PutBitmap and
// PutString write into display RAM without a framebuffer, opening an address
// window per row. They work in column addresses and are slow; they suit small
// updates on memory starved targets.
//
// # Panel Size
//
// Opts.W must be a multiple of 4 up to 480 and Opts.H at most 128. nil Opts
// means DefaultOpts, a 256×64 panel.
//
// # Datasheet
//
// https://www.displayfuture.com/Display/datasheet/controller/SSD1322.pdf
package ssd1322
