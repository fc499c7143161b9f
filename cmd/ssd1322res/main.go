// Command ssd1322res converts images and fonts into Go source declaring
// packed 4-bit resources for the ssd1322fb packages.
//
//	ssd1322res -pkg assets -font Roboto.ttf -size 10 -out assets/roboto.go logo.png
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/flavioheleno/ssd1322fb/font"
	"github.com/flavioheleno/ssd1322fb/internal/gen"
	"github.com/flavioheleno/ssd1322fb/resource"
)

func exit(err error) {
	fmt.Fprintf(os.Stderr, "[ssd1322res] error: %s\n", err.Error())
	os.Exit(1)
}

func runTool() error {
	pkg := flag.String("pkg", "assets", "the package name of the generated file")
	output := flag.String("out", "-", "a file to write the generated source or - to output to STDOUT")
	fontPath := flag.String("font", "", "a TrueType font to rasterise")
	size := flag.Float64("size", 12, "the font size in points")
	dpi := flag.Float64("dpi", font.DefaultDPI, "the font resolution")
	basic := flag.Bool("basic", false, "include the built-in 7x13 font")
	first := flag.Int("first", int(font.FirstPrintable), "the first character of the font")
	last := flag.Int("last", int(font.LastPrintable), "the last character of the font")
	name := flag.String("name", "", "the font name (defaults to the file name and size)")
	register := flag.Bool("register", true, "register fonts with the font package on init")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, "ssd1322res: convert png/jpg/gif/bmp images and ttf fonts to 4bpp Go resources\n\n")
		fmt.Fprint(os.Stderr, "Usage: ssd1322res [options] [image...]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *fontPath == "" && !*basic && flag.NArg() == 0 {
		return errors.New("nothing to convert; pass -font, -basic or image files")
	}

	file := &gen.File{Package: *pkg, Register: *register}

	if *fontPath != "" {
		data, err := os.ReadFile(*fontPath)
		if err != nil {
			return err
		}
		fontName := *name
		if fontName == "" {
			base := strings.TrimSuffix(filepath.Base(*fontPath), filepath.Ext(*fontPath))
			fontName = fmt.Sprintf("%s-%g", strings.ToLower(base), *size)
		}
		f, err := font.ParseTTF(fontName, data, *size, *dpi, rune(*first), rune(*last))
		if err != nil {
			return err
		}
		file.Fonts = append(file.Fonts, f)
	}

	if *basic {
		b := *font.Basic()
		b.Name = "basic7x13-generated"
		file.Fonts = append(file.Fonts, &b)
	}

	for _, path := range flag.Args() {
		b, err := resource.Load(path)
		if err != nil {
			return err
		}
		file.Bitmaps = append(file.Bitmaps, b)
	}

	src, err := gen.Generate(file)
	if err != nil {
		return err
	}

	switch *output {
	case "-":
		_, err = os.Stdout.Write(src)
		return err
	default:
		return os.WriteFile(*output, src, 0o644)
	}
}

func main() {
	if err := runTool(); err != nil {
		exit(err)
	}
}
