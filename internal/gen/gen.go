// Package gen writes fonts and bitmaps as Go source, so that they can be
// compiled into firmware-like programs without touching the file system.
package gen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"strings"
	"unicode"

	"github.com/flavioheleno/ssd1322fb/font"
	"github.com/flavioheleno/ssd1322fb/resource"
)

// bytesPerLine is the number of data bytes emitted per source line.
const bytesPerLine = 16

// File is the content of one generated source file.
type File struct {
	Package string
	Fonts   []*font.Font
	Bitmaps []resource.Bitmap

	// Register adds an init function registering every font with the font
	// package, making them available to font.FindByName.
	Register bool
}

// Generate returns the gofmt-ed source of f.
func Generate(f *File) ([]byte, error) {
	if !isIdent(f.Package) {
		return nil, fmt.Errorf("gen: invalid package name %q", f.Package)
	}
	if len(f.Fonts) == 0 && len(f.Bitmaps) == 0 {
		return nil, errors.New("gen: nothing to generate")
	}

	var (
		buf  bytes.Buffer
		seen = make(map[string]string)
	)
	claim := func(name string) (string, error) {
		v := VarName(name)
		if prev, dup := seen[v]; dup {
			return "", fmt.Errorf("gen: %q and %q both map to %s", prev, name, v)
		}
		seen[v] = name
		return v, nil
	}

	fmt.Fprint(&buf, "// Code generated by ssd1322res; DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\nimport (\n", f.Package)
	if len(f.Fonts) > 0 {
		fmt.Fprint(&buf, "\"github.com/flavioheleno/ssd1322fb/font\"\n")
	}
	if len(f.Bitmaps) > 0 {
		fmt.Fprint(&buf, "\"github.com/flavioheleno/ssd1322fb/resource\"\n")
	}
	fmt.Fprint(&buf, ")\n\nvar (\n")

	var fontVars []string
	for _, fnt := range f.Fonts {
		if err := fnt.Validate(); err != nil {
			return nil, err
		}
		v, err := claim(fnt.Name)
		if err != nil {
			return nil, err
		}
		writeFont(&buf, v, fnt)
		fontVars = append(fontVars, v)
	}
	for _, b := range f.Bitmaps {
		if !b.Valid() {
			return nil, fmt.Errorf("gen: bitmap %q is shorter than %dx%d", b.Name, b.Columns, b.Rows)
		}
		v, err := claim(b.Name)
		if err != nil {
			return nil, err
		}
		writeBitmap(&buf, v, b)
	}
	fmt.Fprint(&buf, ")\n")

	if f.Register && len(fontVars) > 0 {
		fmt.Fprint(&buf, "\nfunc init() {\n")
		for _, v := range fontVars {
			fmt.Fprintf(&buf, "if err := font.Register(%s); err != nil {\npanic(err)\n}\n", v)
		}
		fmt.Fprint(&buf, "}\n")
	}

	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("gen: formatting: %w", err)
	}
	return out, nil
}

func writeFont(buf *bytes.Buffer, v string, f *font.Font) {
	fmt.Fprintf(buf, "// %s covers %q to %q.\n", v, f.First, f.Last())
	fmt.Fprintf(buf, "%s = &font.Font{\nName: %q,\nFirst: %d,\nHeight: %d,\nMaxDescent: %d,\n", v, f.Name, f.First, f.Height, f.MaxDescent)
	fmt.Fprint(buf, "Table: []font.Entry{\n")
	for i, e := range f.Table {
		fmt.Fprintf(buf, "{Offset: %d, Columns: %d, Rows: %d, Baseline: %d, Advance: %d}, // %q\n",
			e.Offset, e.Columns, e.Rows, e.Baseline, e.Advance, f.First+rune(i))
	}
	fmt.Fprint(buf, "},\nAtlas: ")
	writeBytes(buf, f.Atlas)
	fmt.Fprint(buf, ",\n}\n\n")
}

func writeBitmap(buf *bytes.Buffer, v string, b resource.Bitmap) {
	fmt.Fprintf(buf, "%s = resource.Bitmap{\nName: %q,\nColumns: %d,\nRows: %d,\nData: ", v, b.Name, b.Columns, b.Rows)
	writeBytes(buf, b.Data[:b.Columns*b.Rows])
	fmt.Fprint(buf, ",\n}\n\n")
}

func writeBytes(buf *bytes.Buffer, data []byte) {
	fmt.Fprint(buf, "[]byte{\n")
	for i, b := range data {
		if i != 0 && i%bytesPerLine == 0 {
			buf.WriteByte('\n')
		}
		fmt.Fprintf(buf, "0x%02x, ", b)
	}
	fmt.Fprint(buf, "\n}")
}

// VarName turns a resource name into an exported Go identifier: separators
// are dropped and each word is capitalised. Names starting with a digit get
// an R prefix.
func VarName(name string) string {
	var sb strings.Builder
	upper := true
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		sb.WriteRune(r)
	}
	s := sb.String()
	if s == "" || unicode.IsDigit(rune(s[0])) {
		s = "R" + s
	}
	return s
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r != '_' && !unicode.IsLetter(r) && (i == 0 || !unicode.IsDigit(r)) {
			return false
		}
	}
	return true
}
