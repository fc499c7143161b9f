package font

import (
	"fmt"
	"sort"
)

var (
	// The list of registered fonts.
	availableFonts []*Font

	// Fonts that are always available, built on first use.
	builtinFonts = map[string]func() *Font{
		BasicName: Basic,
	}
)

// Register adds f to the list of fonts FindByName can return. It is meant to be
// called from init functions and is not safe for concurrent use.
func Register(f *Font) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if _, builtin := builtinFonts[f.Name]; builtin || findRegistered(f.Name) != nil {
		return fmt.Errorf("font: %q already registered", f.Name)
	}
	availableFonts = append(availableFonts, f)
	return nil
}

// FindByName looks up a font instance by name. Registered fonts are searched
// first, then the built-in ones. If the font is not found then the function
// returns nil.
func FindByName(name string) *Font {
	if f := findRegistered(name); f != nil {
		return f
	}
	if build, ok := builtinFonts[name]; ok {
		return build()
	}
	return nil
}

// Names returns the names of all available fonts, sorted.
func Names() []string {
	names := make([]string, 0, len(availableFonts)+len(builtinFonts))
	for _, f := range availableFonts {
		names = append(names, f.Name)
	}
	for name := range builtinFonts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func findRegistered(name string) *Font {
	for _, f := range availableFonts {
		if f.Name == name {
			return f
		}
	}
	return nil
}
