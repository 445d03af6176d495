package model

import (
	"fmt"
	"strings"
)

// Color is the tag carried by a single unit inside a container.
// Colors have no ordering; two units match only when their tags are equal.
type Color string

const (
	Blue       Color = "blue"
	Green      Color = "green"
	Red        Color = "red"
	Yellow     Color = "yellow"
	Orange     Color = "orange"
	Pink       Color = "pink"
	LightGreen Color = "light-green"
	DarkGreen  Color = "dark-green"
	Cyan       Color = "cyan"
	Purple     Color = "purple"
	Grey       Color = "grey"
	Brown      Color = "brown"
	LightBrown Color = "light-brown"
)

// Colors lists every valid Color in declaration order.
var Colors = []Color{
	Blue, Green, Red, Yellow, Orange, Pink, LightGreen,
	DarkGreen, Cyan, Purple, Grey, Brown, LightBrown,
}

// String returns the string representation of Color.
func (c Color) String() string {
	return string(c)
}

// IsValid checks whether the Color value is one of the predefined colors.
func (c Color) IsValid() bool {
	for _, known := range Colors {
		if c == known {
			return true
		}
	}
	return false
}

// ParseColor converts a color name to a Color.
//
// Matching ignores case as well as '-', '_' and ' ' separators, so
// "LightGreen", "light_green" and "light-green" all resolve to LightGreen.
func ParseColor(s string) (Color, error) {
	want := squashColorName(s)
	for _, known := range Colors {
		if squashColorName(string(known)) == want && want != "" {
			return known, nil
		}
	}
	return "", fmt.Errorf("invalid color: %q (valid: %s)", s, colorNames())
}

// squashColorName lowercases a name and drops separator characters.
func squashColorName(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', ' ':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
}

// colorNames lists the canonical color names, comma-separated, for use in
// error messages.
func colorNames() string {
	names := make([]string, 0, len(Colors))
	for _, c := range Colors {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}
