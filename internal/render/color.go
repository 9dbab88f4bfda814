package render

import (
	"image/color"
	"strings"
)

// namedColors covers the CSS-style names the barcode writer accepts for
// background/foreground parameters.
var namedColors = map[string]color.NRGBA{
	"black":   {0x00, 0x00, 0x00, 0xFF},
	"white":   {0xFF, 0xFF, 0xFF, 0xFF},
	"red":     {0xFF, 0x00, 0x00, 0xFF},
	"green":   {0x00, 0x80, 0x00, 0xFF},
	"lime":    {0x00, 0xFF, 0x00, 0xFF},
	"blue":    {0x00, 0x00, 0xFF, 0xFF},
	"yellow":  {0xFF, 0xFF, 0x00, 0xFF},
	"cyan":    {0x00, 0xFF, 0xFF, 0xFF},
	"magenta": {0xFF, 0x00, 0xFF, 0xFF},
	"gray":    {0x80, 0x80, 0x80, 0xFF},
	"grey":    {0x80, 0x80, 0x80, 0xFF},
	"silver":  {0xC0, 0xC0, 0xC0, 0xFF},
	"maroon":  {0x80, 0x00, 0x00, 0xFF},
	"navy":    {0x00, 0x00, 0x80, 0xFF},
	"teal":    {0x00, 0x80, 0x80, 0xFF},
	"olive":   {0x80, 0x80, 0x00, 0xFF},
	"purple":  {0x80, 0x00, 0x80, 0xFF},
	"orange":  {0xFF, 0xA5, 0x00, 0xFF},
	"brown":   {0xA5, 0x2A, 0x2A, 0xFF},
	"pink":    {0xFF, 0xC0, 0xCB, 0xFF},
}

func hexDigit(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}

func parseHexColor(s string) (color.NRGBA, bool) {
	s = strings.TrimPrefix(s, "#")
	var vals []uint8
	for i := 0; i < len(s); i++ {
		v, ok := hexDigit(s[i])
		if !ok {
			return color.NRGBA{}, false
		}
		vals = append(vals, v)
	}
	switch len(vals) {
	case 3:
		return color.NRGBA{vals[0] * 17, vals[1] * 17, vals[2] * 17, 0xFF}, true
	case 6:
		return color.NRGBA{vals[0]<<4 | vals[1], vals[2]<<4 | vals[3], vals[4]<<4 | vals[5], 0xFF}, true
	}
	return color.NRGBA{}, false
}

// ParseColor resolves a color name or a (#-optional) hex string.
func ParseColor(s string) (color.NRGBA, *Error) {
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, nil
	}
	if c, ok := parseHexColor(s); ok {
		return c, nil
	}
	return color.NRGBA{}, ErrValidation("Color %s is not supported", s)
}

// NormalizeColor converts a color token to the #-prefixed form used in SVG
// output. Prefixing is idempotent; named colors pass through unchanged.
func NormalizeColor(s string) string {
	if s == "" {
		return s
	}
	if _, ok := namedColors[strings.ToLower(s)]; ok {
		return strings.ToLower(s)
	}
	if strings.HasPrefix(s, "#") {
		return s
	}
	return "#" + s
}
