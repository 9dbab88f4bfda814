package render

import (
	"sort"
	"strings"
)

// Mode is the pixel color mode a raster format is encoded with.
type Mode string

const (
	ModeRGB  Mode = "RGB"
	ModeRGBA Mode = "RGBA"
)

// FormatDescriptor describes one supported output format. The tables below
// are built at init time and never mutated, so concurrent reads are safe.
type FormatDescriptor struct {
	Token  string
	MIME   string
	Mode   Mode // canonical color mode for raster output
	Vector bool
}

var barcodeFormats = map[string]FormatDescriptor{
	"png":  {Token: "png", MIME: "image/png", Mode: ModeRGBA},
	"jpeg": {Token: "jpeg", MIME: "image/jpeg", Mode: ModeRGB},
	"bmp":  {Token: "bmp", MIME: "image/bmp", Mode: ModeRGB},
	"svg":  {Token: "svg", MIME: "image/svg+xml", Mode: ModeRGBA, Vector: true},
	"gif":  {Token: "gif", MIME: "image/gif", Mode: ModeRGBA},
	"tiff": {Token: "tiff", MIME: "image/tiff", Mode: ModeRGB},
}

var qrFormats = map[string]FormatDescriptor{
	"png": {Token: "png", MIME: "image/png", Mode: ModeRGBA},
	"svg": {Token: "svg", MIME: "image/svg+xml", Mode: ModeRGBA, Vector: true},
}

// ResolveBarcodeFormat maps an output format token to its descriptor.
func ResolveBarcodeFormat(token string) (FormatDescriptor, *Error) {
	desc, ok := barcodeFormats[strings.ToLower(token)]
	if !ok {
		return FormatDescriptor{}, ErrUnsupportedFormat(token)
	}
	return desc, nil
}

// ResolveQRFormat maps an output format token to its descriptor. QR codes
// support a narrower set than barcodes; anything else is rejected even when
// it is a valid barcode format.
func ResolveQRFormat(token string) (FormatDescriptor, *Error) {
	desc, ok := qrFormats[strings.ToLower(token)]
	if !ok {
		return FormatDescriptor{}, ErrUnsupportedFormat(token)
	}
	return desc, nil
}

// ResolveMode validates an explicitly requested color mode against the
// supported set, defaulting to the descriptor's canonical mode when absent.
func (d FormatDescriptor) ResolveMode(requested string) (Mode, *Error) {
	if requested == "" {
		return d.Mode, nil
	}
	switch Mode(requested) {
	case ModeRGB, ModeRGBA:
		return Mode(requested), nil
	}
	return "", ErrUnsupportedMode(requested)
}

// Filename builds the deterministic download filename. Vector output keeps
// the svg extension, every raster format downloads as png.
func (d FormatDescriptor) Filename(prefix, typeToken string) string {
	ext := "png"
	if d.Vector {
		ext = "svg"
	}
	return prefix + "_" + typeToken + "." + ext
}

func sortedTokens(m map[string]FormatDescriptor) []string {
	out := make([]string, 0, len(m))
	for tok := range m {
		out = append(out, tok)
	}
	sort.Strings(out)
	return out
}

// BarcodeFormats returns the supported barcode output format tokens, sorted.
func BarcodeFormats() []string { return sortedTokens(barcodeFormats) }

// QRFormats returns the supported QR output format tokens, sorted.
func QRFormats() []string { return sortedTokens(qrFormats) }
