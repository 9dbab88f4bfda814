package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/codabar"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/code39"
	"github.com/boombuler/barcode/code93"
	"github.com/boombuler/barcode/ean"
	"github.com/boombuler/barcode/twooffive"
)

// DefaultBarcodeType is used when the type parameter is absent.
const DefaultBarcodeType = "code128"

// EncoderFunc encodes text into an abstract one-dimensional symbol.
type EncoderFunc func(text string) (barcode.Barcode, error)

func encodeEANFixed(text string, digits int) (barcode.Barcode, error) {
	if len(text) != digits && len(text) != digits-1 {
		return nil, fmt.Errorf("ean requires %d digits (or %d without checksum)", digits, digits-1)
	}
	return ean.Encode(text)
}

// encodeUPC treats the payload as UPC-A, which is EAN-13 with a leading zero.
func encodeUPC(text string) (barcode.Barcode, error) {
	if len(text) != 12 && len(text) != 11 {
		return nil, fmt.Errorf("upc requires 12 digits (or 11 without checksum)")
	}
	return ean.Encode("0" + text)
}

// symbologies maps the public type tokens to encoder constructors. The token
// names follow the original API surface; aliases (jan, nw-7, upca) share an
// encoder with their canonical symbology.
var symbologies = map[string]EncoderFunc{
	"codabar": func(text string) (barcode.Barcode, error) { return codabar.Encode(text) },
	"nw-7":    func(text string) (barcode.Barcode, error) { return codabar.Encode(text) },
	"code128": func(text string) (barcode.Barcode, error) { return code128.Encode(text) },
	"code39": func(text string) (barcode.Barcode, error) {
		return code39.Encode(strings.ToUpper(text), false, true)
	},
	"code93": func(text string) (barcode.Barcode, error) {
		return code93.Encode(strings.ToUpper(text), false, true)
	},
	"ean":   func(text string) (barcode.Barcode, error) { return ean.Encode(text) },
	"ean8":  func(text string) (barcode.Barcode, error) { return encodeEANFixed(text, 8) },
	"ean13": func(text string) (barcode.Barcode, error) { return encodeEANFixed(text, 13) },
	"jan":   func(text string) (barcode.Barcode, error) { return encodeEANFixed(text, 13) },
	"itf":   func(text string) (barcode.Barcode, error) { return twooffive.Encode(text, true) },
	"upc":   encodeUPC,
	"upca":  encodeUPC,
}

// ResolveSymbology maps a barcode type token to its encoder. The empty token
// falls back to code128. Unknown tokens return a typed failure, never a panic.
func ResolveSymbology(token string) (EncoderFunc, *Error) {
	if token == "" {
		token = DefaultBarcodeType
	}
	enc, ok := symbologies[strings.ToLower(token)]
	if !ok {
		return nil, ErrUnsupportedSymbology(token)
	}
	return enc, nil
}

// BarcodeTypes returns all supported barcode type tokens, sorted.
func BarcodeTypes() []string {
	out := make([]string, 0, len(symbologies))
	for tok := range symbologies {
		out = append(out, tok)
	}
	sort.Strings(out)
	return out
}

// QRTypes returns the supported QR value type tokens.
func QRTypes() []string { return []string{"text", "number"} }

// CoerceQRPayload applies the QR type rule to the payload. Type "number"
// requires the text to parse as a base-10 integer; any other token is a
// passthrough (the lenient historical behavior).
func CoerceQRPayload(text, typeToken string) (string, *Error) {
	if typeToken != "number" {
		return text, nil
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return "", ErrValidation("%s", err.Error())
	}
	return strconv.FormatInt(n, 10), nil
}
