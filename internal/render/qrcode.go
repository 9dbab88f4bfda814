package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

// QRScaleLimit is the hard cap on the scale parameter.
const QRScaleLimit = 100

// QROptions carries the renderer parameters for one QR request. Scale is
// pixels per module, QuietZone is measured in modules.
type QROptions struct {
	Scale       int
	QuietZone   int
	ModuleColor string
	Background  string
	Encoding    string
	Title       string
}

func qrEncoding(token string) (qr.Encoding, error) {
	switch strings.ToLower(token) {
	case "":
		return qr.Auto, nil
	case "numeric":
		return qr.Numeric, nil
	case "alphanumeric":
		return qr.AlphaNumeric, nil
	case "unicode", "utf-8", "utf8", "binary":
		return qr.Unicode, nil
	}
	return qr.Auto, fmt.Errorf("Encoding %s is not supported", token)
}

// QRCode builds the QR symbol for payload and serializes it in the requested
// format. Scale bounds are enforced here so an oversized request never
// reaches the encoder.
func QRCode(payload string, desc FormatDescriptor, opts QROptions) (out []byte, rerr *Error) {
	defer func() {
		if r := recover(); r != nil {
			out, rerr = nil, &Error{Kind: KindRenderFailure, Message: fmt.Sprintf("QRCode render error: %v", r)}
		}
	}()

	if opts.Scale > QRScaleLimit {
		return nil, ErrValidation("QRCode scale is too large!")
	}
	if opts.Scale < 1 {
		opts.Scale = 1
	}
	if opts.QuietZone < 0 {
		opts.QuietZone = 0
	}

	if _, cerr := ParseColor(NormalizeColor(opts.ModuleColor)); cerr != nil {
		return nil, cerr
	}
	if opts.Background != "" {
		if _, cerr := ParseColor(NormalizeColor(opts.Background)); cerr != nil {
			return nil, cerr
		}
	}

	mode, err := qrEncoding(opts.Encoding)
	if err != nil {
		return nil, wrapEncoder(err, "QRCode render error")
	}

	symbol, err := qr.Encode(payload, qr.M, mode)
	if err != nil {
		return nil, wrapEncoder(err, "QRCode render error")
	}

	if desc.Vector {
		return qrSVG(symbol, opts)
	}
	return qrPNG(symbol, opts)
}

func qrPNG(symbol barcode.Barcode, opts QROptions) ([]byte, *Error) {
	module, cerr := ParseColor(NormalizeColor(opts.ModuleColor))
	if cerr != nil {
		return nil, cerr
	}
	background := color.NRGBA{0xFF, 0xFF, 0xFF, 0xFF}
	if opts.Background != "" {
		background, cerr = ParseColor(NormalizeColor(opts.Background))
		if cerr != nil {
			return nil, cerr
		}
	}

	n := symbol.Bounds().Dx()
	size := (n + 2*opts.QuietZone) * opts.Scale
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	x0, y0 := symbol.Bounds().Min.X, symbol.Bounds().Min.Y
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if !isDark(symbol, x0+x, y0+y) {
				continue
			}
			px := (opts.QuietZone + x) * opts.Scale
			py := (opts.QuietZone + y) * opts.Scale
			cell := image.Rect(px, py, px+opts.Scale, py+opts.Scale)
			draw.Draw(img, cell, image.NewUniform(module), image.Point{}, draw.Src)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, wrapEncoder(err, "QRCode render error")
	}
	return buf.Bytes(), nil
}

// qrSVG renders the symbol in module coordinates, one horizontal run per
// rect, with the computed filename as the document title.
func qrSVG(symbol barcode.Barcode, opts QROptions) ([]byte, *Error) {
	n := symbol.Bounds().Dx()
	span := n + 2*opts.QuietZone
	sizePx := span * opts.Scale
	module := NormalizeColor(opts.ModuleColor)

	var buf bytes.Buffer
	buf.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	fmt.Fprintf(&buf, "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%d\" height=\"%d\" viewBox=\"0 0 %d %d\">\n",
		sizePx, sizePx, span, span)
	if opts.Title != "" {
		fmt.Fprintf(&buf, "<title>%s</title>\n", xmlEscaper.Replace(opts.Title))
	}
	if opts.Background != "" {
		fmt.Fprintf(&buf, "<rect width=\"100%%\" height=\"100%%\" fill=\"%s\"/>\n", NormalizeColor(opts.Background))
	}

	x0, y0 := symbol.Bounds().Min.X, symbol.Bounds().Min.Y
	fmt.Fprintf(&buf, "<g fill=\"%s\">\n", module)
	for y := 0; y < n; y++ {
		for x := 0; x < n; {
			if !isDark(symbol, x0+x, y0+y) {
				x++
				continue
			}
			run := x
			for run < n && isDark(symbol, x0+run, y0+y) {
				run++
			}
			fmt.Fprintf(&buf, "<rect x=\"%d\" y=\"%d\" width=\"%d\" height=\"1\"/>\n",
				opts.QuietZone+x, opts.QuietZone+y, run-x)
			x = run
		}
	}
	buf.WriteString("</g>\n</svg>\n")
	return buf.Bytes(), nil
}
