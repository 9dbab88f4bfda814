package render

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"strings"
	"sync"

	"github.com/boombuler/barcode"
	"golang.org/x/image/bmp"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/tiff"
)

// BarcodeOptions carries the writer parameters for one barcode request.
// Dimensions are millimeters, font size is points; both are converted to
// pixels at DPI for raster output.
type BarcodeOptions struct {
	Compress     bool
	ModuleWidth  float64
	ModuleHeight float64
	TextDistance float64
	FontSize     float64
	QuietZone    float64
	Background   string
	Foreground   string
	Mode         Mode
	DPI          int
	JPEGQuality  int
}

var (
	fontOnce   sync.Once
	regularTTF *sfnt.Font
	fontErr    error
)

func regularFace(sizePt float64, dpi int) (font.Face, error) {
	fontOnce.Do(func() {
		regularTTF, fontErr = opentype.Parse(goregular.TTF)
	})
	if fontErr != nil {
		return nil, fontErr
	}
	return opentype.NewFace(regularTTF, &opentype.FaceOptions{
		Size:    sizePt,
		DPI:     float64(dpi),
		Hinting: font.HintingFull,
	})
}

func isDark(img image.Image, x, y int) bool {
	r, g, b, _ := img.At(x, y).RGBA()
	return r == 0 && g == 0 && b == 0
}

// Barcode encodes text with the resolved symbology and serializes it in the
// requested output format. Any encoder fault surfaces as a typed render
// failure; the recover guard keeps unexpected panics inside this boundary.
func Barcode(enc EncoderFunc, text string, desc FormatDescriptor, opts BarcodeOptions) (out []byte, rerr *Error) {
	defer func() {
		if r := recover(); r != nil {
			out, rerr = nil, &Error{Kind: KindRenderFailure, Message: fmt.Sprintf("BarCode render error: %v", r)}
		}
	}()

	if _, cerr := ParseColor(opts.Background); cerr != nil {
		return nil, cerr
	}
	if _, cerr := ParseColor(opts.Foreground); cerr != nil {
		return nil, cerr
	}

	bc, err := enc(text)
	if err != nil {
		return nil, wrapEncoder(err, "BarCode render error")
	}

	if desc.Vector {
		return barcodeSVG(bc, opts), nil
	}
	return barcodeRaster(bc, desc, opts)
}

func barcodeRaster(bc barcode.Barcode, desc FormatDescriptor, opts BarcodeOptions) ([]byte, *Error) {
	bg, cerr := ParseColor(opts.Background)
	if cerr != nil {
		return nil, cerr
	}
	fg, cerr := ParseColor(opts.Foreground)
	if cerr != nil {
		return nil, cerr
	}

	dpi := opts.DPI
	if dpi <= 0 {
		dpi = 300
	}
	mmPx := func(mm float64) int {
		px := int(mm*float64(dpi)/25.4 + 0.5)
		if px < 0 {
			return 0
		}
		return px
	}

	modules := bc.Bounds().Dx()
	moduleW := mmPx(opts.ModuleWidth)
	if moduleW < 1 {
		moduleW = 1
	}
	barH := mmPx(opts.ModuleHeight)
	if barH < 1 {
		barH = 1
	}
	quiet := mmPx(opts.QuietZone)
	vpad := mmPx(1.0)

	var face font.Face
	textBlock := 0
	if opts.FontSize > 0 {
		f, err := regularFace(opts.FontSize, dpi)
		if err != nil {
			return nil, wrapEncoder(err, "BarCode render error")
		}
		face = f
		defer face.Close()
		textBlock = mmPx(opts.TextDistance) + face.Metrics().Height.Ceil()
	}

	width := modules*moduleW + 2*quiet
	height := vpad + barH + textBlock + vpad

	var img draw.Image
	if opts.Mode == ModeRGB {
		img = image.NewRGBA(image.Rect(0, 0, width, height))
	} else {
		img = image.NewNRGBA(image.Rect(0, 0, width, height))
	}
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	x0, y0 := bc.Bounds().Min.X, bc.Bounds().Min.Y
	for x := 0; x < modules; x++ {
		if !isDark(bc, x0+x, y0) {
			continue
		}
		bar := image.Rect(quiet+x*moduleW, vpad, quiet+(x+1)*moduleW, vpad+barH)
		draw.Draw(img, bar, image.NewUniform(fg), image.Point{}, draw.Src)
	}

	if face != nil {
		d := &font.Drawer{Dst: img, Src: image.NewUniform(fg), Face: face}
		label := bc.Content()
		tx := (width - d.MeasureString(label).Ceil()) / 2
		if tx < 0 {
			tx = 0
		}
		baseline := vpad + barH + mmPx(opts.TextDistance) + face.Metrics().Ascent.Ceil()
		d.Dot = fixed.P(tx, baseline)
		d.DrawString(label)
	}

	return encodeRaster(img, desc, opts)
}

func encodeRaster(img image.Image, desc FormatDescriptor, opts BarcodeOptions) ([]byte, *Error) {
	var buf bytes.Buffer
	var err error

	switch desc.Token {
	case "png":
		enc := png.Encoder{CompressionLevel: png.DefaultCompression}
		if !opts.Compress {
			enc.CompressionLevel = png.NoCompression
		}
		err = enc.Encode(&buf, img)
	case "jpeg":
		quality := opts.JPEGQuality
		if quality <= 0 || quality > 100 {
			quality = 95
		}
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality})
	case "gif":
		err = gif.Encode(&buf, img, nil)
	case "bmp":
		err = bmp.Encode(&buf, img)
	case "tiff":
		compression := tiff.Uncompressed
		if opts.Compress {
			compression = tiff.Deflate
		}
		err = tiff.Encode(&buf, img, &tiff.Options{Compression: compression})
	default:
		return nil, ErrUnsupportedFormat(desc.Token)
	}
	if err != nil {
		return nil, wrapEncoder(err, "BarCode render error")
	}
	return buf.Bytes(), nil
}

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// barcodeSVG emits the symbol as a standalone SVG document in millimeter
// coordinates, bars grouped into runs.
func barcodeSVG(bc barcode.Barcode, opts BarcodeOptions) []byte {
	modules := bc.Bounds().Dx()
	fontMM := opts.FontSize * 25.4 / 72.0

	textBlock := 0.0
	if opts.FontSize > 0 {
		textBlock = opts.TextDistance + fontMM
	}
	width := float64(modules)*opts.ModuleWidth + 2*opts.QuietZone
	height := opts.ModuleHeight + textBlock + 2.0

	fg := NormalizeColor(opts.Foreground)
	bg := NormalizeColor(opts.Background)

	var buf bytes.Buffer
	buf.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	fmt.Fprintf(&buf, "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%.3fmm\" height=\"%.3fmm\" viewBox=\"0 0 %.3f %.3f\">\n",
		width, height, width, height)
	fmt.Fprintf(&buf, "<rect width=\"100%%\" height=\"100%%\" fill=\"%s\"/>\n", bg)

	x0, y0 := bc.Bounds().Min.X, bc.Bounds().Min.Y
	for x := 0; x < modules; {
		if !isDark(bc, x0+x, y0) {
			x++
			continue
		}
		run := x
		for run < modules && isDark(bc, x0+run, y0) {
			run++
		}
		fmt.Fprintf(&buf, "<rect x=\"%.3f\" y=\"1.000\" width=\"%.3f\" height=\"%.3f\" fill=\"%s\"/>\n",
			opts.QuietZone+float64(x)*opts.ModuleWidth,
			float64(run-x)*opts.ModuleWidth,
			opts.ModuleHeight, fg)
		x = run
	}

	if opts.FontSize > 0 {
		fmt.Fprintf(&buf, "<text x=\"%.3f\" y=\"%.3f\" text-anchor=\"middle\" font-family=\"monospace\" font-size=\"%.3f\" fill=\"%s\">%s</text>\n",
			width/2,
			1.0+opts.ModuleHeight+opts.TextDistance+fontMM*0.8,
			fontMM, fg, xmlEscaper.Replace(bc.Content()))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
