package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"code2img/internal/params"
	"code2img/internal/render"
	u "code2img/internal/utils"
)

// RenderService bundles configuration and dependencies for image rendering.
type RenderService struct {
	Config *u.Config
	Redis  *redis.Client
}

// NewRenderService creates a new RenderService instance.
func NewRenderService(cfg u.Config, rdb *redis.Client) *RenderService {
	return &RenderService{
		Config: &cfg,
		Redis:  rdb,
	}
}

// HandleBarcodeGeneration returns a Fiber handler for barcode requests.
func HandleBarcodeGeneration(cfg u.Config, rdb *redis.Client) fiber.Handler {
	svc := NewRenderService(cfg, rdb)
	return svc.HandleBarcode
}

// HandleQRCodeGeneration returns a Fiber handler for QR code requests.
func HandleQRCodeGeneration(cfg u.Config, rdb *redis.Client) fiber.Handler {
	svc := NewRenderService(cfg, rdb)
	return svc.HandleQRCode
}

func badRequest(err *render.Error) error {
	return fiber.NewError(fiber.StatusBadRequest, err.Message)
}

// sendImage shapes the outbound response: body bytes, content type and an
// inline or attachment disposition with the computed filename.
func sendImage(c *fiber.Ctx, buf []byte, mime, filename string, download bool) error {
	disposition := "inline"
	if download {
		disposition = "attachment"
	}
	c.Set(fiber.HeaderContentType, mime)
	c.Set(fiber.HeaderContentDisposition, disposition+"; filename="+filename)
	return c.Send(buf)
}

func (svc *RenderService) checkTextSize(text string) error {
	max := svc.Config.Limits.MaxTextBytes
	if max > 0 && len(text) > max {
		return fiber.NewError(fiber.StatusRequestEntityTooLarge,
			"Text input exceeds "+strconv.Itoa(max)+" bytes")
	}
	return nil
}

// HandleBarcode renders a one-dimensional barcode from request parameters.
func (svc *RenderService) HandleBarcode(c *fiber.Ctx) error {
	p := params.NewFromCtx(c)

	text := p.String("text", "")
	if text == "" {
		return badRequest(render.ErrMissingInput())
	}
	if err := svc.checkTextSize(text); err != nil {
		return err
	}

	typeToken := p.String("type", render.DefaultBarcodeType)
	formatToken := p.String("format", "png")
	download := p.String("dl", "0") == "1"
	imageMode := p.String("image_mode", "")
	background := p.String("background", "white")
	foreground := p.String("foreground", "black")
	compress := p.Bool("compress", true)

	textDistance, verr := p.Float("text_distance", 5.0)
	if verr != nil {
		return badRequest(verr)
	}
	fontSize, verr := p.Float("font_size", 10.0)
	if verr != nil {
		return badRequest(verr)
	}
	moduleWidth, verr := p.Float("width", 0.2)
	if verr != nil {
		return badRequest(verr)
	}
	moduleHeight, verr := p.Float("height", 15.0)
	if verr != nil {
		return badRequest(verr)
	}
	quietZone, verr := p.Float("quiet_zone", 6.5)
	if verr != nil {
		return badRequest(verr)
	}

	desc, ferr := render.ResolveBarcodeFormat(formatToken)
	if ferr != nil {
		return badRequest(ferr)
	}
	mode, ferr := desc.ResolveMode(imageMode)
	if ferr != nil {
		return badRequest(ferr)
	}
	enc, serr := render.ResolveSymbology(typeToken)
	if serr != nil {
		return badRequest(serr)
	}

	filename := desc.Filename("barcode", typeToken)
	opts := render.BarcodeOptions{
		Compress:     compress,
		ModuleWidth:  moduleWidth,
		ModuleHeight: moduleHeight,
		TextDistance: textDistance,
		FontSize:     fontSize,
		QuietZone:    quietZone,
		Background:   background,
		Foreground:   foreground,
		Mode:         mode,
		DPI:          svc.Config.Render.DPI,
		JPEGQuality:  svc.Config.Render.JPEGQuality,
	}

	cacheKey := computeCacheKey("barcode", text, typeToken, desc.Token, string(mode),
		strconv.FormatBool(compress), background, foreground,
		formatFloat(textDistance), formatFloat(fontSize), formatFloat(moduleWidth),
		formatFloat(moduleHeight), formatFloat(quietZone))
	if cached := svc.cachedImage(c, cacheKey); cached != nil {
		return sendImage(c, cached, desc.MIME, filename, download)
	}

	buf, rerr := render.Barcode(enc, text, desc, opts)
	if rerr != nil {
		u.Warn("BarCode render error", "type", typeToken, "format", desc.Token, "error", rerr.Message)
		return badRequest(rerr)
	}

	svc.storeImage(c, cacheKey, buf)
	u.Info("Barcode generated", "type", typeToken, "format", desc.Token,
		"bytes", len(buf), "request_id", c.Get("X-Request-ID"))

	return sendImage(c, buf, desc.MIME, filename, download)
}

// HandleQRCode renders a QR code from request parameters.
func (svc *RenderService) HandleQRCode(c *fiber.Ctx) error {
	p := params.NewFromCtx(c)

	text := p.String("text", "")
	if text == "" {
		return badRequest(render.ErrMissingInput())
	}
	if err := svc.checkTextSize(text); err != nil {
		return err
	}

	typeToken := p.String("type", "")
	formatToken := p.String("format", "png")
	download := p.String("dl", "0") == "1"
	moduleColor := render.NormalizeColor(p.String("color", "000"))
	background := p.String("background", "")
	encoding := p.String("encoding", "")

	scale, verr := p.Int("scale", 1)
	if verr != nil {
		return badRequest(verr)
	}
	quietZone, verr := p.Int("quiet_zone", 1)
	if verr != nil {
		return badRequest(verr)
	}

	desc, ferr := render.ResolveQRFormat(formatToken)
	if ferr != nil {
		return badRequest(ferr)
	}
	payload, verr := render.CoerceQRPayload(text, typeToken)
	if verr != nil {
		return badRequest(verr)
	}

	filenameToken := typeToken
	if filenameToken == "" {
		filenameToken = "text"
	}
	filename := desc.Filename("qrcode", filenameToken)

	opts := render.QROptions{
		Scale:       scale,
		QuietZone:   quietZone,
		ModuleColor: moduleColor,
		Background:  background,
		Encoding:    encoding,
		Title:       filename,
	}

	cacheKey := computeCacheKey("qrcode", payload, desc.Token, moduleColor, background,
		encoding, strconv.Itoa(scale), strconv.Itoa(quietZone))
	if cached := svc.cachedImage(c, cacheKey); cached != nil {
		return sendImage(c, cached, desc.MIME, filename, download)
	}

	buf, rerr := render.QRCode(payload, desc, opts)
	if rerr != nil {
		u.Warn("QRCode render error", "format", desc.Token, "error", rerr.Message)
		return badRequest(rerr)
	}

	svc.storeImage(c, cacheKey, buf)
	u.Info("QRCode generated", "format", desc.Token,
		"bytes", len(buf), "request_id", c.Get("X-Request-ID"))

	return sendImage(c, buf, desc.MIME, filename, download)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 3, 64)
}
