package handlers

import (
	"github.com/gofiber/fiber/v2"

	"code2img/internal/render"
)

// The capability documents are static: built once from the live
// registry/resolver sets (so they cannot drift) and shared read-only
// across handlers.
var (
	barcodeDoc = buildBarcodeDoc()
	qrcodeDoc  = buildQRCodeDoc()
)

// HandleBarcodeTypes serves the barcode capability document.
func HandleBarcodeTypes(c *fiber.Ctx) error {
	return c.JSON(barcodeDoc)
}

// HandleQRCodeTypes serves the QR code capability document.
func HandleQRCodeTypes(c *fiber.Ctx) error {
	return c.JSON(qrcodeDoc)
}

func buildBarcodeDoc() fiber.Map {
	types := render.BarcodeTypes()
	formats := render.BarcodeFormats()
	return fiber.Map{
		"default_type":   render.DefaultBarcodeType,
		"default_format": "png",
		"types":          types,
		"formats":        formats,
		"parameters": []fiber.Map{
			{"name": "text", "type": "string", "required": true, "description": "Text to encode"},
			{"name": "type", "type": "string", "description": "Barcode type", "values": types},
			{"name": "format", "type": "string", "description": "Output format", "values": formats},
			{"name": "dl", "type": "string", "description": "Download barcode", "values": []string{"0", "1"}},
			{"name": "width", "type": "float", "description": "Module width in mm"},
			{"name": "height", "type": "float", "description": "Module height in mm"},
			{"name": "background", "type": "string", "description": "Background color (name or hex)",
				"examples": []string{"red", "green", "blue", "black", "white"}},
			{"name": "foreground", "type": "string", "description": "Foreground color (name or hex)",
				"examples": []string{"red", "green", "blue", "black", "white"}},
			{"name": "quiet_zone", "type": "float", "description": "Quiet zone in mm"},
			{"name": "text_distance", "type": "float", "description": "Distance between barcode and text in mm"},
			{"name": "font_size", "type": "float", "description": "Font size in pt"},
			{"name": "image_mode", "type": "string", "description": "Pixel color mode", "values": []string{"RGB", "RGBA"}},
			{"name": "compress", "type": "bool", "description": "Compress raster output"},
		},
		"examples": []fiber.Map{
			{"type": "code128", "text": "123456789012", "format": "png",
				"url": "/barcode?text=123456789012&type=code128&format=png"},
			{"type": "code128", "text": "123456789012", "format": "svg",
				"url": "/barcode?text=123456789012&type=code128&format=svg"},
			{"type": "ean13", "text": "5901234123457", "format": "png",
				"url": "/barcode?text=5901234123457&type=ean13&format=png"},
			{"type": "upc", "text": "123456789012", "format": "png",
				"url": "/barcode?text=123456789012&type=upc&format=png"},
		},
	}
}

func buildQRCodeDoc() fiber.Map {
	types := render.QRTypes()
	formats := render.QRFormats()
	return fiber.Map{
		"default_type":   "text",
		"default_format": "png",
		"types":          types,
		"formats":        formats,
		"parameters": []fiber.Map{
			{"name": "text", "type": "string", "required": true, "description": "Text to encode"},
			{"name": "type", "type": "string", "description": "Type of text to encode", "values": types},
			{"name": "format", "type": "string", "description": "Output format", "values": formats},
			{"name": "scale", "type": "integer", "description": "Pixels per module", "default": 1},
			{"name": "color", "type": "string", "description": "Module color", "default": "000"},
			{"name": "background", "type": "string", "description": "Background color", "default": nil},
			{"name": "quiet_zone", "type": "integer", "description": "Quiet zone in modules", "default": 1},
			{"name": "encoding", "type": "string", "description": "Data encoding hint",
				"values": []string{"numeric", "alphanumeric", "unicode"}, "default": nil},
			{"name": "dl", "type": "integer", "description": "Download QRCode", "default": 0},
		},
		"examples": []fiber.Map{
			{"type": "text", "text": "Hello World", "format": "png", "scale": "10",
				"url": "/qrcode?text=Hello%20World&type=text&format=png&scale=10"},
			{"type": "text", "text": "Hello World", "format": "svg", "scale": "10",
				"url": "/qrcode?text=Hello%20World&type=text&format=svg&scale=10"},
			{"type": "number", "text": "1234567890", "format": "png", "scale": "10",
				"url": "/qrcode?text=1234567890&type=number&format=png&scale=10"},
			{"type": "number", "text": "1234567890", "format": "svg", "scale": "10",
				"url": "/qrcode?text=1234567890&type=number&format=svg&scale=10"},
		},
	}
}
