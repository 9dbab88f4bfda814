package handlers

import "github.com/gofiber/fiber/v2"

// HandleIndex serves the welcome document with links to the API surface.
func HandleIndex(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Welcome to Barcode/QRCode Generator API",
		"links": fiber.Map{
			"barcode": "/barcode",
			"qrcode":  "/qrcode",
		},
		"documentation": fiber.Map{
			"barcode": "/barcode/types",
			"qrcode":  "/qrcode/types",
		},
	})
}
