package app

import (
	"code2img/internal/handlers"
	u "code2img/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// SetupApp creates and configures a new Fiber app instance
func SetupApp(cfg u.Config, redis *redis.Client) *fiber.App {
	app := fiber.New(fiber.Config{
		Prefork:               cfg.Server.Prefork,
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			msg := "Internal Server Error"

			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				msg = e.Message
			}

			u.Warn("Request failed", "path", c.Path(), "status", code, "message", msg)

			return c.Status(code).JSON(fiber.Map{
				"error": msg,
			})
		},
	})

	RegisterMiddleware(app, cfg)
	RegisterRoutes(app, cfg, redis)

	// Ensure all responses, including 404s, return JSON
	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not Found")
	})

	return app
}

// RegisterRoutes mounts all route handlers to the app
func RegisterRoutes(app *fiber.App, cfg u.Config, redis *redis.Client) {
	// One shared service instance so GET and POST variants share config and cache.
	svc := handlers.NewRenderService(cfg, redis)

	app.Get("/", handlers.HandleIndex)

	app.Get("/barcode", svc.HandleBarcode)
	app.Post("/barcode", svc.HandleBarcode)
	app.Get("/qrcode", svc.HandleQRCode)
	app.Post("/qrcode", svc.HandleQRCode)

	app.Get("/barcode/types", handlers.HandleBarcodeTypes)
	app.Get("/qrcode/types", handlers.HandleQRCodeTypes)
}
