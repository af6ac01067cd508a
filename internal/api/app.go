package api

import (
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"

	"github.com/bobby-s-dev/weather-lookup/internal/config"
)

// NewApp builds the fiber application with the gateway's routes mounted.
func NewApp(cfg *config.Config, handler *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "weather-lookup",
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
	})

	SetupRoutes(app, handler)
	return app
}
