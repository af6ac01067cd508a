package api

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/invopop/jsonschema"
	"go.uber.org/zap"

	"github.com/bobby-s-dev/weather-lookup/internal/models"
	"github.com/bobby-s-dev/weather-lookup/internal/scheduler"
	"github.com/bobby-s-dev/weather-lookup/internal/services"
)

// WeatherService is the gateway behaviour the handlers need.
type WeatherService interface {
	Lookup(ctx context.Context, city string) (interface{}, error)
	APIKeyConfigured() bool
}

// StatusSource reports the upstream probe state.
type StatusSource interface {
	GetStatus() scheduler.Status
}

type Handler struct {
	gateway   WeatherService
	probe     StatusSource
	logger    *zap.Logger
	startTime time.Time
	schema    *jsonschema.Schema
}

func NewHandler(gateway WeatherService, probe StatusSource, logger *zap.Logger) *Handler {
	return &Handler{
		gateway:   gateway,
		probe:     probe,
		logger:    logger,
		startTime: time.Now(),
		schema:    jsonschema.Reflect(&models.WeatherReport{}),
	}
}

// GetWeather handles GET /weather?city=<name>
func (h *Handler) GetWeather(c *fiber.Ctx) error {
	city := c.Query("city")

	h.logger.Info("Fetching weather data", zap.String("city", city))

	report, err := h.gateway.Lookup(c.UserContext(), city)
	if err != nil {
		var gwErr *services.Error
		if errors.As(err, &gwErr) && gwErr.Kind != services.KindInternal {
			return c.Status(gwErr.Kind.HTTPStatus()).JSON(fiber.Map{
				"error": gwErr.Message,
			})
		}
		return err
	}

	return c.JSON(report)
}

// GetHealth handles GET /health
func (h *Handler) GetHealth(c *fiber.Ctx) error {
	body := fiber.Map{
		"status":           "OK",
		"message":          "Weather API Server is running",
		"timestamp":        time.Now().UTC().Format(time.RFC3339),
		"apiKeyConfigured": h.gateway.APIKeyConfigured(),
		"uptime":           time.Since(h.startTime).Round(time.Second).String(),
	}
	if h.probe != nil {
		body["upstream"] = h.probe.GetStatus()
	}
	return c.JSON(body)
}

// GetSchema handles GET /schema
func (h *Handler) GetSchema(c *fiber.Ctx) error {
	return c.JSON(h.schema)
}
