package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/bobby-s-dev/weather-lookup/internal/services"
)

// ErrorHandler is the fiber error handler. Fiber errors keep their code and
// message; anything else is reported as an internal error without details.
func ErrorHandler(c *fiber.Ctx, err error) error {
	zap.L().Error("HTTP error",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err))

	code := fiber.StatusInternalServerError
	message := services.MsgInternal

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
		if code == fiber.StatusNotFound {
			message = "Endpoint not found"
		}
	}

	return c.Status(code).JSON(fiber.Map{
		"error": message,
	})
}
