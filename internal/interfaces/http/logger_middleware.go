package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fuel-dashboard-api/pkg/logger"
)

// RequestLogger registra una línea por petición con su estado final y latencia.
// Los errores de la cadena se resuelven aquí con el ErrorHandler de la app para que
// el estado registrado sea el que recibe el cliente.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("organization_id", GetOrganizationID(c)).
			Msg("http request")
		return nil
	}
}
