package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fuel-dashboard-api/internal/application/dto"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain"
	"github.com/jhoicas/fuel-dashboard-api/pkg/logger"
)

type errorMapping struct {
	target error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrInvalidPeriod, fiber.StatusBadRequest, "INVALID_PERIOD"},
	{domain.ErrInvalidStation, fiber.StatusBadRequest, "INVALID_STATION"},
	{domain.ErrInvalidFuelType, fiber.StatusBadRequest, "INVALID_FUEL_TYPE"},
	{domain.ErrInvalidDocument, fiber.StatusBadRequest, "INVALID_DOCUMENT"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
}

// ErrorHandler traduce los errores que devuelven los handlers a dto.ErrorResponse.
// Errores de dominio -> 4xx con su mensaje; cualquier otro -> 500, que se registra
// y no expone el detalle al cliente.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		for _, m := range errorMappings {
			if errors.Is(err, m.target) {
				return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
			}
		}

		var fe *fiber.Error
		if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
		}

		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("organization_id", GetOrganizationID(c)).
			Msg("http: error interno")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
	}
}
