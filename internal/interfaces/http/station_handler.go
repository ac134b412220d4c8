package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fuel-dashboard-api/internal/application/dto"
	"github.com/jhoicas/fuel-dashboard-api/internal/application/usecase"
)

// StationHandler CRUD de estaciones de la organización del token.
type StationHandler struct {
	uc *usecase.StationUseCase
}

// NewStationHandler construye el handler.
func NewStationHandler(uc *usecase.StationUseCase) *StationHandler {
	return &StationHandler{uc: uc}
}

// List godoc
// @Summary      Listar estaciones
// @Tags         stations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.StationResponse
// @Router       /api/stations [get]
func (h *StationHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), GetOrganizationID(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear estación
// @Tags         stations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateStationRequest  true  "estación"
// @Success      201   {object}  dto.StationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stations [post]
func (h *StationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStationRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.Context(), GetOrganizationID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener estación
// @Tags         stations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la estación"
// @Success      200  {object}  dto.StationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stations/{id} [get]
func (h *StationHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar estación
// @Tags         stations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                    true  "ID de la estación"
// @Param        body  body  dto.UpdateStationRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.StationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stations/{id} [put]
func (h *StationHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateStationRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.Context(), GetOrganizationID(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar estación (y sus facturas y ventas)
// @Tags         stations
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la estación"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stations/{id} [delete]
func (h *StationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetOrganizationID(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
