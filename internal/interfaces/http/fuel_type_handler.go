package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fuel-dashboard-api/internal/application/dto"
	"github.com/jhoicas/fuel-dashboard-api/internal/application/usecase"
)

// FuelTypeHandler catálogo global de combustibles.
type FuelTypeHandler struct {
	uc *usecase.FuelTypeUseCase
}

// NewFuelTypeHandler construye el handler.
func NewFuelTypeHandler(uc *usecase.FuelTypeUseCase) *FuelTypeHandler {
	return &FuelTypeHandler{uc: uc}
}

// List godoc
// @Summary      Listar combustibles activos
// @Tags         fuel-types
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.FuelTypeResponse
// @Router       /api/fuel-types [get]
func (h *FuelTypeHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListActive(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear tipo de combustible
// @Tags         fuel-types
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateFuelTypeRequest  true  "tipo"
// @Success      201   {object}  dto.FuelTypeResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/fuel-types [post]
func (h *FuelTypeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFuelTypeRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar o desactivar tipo de combustible
// @Tags         fuel-types
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                     true  "ID del tipo"
// @Param        body  body  dto.UpdateFuelTypeRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.FuelTypeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/fuel-types/{id} [put]
func (h *FuelTypeHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateFuelTypeRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
