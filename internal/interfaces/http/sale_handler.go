package http

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fuel-dashboard-api/internal/application/dto"
	"github.com/jhoicas/fuel-dashboard-api/internal/application/usecase"
)

// SaleHandler ventas con costo y utilidad atribuidos.
type SaleHandler struct {
	uc *usecase.SaleUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *usecase.SaleUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// List godoc
// @Summary      Listar ventas
// @Description  cost_price, profit_margin y total_profit son null si no hay facturas previas.
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Param        station_id    query  string  false  "estación"
// @Param        fuel_type_id  query  string  false  "combustible"
// @Param        start_date    query  string  false  "YYYY-MM-DD"
// @Param        end_date      query  string  false  "YYYY-MM-DD"
// @Success      200  {array}  dto.SaleResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	f, err := ledgerFilter(c)
	if err != nil {
		return err
	}
	out, err := h.uc.List(c.Context(), GetOrganizationID(c), f)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ExportCSV godoc
// @Summary      Exportar ventas a CSV
// @Tags         sales
// @Produce      text/csv
// @Security     BearerAuth
// @Param        station_id    query  string  false  "estación"
// @Param        fuel_type_id  query  string  false  "combustible"
// @Param        start_date    query  string  false  "YYYY-MM-DD"
// @Param        end_date      query  string  false  "YYYY-MM-DD"
// @Success      200  {file}  file
// @Router       /api/sales/export/csv [get]
func (h *SaleHandler) ExportCSV(c *fiber.Ctx) error {
	f, err := ledgerFilter(c)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := h.uc.ExportCSV(c.Context(), GetOrganizationID(c), f, &buf); err != nil {
		return err
	}
	return sendCSV(c, "sales_export.csv", buf.Bytes())
}

// Create godoc
// @Summary      Registrar venta
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateSaleRequest  true  "venta"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
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
// @Summary      Obtener venta
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar venta
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                 true  "ID de la venta"
// @Param        body  body  dto.UpdateSaleRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.SaleResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [put]
func (h *SaleHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSaleRequest
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
// @Summary      Eliminar venta
// @Tags         sales
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la venta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [delete]
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetOrganizationID(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
