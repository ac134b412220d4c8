package http

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fuel-dashboard-api/internal/application/dto"
	"github.com/jhoicas/fuel-dashboard-api/internal/application/usecase"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain"
)

// InvoiceHandler facturas de compra, su exportación CSV y el PDF adjunto.
type InvoiceHandler struct {
	uc             *usecase.InvoiceUseCase
	maxUploadBytes int64
}

// NewInvoiceHandler construye el handler. maxUploadBytes <= 0 no limita el adjunto.
func NewInvoiceHandler(uc *usecase.InvoiceUseCase, maxUploadBytes int64) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, maxUploadBytes: maxUploadBytes}
}

// List godoc
// @Summary      Listar facturas
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        station_id    query  string  false  "estación"
// @Param        fuel_type_id  query  string  false  "combustible"
// @Param        start_date    query  string  false  "YYYY-MM-DD"
// @Param        end_date      query  string  false  "YYYY-MM-DD"
// @Param        search        query  string  false  "número de factura o proveedor"
// @Success      200  {array}  dto.InvoiceResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
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
// @Summary      Exportar facturas a CSV
// @Tags         invoices
// @Produce      text/csv
// @Security     BearerAuth
// @Param        station_id    query  string  false  "estación"
// @Param        fuel_type_id  query  string  false  "combustible"
// @Param        start_date    query  string  false  "YYYY-MM-DD"
// @Param        end_date      query  string  false  "YYYY-MM-DD"
// @Param        search        query  string  false  "número de factura o proveedor"
// @Success      200  {file}  file
// @Router       /api/invoices/export/csv [get]
func (h *InvoiceHandler) ExportCSV(c *fiber.Ctx) error {
	f, err := ledgerFilter(c)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := h.uc.ExportCSV(c.Context(), GetOrganizationID(c), f, &buf); err != nil {
		return err
	}
	return sendCSV(c, "invoices_export.csv", buf.Bytes())
}

// Create godoc
// @Summary      Registrar factura
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateInvoiceRequest  true  "factura"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
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
// @Summary      Obtener factura
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar factura
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                    true  "ID de la factura"
// @Param        body  body  dto.UpdateInvoiceRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [put]
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInvoiceRequest
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
// @Summary      Eliminar factura
// @Tags         invoices
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la factura"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetOrganizationID(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UploadDocument godoc
// @Summary      Adjuntar PDF a la factura
// @Tags         invoices
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "ID de la factura"
// @Param        file  formData  file    true  "documento PDF"
// @Success      200   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/document [post]
func (h *InvoiceHandler) UploadDocument(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return fmt.Errorf("%w: falta el archivo (campo \"file\")", domain.ErrInvalidDocument)
	}
	if h.maxUploadBytes > 0 && fh.Size > h.maxUploadBytes {
		return fmt.Errorf("%w: el archivo supera %d bytes", domain.ErrInvalidDocument, h.maxUploadBytes)
	}
	file, err := fh.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	out, err := h.uc.AttachDocument(c.Context(), GetOrganizationID(c), c.Params("id"), fh.Filename, file)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// DownloadDocument godoc
// @Summary      Descargar el PDF de la factura
// @Tags         invoices
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {file}  file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/document [get]
func (h *InvoiceHandler) DownloadDocument(c *fiber.Ctx) error {
	rc, name, err := h.uc.OpenDocument(c.Context(), GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	// fasthttp cierra rc al terminar de enviarlo.
	return c.SendStream(rc)
}

func sendCSV(c *fiber.Ctx, filename string, body []byte) error {
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(body)
}
