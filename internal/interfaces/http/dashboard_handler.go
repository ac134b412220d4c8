package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fuel-dashboard-api/internal/application/reporting"
	"github.com/jhoicas/fuel-dashboard-api/internal/application/usecase"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/entity"
)

// DashboardHandler KPIs y gráficos. El alcance de estaciones sale del token, nunca de la petición.
type DashboardHandler struct {
	uc    *reporting.DashboardUseCase
	scope *usecase.ScopeResolver
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *reporting.DashboardUseCase, scope *usecase.ScopeResolver) *DashboardHandler {
	return &DashboardHandler{uc: uc, scope: scope}
}

// Get godoc
// @Summary      Dashboard
// @Description  Ventana [hoy - days, hoy] (days entre 7 y 365, 30 por defecto) o [start_date, end_date].
// @Description  Un station_id ajeno a la organización devuelve el dashboard vacío.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        station_id  query  string  false  "estación"
// @Param        days        query  int     false  "días de la tendencia"
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.DashboardResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	q, err := dashboardQuery(c)
	if err != nil {
		return err
	}
	scope, err := h.scope.Resolve(c.Context(), GetOrganizationID(c), q.StationID)
	if err != nil {
		return err
	}
	out, err := h.uc.Build(c.Context(), scope, q)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Dashboard en PDF
// @Tags         dashboard
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        station_id  query  string  false  "estación"
// @Param        days        query  int     false  "días de la tendencia"
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {file}  file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/report.pdf [get]
func (h *DashboardHandler) Report(c *fiber.Ctx) error {
	q, err := dashboardQuery(c)
	if err != nil {
		return err
	}
	scope, err := h.scope.Resolve(c.Context(), GetOrganizationID(c), q.StationID)
	if err != nil {
		return err
	}
	pdf, err := h.uc.Report(c.Context(), scope, q)
	if err != nil {
		return err
	}
	name := fmt.Sprintf("dashboard_%s.pdf", h.uc.Today().Format(entity.DateLayout))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Send(pdf)
}
