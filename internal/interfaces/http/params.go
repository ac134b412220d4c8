package http

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fuel-dashboard-api/internal/application/dto"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/entity"
)

func queryDate(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := entity.ParseDate(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s debe tener formato YYYY-MM-DD", domain.ErrInvalidInput, key)
	}
	return &t, nil
}

func ledgerFilter(c *fiber.Ctx) (dto.LedgerFilter, error) {
	start, err := queryDate(c, "start_date")
	if err != nil {
		return dto.LedgerFilter{}, err
	}
	end, err := queryDate(c, "end_date")
	if err != nil {
		return dto.LedgerFilter{}, err
	}
	return dto.LedgerFilter{
		StationID:  c.Query("station_id"),
		FuelTypeID: c.Query("fuel_type_id"),
		StartDate:  start,
		EndDate:    end,
		Search:     c.Query("search"),
	}, nil
}

func dashboardQuery(c *fiber.Ctx) (dto.DashboardQuery, error) {
	q := dto.DashboardQuery{StationID: c.Query("station_id")}
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return q, fmt.Errorf("%w: days debe ser un entero", domain.ErrInvalidPeriod)
		}
		q.Days = &n
	}
	var err error
	if q.StartDate, err = queryDate(c, "start_date"); err != nil {
		return q, err
	}
	if q.EndDate, err = queryDate(c, "end_date"); err != nil {
		return q, err
	}
	return q, nil
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fmt.Errorf("%w: cuerpo inválido: %v", domain.ErrInvalidInput, err)
	}
	return nil
}
