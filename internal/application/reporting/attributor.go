package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fuel-dashboard-api/internal/domain/entity"
	domainreporting "github.com/jhoicas/fuel-dashboard-api/internal/domain/reporting"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/repository"
)

// CostAttributor atribuye a cada venta el costo promedio histórico de sus facturas.
// Se calcula en cada lectura; nada se guarda en la fila de la venta.
type CostAttributor struct {
	repo repository.ReportingRepository
}

// NewCostAttributor construye el atribuidor.
func NewCostAttributor(repo repository.ReportingRepository) *CostAttributor {
	return &CostAttributor{repo: repo}
}

// AverageCost costo promedio de (station, fuel) hasta asOf. Inválido si no hay facturas.
func (a *CostAttributor) AverageCost(ctx context.Context, stationID, fuelTypeID string, asOf time.Time) (decimal.NullDecimal, error) {
	cost, err := a.repo.AverageInvoicePrice(ctx, stationID, fuelTypeID, entity.DateOf(asOf))
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("costo promedio: %w", err)
	}
	return cost, nil
}

// Attribute calcula costo, margen y utilidad de una venta.
func (a *CostAttributor) Attribute(ctx context.Context, sale *entity.Sale) (domainreporting.Attribution, error) {
	cost, err := a.AverageCost(ctx, sale.StationID, sale.FuelTypeID, sale.SaleDate)
	if err != nil {
		return domainreporting.Attribution{}, err
	}
	return domainreporting.Attribute(sale.PricePerUnit, sale.QuantitySold, cost), nil
}

type costKey struct {
	stationID  string
	fuelTypeID string
	date       time.Time
}

// AttributeAll atribuye una lista de ventas en el mismo orden. Dentro de la llamada,
// las ventas con la misma (estación, combustible, fecha) comparten una sola consulta.
func (a *CostAttributor) AttributeAll(ctx context.Context, sales []*entity.Sale) ([]domainreporting.Attribution, error) {
	memo := make(map[costKey]decimal.NullDecimal)
	out := make([]domainreporting.Attribution, 0, len(sales))
	for _, s := range sales {
		k := costKey{stationID: s.StationID, fuelTypeID: s.FuelTypeID, date: entity.DateOf(s.SaleDate)}
		cost, ok := memo[k]
		if !ok {
			var err error
			cost, err = a.AverageCost(ctx, k.stationID, k.fuelTypeID, k.date)
			if err != nil {
				return nil, err
			}
			memo[k] = cost
		}
		out = append(out, domainreporting.Attribute(s.PricePerUnit, s.QuantitySold, cost))
	}
	return out, nil
}
