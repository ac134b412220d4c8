package memory

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fuel-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/reporting"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/repository"
)

var _ repository.ReportingRepository = (*ReportingRepo)(nil)

// ReportingRepo agrega en Go lo que el adaptador PostgreSQL agrega en SQL.
// Cuenta las llamadas a AverageInvoicePrice para que los tests verifiquen la memoización.
type ReportingRepo struct {
	s *Store

	averageCalls atomic.Int64
}

// AverageCalls número de consultas de costo promedio atendidas.
func (r *ReportingRepo) AverageCalls() int64 { return r.averageCalls.Load() }

func (r *ReportingRepo) AverageInvoicePrice(_ context.Context, stationID, fuelTypeID string, asOf time.Time) (decimal.NullDecimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	r.averageCalls.Add(1)
	asOf = entity.DateOf(asOf)
	var prices []decimal.Decimal
	for _, inv := range r.s.invoices {
		if inv.StationID == stationID && inv.FuelTypeID == fuelTypeID && !inv.InvoiceDate.After(asOf) {
			prices = append(prices, inv.PricePerUnit)
		}
	}
	return reporting.AverageOf(prices), nil
}

func (r *ReportingRepo) GetSalesTotals(_ context.Context, stationIDs []string, period repository.DateRange) (repository.SalesTotals, error) {
	out := repository.SalesTotals{TotalSales: decimal.Zero, Quantity: decimal.Zero}
	r.eachSale(stationIDs, period, func(s entity.Sale) {
		out.TotalSales = out.TotalSales.Add(s.TotalSales)
		out.Quantity = out.Quantity.Add(s.QuantitySold)
	})
	return out, nil
}

func (r *ReportingRepo) GetPurchaseTotals(_ context.Context, stationIDs []string, period repository.DateRange) (repository.PurchaseTotals, error) {
	out := repository.PurchaseTotals{Quantity: decimal.Zero, Amount: decimal.Zero}
	r.eachInvoice(stationIDs, period, func(inv entity.Invoice) {
		out.Quantity = out.Quantity.Add(inv.Quantity)
		out.Amount = out.Amount.Add(inv.TotalAmount)
	})
	return out, nil
}

func (r *ReportingRepo) GetSalesByStation(_ context.Context, stationIDs []string, period repository.DateRange) ([]repository.StationSalesResult, error) {
	byStation := map[string]*repository.StationSalesResult{}
	order := []string{}
	r.eachSale(stationIDs, period, func(s entity.Sale) {
		acc, ok := byStation[s.StationID]
		if !ok {
			acc = &repository.StationSalesResult{
				StationID:   s.StationID,
				SalesTotals: repository.SalesTotals{TotalSales: decimal.Zero, Quantity: decimal.Zero},
			}
			byStation[s.StationID] = acc
			order = append(order, s.StationID)
		}
		acc.TotalSales = acc.TotalSales.Add(s.TotalSales)
		acc.Quantity = acc.Quantity.Add(s.QuantitySold)
	})
	out := make([]repository.StationSalesResult, 0, len(order))
	for _, id := range order {
		out = append(out, *byStation[id])
	}
	return out, nil
}

func (r *ReportingRepo) GetDailySales(_ context.Context, stationIDs []string, period repository.DateRange) ([]repository.DailySalesResult, error) {
	byDate := map[time.Time]*repository.DailySalesResult{}
	r.eachSale(stationIDs, period, func(s entity.Sale) {
		acc, ok := byDate[s.SaleDate]
		if !ok {
			acc = &repository.DailySalesResult{
				Date:        s.SaleDate,
				SalesTotals: repository.SalesTotals{TotalSales: decimal.Zero, Quantity: decimal.Zero},
			}
			byDate[s.SaleDate] = acc
		}
		acc.TotalSales = acc.TotalSales.Add(s.TotalSales)
		acc.Quantity = acc.Quantity.Add(s.QuantitySold)
	})
	out := make([]repository.DailySalesResult, 0, len(byDate))
	for _, v := range byDate {
		out = append(out, *v)
	}
	return out, nil
}

func (r *ReportingRepo) GetFuelVolumes(_ context.Context, stationIDs []string, period repository.DateRange) ([]repository.FuelVolumeResult, error) {
	byFuel := map[string]*repository.FuelVolumeResult{}
	get := func(id string) *repository.FuelVolumeResult {
		acc, ok := byFuel[id]
		if !ok {
			acc = &repository.FuelVolumeResult{FuelTypeID: id, Purchased: decimal.Zero, Sold: decimal.Zero}
			byFuel[id] = acc
		}
		return acc
	}
	r.eachInvoice(stationIDs, period, func(inv entity.Invoice) {
		acc := get(inv.FuelTypeID)
		acc.Purchased = acc.Purchased.Add(inv.Quantity)
	})
	r.eachSale(stationIDs, period, func(s entity.Sale) {
		acc := get(s.FuelTypeID)
		acc.Sold = acc.Sold.Add(s.QuantitySold)
	})
	out := make([]repository.FuelVolumeResult, 0, len(byFuel))
	for _, v := range byFuel {
		out = append(out, *v)
	}
	return out, nil
}

func (r *ReportingRepo) eachSale(stationIDs []string, period repository.DateRange, fn func(entity.Sale)) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	scope := idSet(stationIDs)
	for _, s := range r.s.sales {
		if _, ok := scope[s.StationID]; !ok {
			continue
		}
		if inDateRange(s.SaleDate, &period.From, upperBound(period)) {
			fn(s)
		}
	}
}

func (r *ReportingRepo) eachInvoice(stationIDs []string, period repository.DateRange, fn func(entity.Invoice)) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	scope := idSet(stationIDs)
	for _, inv := range r.s.invoices {
		if _, ok := scope[inv.StationID]; !ok {
			continue
		}
		if inDateRange(inv.InvoiceDate, &period.From, upperBound(period)) {
			fn(inv)
		}
	}
}

// upperBound nil cuando el período no tiene tope.
func upperBound(period repository.DateRange) *time.Time {
	if period.To.IsZero() {
		return nil
	}
	return &period.To
}
