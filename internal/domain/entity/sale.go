package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale es un registro de venta al por menor de una estación para un día y combustible.
type Sale struct {
	ID           string
	SaleDate     time.Time // solo fecha (UTC, 00:00)
	StationID    string
	FuelTypeID   string
	QuantitySold decimal.Decimal // NUMERIC(12,2)
	PricePerUnit decimal.Decimal // NUMERIC(10,4)
	TotalSales   decimal.Decimal // NUMERIC(14,2)
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Recalculate recomputa TotalSales = QuantitySold × PricePerUnit.
func (s *Sale) Recalculate() {
	s.TotalSales = s.QuantitySold.Mul(s.PricePerUnit).Round(2)
}
