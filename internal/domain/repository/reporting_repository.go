package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DateRange rango de fechas de negocio, inclusivo en ambos extremos.
// To cero deja el rango abierto hacia adelante (el mes en curso incluye fechas futuras).
type DateRange struct {
	From time.Time
	To   time.Time
}

// SalesTotals suma de total_sales y quantity_sold. Cero si no hay filas.
type SalesTotals struct {
	TotalSales decimal.Decimal
	Quantity   decimal.Decimal
}

// PurchaseTotals suma de quantity y total_amount de facturas. Cero si no hay filas.
type PurchaseTotals struct {
	Quantity decimal.Decimal
	Amount   decimal.Decimal
}

// StationSalesResult totales de venta agrupados por estación.
// Solo contiene estaciones con actividad; el caso de uso completa con ceros.
type StationSalesResult struct {
	StationID string
	SalesTotals
}

// DailySalesResult totales de venta de una fecha concreta.
type DailySalesResult struct {
	Date time.Time
	SalesTotals
}

// FuelVolumeResult volumen comprado y vendido por tipo de combustible.
type FuelVolumeResult struct {
	FuelTypeID string
	Purchased  decimal.Decimal
	Sold       decimal.Decimal
}

// ReportingRepository define las consultas de lectura del motor de reportes.
// Las implementaciones son read-only y siempre reciben el conjunto de estaciones
// ya acotado a la organización; nunca filtran por organización ni por usuario.
type ReportingRepository interface {
	// AverageInvoicePrice devuelve el promedio aritmético de price_per_unit de las facturas
	// de la estación y combustible con invoice_date <= asOf.
	// Devuelve un NullDecimal inválido (no cero) si no hay facturas que califiquen.
	AverageInvoicePrice(
		ctx context.Context,
		stationID, fuelTypeID string,
		asOf time.Time,
	) (decimal.NullDecimal, error)

	// ── Métodos del Dashboard (COALESCE a cero) ─────────────────────────────

	GetSalesTotals(ctx context.Context, stationIDs []string, period DateRange) (SalesTotals, error)

	GetPurchaseTotals(ctx context.Context, stationIDs []string, period DateRange) (PurchaseTotals, error)

	GetSalesByStation(ctx context.Context, stationIDs []string, period DateRange) ([]StationSalesResult, error)

	// GetDailySales agrupa por sale_date; las fechas sin ventas no aparecen.
	GetDailySales(ctx context.Context, stationIDs []string, period DateRange) ([]DailySalesResult, error)

	// GetFuelVolumes agrupa compras y ventas por fuel_type_id.
	GetFuelVolumes(ctx context.Context, stationIDs []string, period DateRange) ([]FuelVolumeResult, error)
}
