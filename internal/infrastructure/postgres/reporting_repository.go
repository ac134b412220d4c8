package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/fuel-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/repository"
)

var _ repository.ReportingRepository = (*ReportingRepo)(nil)

// ReportingRepo consultas de solo lectura del motor de reportes.
// Todas reciben el conjunto de estaciones ya acotado; ninguna filtra por organización.
type ReportingRepo struct {
	pool *pgxpool.Pool
}

// NewReportingRepository construye el adaptador de reportes.
func NewReportingRepository(pool *pgxpool.Pool) *ReportingRepo {
	return &ReportingRepo{pool: pool}
}

// AverageInvoicePrice promedio de price_per_unit hasta asOf (inclusive).
// AVG sobre cero filas es NULL, que se escanea como NullDecimal inválido: costo desconocido.
func (r *ReportingRepo) AverageInvoicePrice(
	ctx context.Context,
	stationID, fuelTypeID string,
	asOf time.Time,
) (decimal.NullDecimal, error) {
	const query = `
	SELECT AVG(price_per_unit)
	FROM invoices
	WHERE station_id   = $1
	  AND fuel_type_id = $2
	  AND invoice_date <= $3`

	var avg decimal.NullDecimal
	if err := r.pool.QueryRow(ctx, query, stationID, fuelTypeID, entity.DateOf(asOf)).Scan(&avg); err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("reporting.AverageInvoicePrice: %w", err)
	}
	return avg, nil
}

// GetSalesTotals suma total_sales y quantity_sold del período. COALESCE: cero si no hay filas.
func (r *ReportingRepo) GetSalesTotals(
	ctx context.Context,
	stationIDs []string,
	period repository.DateRange,
) (repository.SalesTotals, error) {
	const query = `
	SELECT
	    COALESCE(SUM(total_sales),   0) AS total_sales,
	    COALESCE(SUM(quantity_sold), 0) AS quantity
	FROM sales
	WHERE station_id = ANY($1)
	  AND sale_date >= $2 AND ($3::DATE IS NULL OR sale_date <= $3::DATE)`

	out := repository.SalesTotals{TotalSales: decimal.Zero, Quantity: decimal.Zero}
	if len(stationIDs) == 0 {
		return out, nil
	}
	if err := r.pool.QueryRow(ctx, query, stationIDs, period.From, upperBound(period)).
		Scan(&out.TotalSales, &out.Quantity); err != nil {
		return repository.SalesTotals{}, fmt.Errorf("reporting.GetSalesTotals: %w", err)
	}
	return out, nil
}

// GetPurchaseTotals suma quantity y total_amount de facturas del período.
func (r *ReportingRepo) GetPurchaseTotals(
	ctx context.Context,
	stationIDs []string,
	period repository.DateRange,
) (repository.PurchaseTotals, error) {
	const query = `
	SELECT
	    COALESCE(SUM(quantity),     0) AS quantity,
	    COALESCE(SUM(total_amount), 0) AS amount
	FROM invoices
	WHERE station_id = ANY($1)
	  AND invoice_date >= $2 AND ($3::DATE IS NULL OR invoice_date <= $3::DATE)`

	out := repository.PurchaseTotals{Quantity: decimal.Zero, Amount: decimal.Zero}
	if len(stationIDs) == 0 {
		return out, nil
	}
	if err := r.pool.QueryRow(ctx, query, stationIDs, period.From, upperBound(period)).
		Scan(&out.Quantity, &out.Amount); err != nil {
		return repository.PurchaseTotals{}, fmt.Errorf("reporting.GetPurchaseTotals: %w", err)
	}
	return out, nil
}

// GetSalesByStation totales por estación con actividad en el período.
func (r *ReportingRepo) GetSalesByStation(
	ctx context.Context,
	stationIDs []string,
	period repository.DateRange,
) ([]repository.StationSalesResult, error) {
	const query = `
	SELECT
	    station_id::TEXT,
	    SUM(total_sales)   AS total_sales,
	    SUM(quantity_sold) AS quantity
	FROM sales
	WHERE station_id = ANY($1)
	  AND sale_date >= $2 AND ($3::DATE IS NULL OR sale_date <= $3::DATE)
	GROUP BY station_id`

	results := make([]repository.StationSalesResult, 0)
	if len(stationIDs) == 0 {
		return results, nil
	}
	rows, err := r.pool.Query(ctx, query, stationIDs, period.From, upperBound(period))
	if err != nil {
		return nil, fmt.Errorf("reporting.GetSalesByStation: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var row repository.StationSalesResult
		if err := rows.Scan(&row.StationID, &row.TotalSales, &row.Quantity); err != nil {
			return nil, fmt.Errorf("reporting.GetSalesByStation scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetDailySales totales por fecha; las fechas sin ventas no aparecen (el caso de uso rellena).
func (r *ReportingRepo) GetDailySales(
	ctx context.Context,
	stationIDs []string,
	period repository.DateRange,
) ([]repository.DailySalesResult, error) {
	const query = `
	SELECT
	    sale_date,
	    SUM(total_sales)   AS total_sales,
	    SUM(quantity_sold) AS quantity
	FROM sales
	WHERE station_id = ANY($1)
	  AND sale_date >= $2 AND ($3::DATE IS NULL OR sale_date <= $3::DATE)
	GROUP BY sale_date
	ORDER BY sale_date`

	results := make([]repository.DailySalesResult, 0)
	if len(stationIDs) == 0 {
		return results, nil
	}
	rows, err := r.pool.Query(ctx, query, stationIDs, period.From, upperBound(period))
	if err != nil {
		return nil, fmt.Errorf("reporting.GetDailySales: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var row repository.DailySalesResult
		if err := rows.Scan(&row.Date, &row.TotalSales, &row.Quantity); err != nil {
			return nil, fmt.Errorf("reporting.GetDailySales scan: %w", err)
		}
		row.Date = entity.DateOf(row.Date)
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetFuelVolumes compras y ventas del período agrupadas por tipo de combustible.
// Las dos agregaciones se calculan por separado para no multiplicar filas en el JOIN.
func (r *ReportingRepo) GetFuelVolumes(
	ctx context.Context,
	stationIDs []string,
	period repository.DateRange,
) ([]repository.FuelVolumeResult, error) {
	const query = `
	WITH purchased AS (
	    SELECT fuel_type_id, SUM(quantity) AS qty
	    FROM invoices
	    WHERE station_id = ANY($1) AND invoice_date >= $2 AND ($3::DATE IS NULL OR invoice_date <= $3::DATE)
	    GROUP BY fuel_type_id
	), sold AS (
	    SELECT fuel_type_id, SUM(quantity_sold) AS qty
	    FROM sales
	    WHERE station_id = ANY($1) AND sale_date >= $2 AND ($3::DATE IS NULL OR sale_date <= $3::DATE)
	    GROUP BY fuel_type_id
	)
	SELECT
	    COALESCE(p.fuel_type_id, s.fuel_type_id)::TEXT AS fuel_type_id,
	    COALESCE(p.qty, 0)                             AS purchased,
	    COALESCE(s.qty, 0)                             AS sold
	FROM purchased p
	FULL OUTER JOIN sold s ON s.fuel_type_id = p.fuel_type_id`

	results := make([]repository.FuelVolumeResult, 0)
	if len(stationIDs) == 0 {
		return results, nil
	}
	rows, err := r.pool.Query(ctx, query, stationIDs, period.From, upperBound(period))
	if err != nil {
		return nil, fmt.Errorf("reporting.GetFuelVolumes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var row repository.FuelVolumeResult
		if err := rows.Scan(&row.FuelTypeID, &row.Purchased, &row.Sold); err != nil {
			return nil, fmt.Errorf("reporting.GetFuelVolumes scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// upperBound NULL cuando el período no tiene tope (DateRange.To cero).
func upperBound(period repository.DateRange) any {
	if period.To.IsZero() {
		return nil
	}
	return period.To
}
