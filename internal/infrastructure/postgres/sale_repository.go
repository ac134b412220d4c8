package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/fuel-dashboard-api/internal/domain"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo persistencia de ventas diarias.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, sale_date, station_id, fuel_type_id, quantity_sold, price_per_unit, total_sales,
	notes, created_at, updated_at`

// Create persiste la venta.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `INSERT INTO sales (` + saleColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.SaleDate, s.StationID, s.FuelTypeID, s.QuantitySold, s.PricePerUnit, s.TotalSales,
		nullIfEmpty(s.Notes), s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidFuelType
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID. Devuelve nil, nil si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// Update reescribe la venta con el total ya recalculado.
func (r *SaleRepo) Update(ctx context.Context, s *entity.Sale) error {
	query := `
		UPDATE sales
		SET sale_date = $2, station_id = $3, fuel_type_id = $4, quantity_sold = $5, price_per_unit = $6,
		    total_sales = $7, notes = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		s.ID, s.SaleDate, s.StationID, s.FuelTypeID, s.QuantitySold, s.PricePerUnit, s.TotalSales,
		nullIfEmpty(s.Notes), s.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidFuelType
		}
		return fmt.Errorf("update sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra la venta.
func (r *SaleRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List ventas del conjunto de estaciones acotado, fecha descendente.
func (r *SaleRepo) List(ctx context.Context, f repository.SaleFilter) ([]*entity.Sale, error) {
	list := make([]*entity.Sale, 0)
	if len(f.StationIDs) == 0 {
		return list, nil
	}

	var w whereBuilder
	w.add("station_id = ANY($%d)", f.StationIDs)
	w.addIf(f.StationID != "", "station_id = $%d", f.StationID)
	w.addIf(f.FuelTypeID != "", "fuel_type_id = $%d", f.FuelTypeID)
	w.addDate("sale_date >= $%d", f.StartDate)
	w.addDate("sale_date <= $%d", f.EndDate)

	query := `SELECT ` + saleColumns + ` FROM sales` + w.String() + ` ORDER BY sale_date DESC, created_at DESC`
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanSale(row rowScanner) (*entity.Sale, error) {
	var (
		s     entity.Sale
		notes *string
	)
	if err := row.Scan(
		&s.ID, &s.SaleDate, &s.StationID, &s.FuelTypeID, &s.QuantitySold, &s.PricePerUnit, &s.TotalSales,
		&notes, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	s.Notes = fromNullable(notes)
	s.SaleDate = entity.DateOf(s.SaleDate)
	return &s, nil
}
