package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/fuel-dashboard-api/internal/domain"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo persistencia de facturas de compra de combustible.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador de facturas. Pasar pool o tx.
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, invoice_number, invoice_date, supplier_name, station_id, fuel_type_id,
	quantity, price_per_unit, total_amount, notes, document_path, created_at, updated_at`

// Create persiste la factura. El total ya viene recalculado por el caso de uso.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	query := `INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, nullIfEmpty(inv.InvoiceNumber), inv.InvoiceDate, inv.SupplierName, inv.StationID, inv.FuelTypeID,
		inv.Quantity, inv.PricePerUnit, inv.TotalAmount, nullIfEmpty(inv.Notes), nullIfEmpty(inv.DocumentPath),
		inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidFuelType
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID. Devuelve nil, nil si no existe.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// Update reescribe todos los campos editables, incluida la referencia al documento.
func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET invoice_number = $2, invoice_date = $3, supplier_name = $4, station_id = $5, fuel_type_id = $6,
		    quantity = $7, price_per_unit = $8, total_amount = $9, notes = $10, document_path = $11, updated_at = $12
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		inv.ID, nullIfEmpty(inv.InvoiceNumber), inv.InvoiceDate, inv.SupplierName, inv.StationID, inv.FuelTypeID,
		inv.Quantity, inv.PricePerUnit, inv.TotalAmount, nullIfEmpty(inv.Notes), nullIfEmpty(inv.DocumentPath),
		inv.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidFuelType
		}
		return fmt.Errorf("update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra la factura (hard delete).
func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List filtra por el conjunto de estaciones acotado y los filtros opcionales; fecha descendente.
func (r *InvoiceRepo) List(ctx context.Context, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	list := make([]*entity.Invoice, 0)
	if len(f.StationIDs) == 0 {
		return list, nil
	}

	var w whereBuilder
	w.add("station_id = ANY($%d)", f.StationIDs)
	w.addIf(f.StationID != "", "station_id = $%d", f.StationID)
	w.addIf(f.FuelTypeID != "", "fuel_type_id = $%d", f.FuelTypeID)
	w.addDate("invoice_date >= $%d", f.StartDate)
	w.addDate("invoice_date <= $%d", f.EndDate)
	w.addIf(f.Search != "", "(invoice_number ILIKE '%%' || $%[1]d::text || '%%' OR supplier_name ILIKE '%%' || $%[1]d::text || '%%')", f.Search)

	query := `SELECT ` + invoiceColumns + ` FROM invoices` + w.String() + ` ORDER BY invoice_date DESC, created_at DESC`
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

func scanInvoice(row rowScanner) (*entity.Invoice, error) {
	var (
		inv                   entity.Invoice
		number, notes, docRef *string
	)
	if err := row.Scan(
		&inv.ID, &number, &inv.InvoiceDate, &inv.SupplierName, &inv.StationID, &inv.FuelTypeID,
		&inv.Quantity, &inv.PricePerUnit, &inv.TotalAmount, &notes, &docRef, &inv.CreatedAt, &inv.UpdatedAt,
	); err != nil {
		return nil, err
	}
	inv.InvoiceNumber = fromNullable(number)
	inv.Notes = fromNullable(notes)
	inv.DocumentPath = fromNullable(docRef)
	inv.InvoiceDate = entity.DateOf(inv.InvoiceDate)
	return &inv, nil
}
