package repository

import (
	"context"
	"time"

	"github.com/jhoicas/fuel-dashboard-api/internal/domain/entity"
)

// InvoiceFilter filtros de listado. StationIDs es el conjunto ya acotado a la organización;
// un conjunto vacío no devuelve filas.
type InvoiceFilter struct {
	StationIDs []string
	StationID  string     // opcional
	FuelTypeID string     // opcional
	StartDate  *time.Time // inclusive
	EndDate    *time.Time // inclusive
	Search     string     // número de factura o proveedor, sin distinguir mayúsculas
}

// InvoiceRepository define el puerto de persistencia para facturas de compra.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	Delete(ctx context.Context, id string) error
	// List devuelve las facturas ordenadas por fecha descendente.
	List(ctx context.Context, filter InvoiceFilter) ([]*entity.Invoice, error)
}
