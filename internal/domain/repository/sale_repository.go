package repository

import (
	"context"
	"time"

	"github.com/jhoicas/fuel-dashboard-api/internal/domain/entity"
)

// SaleFilter filtros de listado de ventas (mismas reglas que InvoiceFilter).
type SaleFilter struct {
	StationIDs []string
	StationID  string
	FuelTypeID string
	StartDate  *time.Time
	EndDate    *time.Time
}

// SaleRepository define el puerto de persistencia para ventas.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	Update(ctx context.Context, sale *entity.Sale) error
	Delete(ctx context.Context, id string) error
	// List devuelve las ventas ordenadas por fecha descendente.
	List(ctx context.Context, filter SaleFilter) ([]*entity.Sale, error)
}
