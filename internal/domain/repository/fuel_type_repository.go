package repository

import (
	"context"

	"github.com/jhoicas/fuel-dashboard-api/internal/domain/entity"
)

// FuelTypeRepository define el puerto de persistencia para FuelType (dato global).
// No expone Delete: los tipos se desactivan, nunca se borran.
type FuelTypeRepository interface {
	Create(ctx context.Context, ft *entity.FuelType) error
	GetByID(ctx context.Context, id string) (*entity.FuelType, error)
	GetByName(ctx context.Context, name string) (*entity.FuelType, error)
	Update(ctx context.Context, ft *entity.FuelType) error
	// List devuelve los tipos ordenados por nombre; activeOnly filtra por is_active.
	List(ctx context.Context, activeOnly bool) ([]*entity.FuelType, error)
}
