package repository

import (
	"context"

	"github.com/jhoicas/fuel-dashboard-api/internal/domain/entity"
)

// StationRepository define el puerto de persistencia para Station.
// Todas las lecturas de negocio pasan por el organizationID del principal.
type StationRepository interface {
	Create(ctx context.Context, station *entity.Station) error
	// GetForOrganization devuelve nil, nil si la estación no existe o es de otra organización.
	GetForOrganization(ctx context.Context, id, organizationID string) (*entity.Station, error)
	Update(ctx context.Context, station *entity.Station) error
	Delete(ctx context.Context, id string) error
	// ListByOrganization devuelve las estaciones ordenadas por nombre.
	ListByOrganization(ctx context.Context, organizationID string) ([]*entity.Station, error)
}
