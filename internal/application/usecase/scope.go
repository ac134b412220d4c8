package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/fuel-dashboard-api/internal/domain"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/reporting"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/repository"
)

// ScopeResolver es el único punto donde una organización se traduce a su conjunto de
// estaciones. Listados, escrituras y el dashboard pasan por aquí.
type ScopeResolver struct {
	stations repository.StationRepository
}

// NewScopeResolver construye el resolvedor.
func NewScopeResolver(stations repository.StationRepository) *ScopeResolver {
	return &ScopeResolver{stations: stations}
}

// Resolve devuelve las estaciones de la organización ordenadas por nombre. Con stationID
// no vacío el alcance se reduce a esa estación, o queda vacío si no es de la organización.
func (r *ScopeResolver) Resolve(ctx context.Context, organizationID, stationID string) (reporting.StationScope, error) {
	list, err := r.stations.ListByOrganization(ctx, organizationID)
	if err != nil {
		return reporting.StationScope{}, fmt.Errorf("resolver estaciones: %w", err)
	}
	if stationID == "" {
		return reporting.NewStationScope(organizationID, list), nil
	}
	if !validID(stationID) {
		return reporting.NewStationScope(organizationID, nil), nil
	}
	for _, st := range list {
		if st.ID == stationID {
			return reporting.NewStationScope(organizationID, []*entity.Station{st}), nil
		}
	}
	return reporting.NewStationScope(organizationID, nil), nil
}

// StationForWrite valida que una factura o venta referencie una estación de la organización.
// Una estación ajena se rechaza con ErrInvalidStation, no se oculta.
func (r *ScopeResolver) StationForWrite(ctx context.Context, organizationID, stationID string) (*entity.Station, error) {
	if !validID(stationID) {
		return nil, domain.ErrInvalidStation
	}
	st, err := r.stations.GetForOrganization(ctx, stationID, organizationID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, domain.ErrInvalidStation
	}
	return st, nil
}

// StationForRecord comprueba que un registro existente sea visible para la organización.
// Si su estación es de otra organización el registro se trata como inexistente.
func (r *ScopeResolver) StationForRecord(ctx context.Context, organizationID, stationID string) (*entity.Station, error) {
	st, err := r.stations.GetForOrganization(ctx, stationID, organizationID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, domain.ErrNotFound
	}
	return st, nil
}

// validID los ids son UUID: uno malformado no puede existir y no se envía a la base.
func validID(id string) bool {
	return uuid.Validate(id) == nil
}

// validFilter un filtro de id vacío no filtra; uno malformado no coincide con nada.
func validFilter(id string) bool {
	return id == "" || validID(id)
}
