package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/fuel-dashboard-api/internal/domain"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/repository"
)

var _ repository.StationRepository = (*StationRepo)(nil)

// StationRepo implementación del puerto StationRepository sobre PostgreSQL.
type StationRepo struct {
	q Querier
}

// NewStationRepository construye el adaptador de estaciones.
func NewStationRepository(q Querier) *StationRepo {
	return &StationRepo{q: q}
}

const stationColumns = `id, organization_id, name, location, city, state, is_active, created_at, updated_at`

// Create persiste una estación.
func (r *StationRepo) Create(ctx context.Context, s *entity.Station) error {
	query := `INSERT INTO stations (` + stationColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.OrganizationID, s.Name, s.Location, nullIfEmpty(s.City), nullIfEmpty(s.State),
		s.IsActive, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert station: %w", err)
	}
	return nil
}

// GetForOrganization obtiene la estación solo si pertenece a organizationID.
func (r *StationRepo) GetForOrganization(ctx context.Context, id, organizationID string) (*entity.Station, error) {
	query := `SELECT ` + stationColumns + ` FROM stations WHERE id = $1 AND organization_id = $2`
	s, err := scanStation(r.q.QueryRow(ctx, query, id, organizationID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get station: %w", err)
	}
	return s, nil
}

// Update actualiza los datos descriptivos de la estación. La organización no cambia.
func (r *StationRepo) Update(ctx context.Context, s *entity.Station) error {
	query := `
		UPDATE stations
		SET name = $3, location = $4, city = $5, state = $6, is_active = $7, updated_at = $8
		WHERE id = $1 AND organization_id = $2`
	tag, err := r.q.Exec(ctx, query,
		s.ID, s.OrganizationID, s.Name, s.Location, nullIfEmpty(s.City), nullIfEmpty(s.State),
		s.IsActive, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update station: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra la estación (y en cascada sus facturas y ventas).
func (r *StationRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM stations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete station: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByOrganization lista las estaciones de la organización ordenadas por nombre.
func (r *StationRepo) ListByOrganization(ctx context.Context, organizationID string) ([]*entity.Station, error) {
	query := `SELECT ` + stationColumns + ` FROM stations WHERE organization_id = $1 ORDER BY name, id`
	rows, err := r.q.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("list stations: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Station, 0)
	for rows.Next() {
		s, err := scanStation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan station: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStation(row rowScanner) (*entity.Station, error) {
	var (
		s           entity.Station
		city, state *string
	)
	if err := row.Scan(
		&s.ID, &s.OrganizationID, &s.Name, &s.Location, &city, &state, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	s.City = fromNullable(city)
	s.State = fromNullable(state)
	return &s, nil
}
