package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/fuel-dashboard-api/internal/domain"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/repository"
)

var _ repository.FuelTypeRepository = (*FuelTypeRepo)(nil)

// FuelTypeRepo catálogo global de tipos de combustible.
type FuelTypeRepo struct {
	q Querier
}

// NewFuelTypeRepository construye el adaptador de tipos de combustible.
func NewFuelTypeRepository(q Querier) *FuelTypeRepo {
	return &FuelTypeRepo{q: q}
}

const fuelTypeColumns = `id, name, description, unit, is_active, created_at`

// Create persiste un tipo de combustible. Nombre duplicado -> domain.ErrDuplicate.
func (r *FuelTypeRepo) Create(ctx context.Context, ft *entity.FuelType) error {
	query := `INSERT INTO fuel_types (` + fuelTypeColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, ft.ID, ft.Name, nullIfEmpty(ft.Description), ft.Unit, ft.IsActive, ft.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert fuel type: %w", err)
	}
	return nil
}

// GetByID obtiene un tipo por ID.
func (r *FuelTypeRepo) GetByID(ctx context.Context, id string) (*entity.FuelType, error) {
	return r.findOne(ctx, `SELECT `+fuelTypeColumns+` FROM fuel_types WHERE id = $1`, id)
}

// GetByName obtiene un tipo por su nombre exacto.
func (r *FuelTypeRepo) GetByName(ctx context.Context, name string) (*entity.FuelType, error) {
	return r.findOne(ctx, `SELECT `+fuelTypeColumns+` FROM fuel_types WHERE name = $1`, name)
}

// Update renombra, cambia la unidad o activa/desactiva el tipo.
func (r *FuelTypeRepo) Update(ctx context.Context, ft *entity.FuelType) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE fuel_types SET name = $2, description = $3, unit = $4, is_active = $5
		WHERE id = $1`,
		ft.ID, ft.Name, nullIfEmpty(ft.Description), ft.Unit, ft.IsActive,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update fuel type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve los tipos ordenados por nombre.
func (r *FuelTypeRepo) List(ctx context.Context, activeOnly bool) ([]*entity.FuelType, error) {
	query := `SELECT ` + fuelTypeColumns + ` FROM fuel_types WHERE ($1 = FALSE OR is_active) ORDER BY name`
	rows, err := r.q.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list fuel types: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.FuelType, 0)
	for rows.Next() {
		ft, err := scanFuelType(rows)
		if err != nil {
			return nil, fmt.Errorf("scan fuel type: %w", err)
		}
		list = append(list, ft)
	}
	return list, rows.Err()
}

func (r *FuelTypeRepo) findOne(ctx context.Context, query, arg string) (*entity.FuelType, error) {
	ft, err := scanFuelType(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fuel type: %w", err)
	}
	return ft, nil
}

func scanFuelType(row rowScanner) (*entity.FuelType, error) {
	var (
		ft   entity.FuelType
		desc *string
	)
	if err := row.Scan(&ft.ID, &ft.Name, &desc, &ft.Unit, &ft.IsActive, &ft.CreatedAt); err != nil {
		return nil, err
	}
	ft.Description = fromNullable(desc)
	return &ft, nil
}
