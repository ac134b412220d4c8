package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/fuel-dashboard-api/internal/domain"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/repository"
)

// Asegura que OrganizationRepo implementa repository.OrganizationRepository.
var _ repository.OrganizationRepository = (*OrganizationRepo)(nil)

// OrganizationRepo implementación del puerto OrganizationRepository sobre PostgreSQL (pool o tx).
type OrganizationRepo struct {
	q Querier
}

// NewOrganizationRepository construye el adaptador de persistencia para organizaciones.
func NewOrganizationRepository(q Querier) *OrganizationRepo {
	return &OrganizationRepo{q: q}
}

const organizationColumns = `id, name, email, phone, address, is_active, is_demo, created_at, updated_at`

// Create persiste una nueva organización.
func (r *OrganizationRepo) Create(ctx context.Context, org *entity.Organization) error {
	query := `
		INSERT INTO organizations (` + organizationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		org.ID, org.Name, org.Email, nullIfEmpty(org.Phone), nullIfEmpty(org.Address),
		org.IsActive, org.IsDemo, org.CreatedAt, org.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert organization: %w", err)
	}
	return nil
}

// GetByID obtiene una organización por ID. Devuelve nil, nil si no existe.
func (r *OrganizationRepo) GetByID(ctx context.Context, id string) (*entity.Organization, error) {
	return r.findOne(ctx, `SELECT `+organizationColumns+` FROM organizations WHERE id = $1`, id)
}

// GetByEmail obtiene una organización por su email de contacto.
func (r *OrganizationRepo) GetByEmail(ctx context.Context, email string) (*entity.Organization, error) {
	return r.findOne(ctx, `SELECT `+organizationColumns+` FROM organizations WHERE lower(email) = lower($1)`, email)
}

// Update actualiza datos de contacto y banderas.
func (r *OrganizationRepo) Update(ctx context.Context, org *entity.Organization) error {
	query := `
		UPDATE organizations
		SET name = $2, phone = $3, address = $4, is_active = $5, is_demo = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		org.ID, org.Name, nullIfEmpty(org.Phone), nullIfEmpty(org.Address),
		org.IsActive, org.IsDemo, org.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update organization: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OrganizationRepo) findOne(ctx context.Context, query string, arg string) (*entity.Organization, error) {
	var (
		o              entity.Organization
		phone, address *string
	)
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&o.ID, &o.Name, &o.Email, &phone, &address, &o.IsActive, &o.IsDemo, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get organization: %w", err)
	}
	o.Phone = fromNullable(phone)
	o.Address = fromNullable(address)
	return &o, nil
}
