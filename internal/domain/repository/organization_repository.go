package repository

import (
	"context"

	"github.com/jhoicas/fuel-dashboard-api/internal/domain/entity"
)

// OrganizationRepository define el puerto de persistencia para Organization (DIP).
// La implementación vive en infrastructure.
type OrganizationRepository interface {
	Create(ctx context.Context, org *entity.Organization) error
	GetByID(ctx context.Context, id string) (*entity.Organization, error)
	GetByEmail(ctx context.Context, email string) (*entity.Organization, error)
	Update(ctx context.Context, org *entity.Organization) error
}
