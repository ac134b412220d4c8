package repository

import (
	"context"

	"github.com/jhoicas/fuel-dashboard-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// FindByEmail busca por email en cualquier organización (el email es único global).
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
