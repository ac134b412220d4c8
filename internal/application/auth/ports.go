package auth

import (
	"context"

	"github.com/jhoicas/fuel-dashboard-api/internal/domain/repository"
)

// RegistrationTxRunner ejecuta fn con repos atados a una misma transacción.
type RegistrationTxRunner interface {
	RunRegistration(ctx context.Context, fn func(
		orgRepo repository.OrganizationRepository,
		userRepo repository.UserRepository,
	) error) error
}
