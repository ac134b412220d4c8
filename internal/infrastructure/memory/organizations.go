package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/fuel-dashboard-api/internal/domain"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/repository"
)

var (
	_ repository.OrganizationRepository = (*OrganizationRepo)(nil)
	_ repository.UserRepository         = (*UserRepo)(nil)
)

type OrganizationRepo struct{ s *Store }

func (r *OrganizationRepo) Create(_ context.Context, org *entity.Organization) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.organizations {
		if strings.EqualFold(o.Email, org.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.organizations[org.ID] = *org
	return nil
}

func (r *OrganizationRepo) GetByID(_ context.Context, id string) (*entity.Organization, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.organizations[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r *OrganizationRepo) GetByEmail(_ context.Context, email string) (*entity.Organization, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, o := range r.s.organizations {
		if strings.EqualFold(o.Email, email) {
			found := o
			return &found, nil
		}
	}
	return nil, nil
}

func (r *OrganizationRepo) Update(_ context.Context, org *entity.Organization) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.organizations[org.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.organizations[org.ID] = *org
	return nil
}

type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}
