package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/jhoicas/fuel-dashboard-api/internal/domain"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/repository"
)

var (
	_ repository.StationRepository  = (*StationRepo)(nil)
	_ repository.FuelTypeRepository = (*FuelTypeRepo)(nil)
)

type StationRepo struct{ s *Store }

func (r *StationRepo) Create(_ context.Context, st *entity.Station) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.stations[st.ID] = *st
	return nil
}

func (r *StationRepo) GetForOrganization(_ context.Context, id, organizationID string) (*entity.Station, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	st, ok := r.s.stations[id]
	if !ok || st.OrganizationID != organizationID {
		return nil, nil
	}
	return &st, nil
}

func (r *StationRepo) Update(_ context.Context, st *entity.Station) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.stations[st.ID]
	if !ok || cur.OrganizationID != st.OrganizationID {
		return domain.ErrNotFound
	}
	r.s.stations[st.ID] = *st
	return nil
}

// Delete borra la estación junto con sus facturas y ventas, como el ON DELETE CASCADE de PostgreSQL.
func (r *StationRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.stations[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.stations, id)
	for k, inv := range r.s.invoices {
		if inv.StationID == id {
			delete(r.s.invoices, k)
		}
	}
	for k, sale := range r.s.sales {
		if sale.StationID == id {
			delete(r.s.sales, k)
		}
	}
	return nil
}

func (r *StationRepo) ListByOrganization(_ context.Context, organizationID string) ([]*entity.Station, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Station, 0)
	for _, st := range r.s.stations {
		if st.OrganizationID == organizationID {
			cp := st
			list = append(list, &cp)
		}
	}
	slices.SortFunc(list, func(a, b *entity.Station) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return list, nil
}

type FuelTypeRepo struct{ s *Store }

func (r *FuelTypeRepo) Create(_ context.Context, ft *entity.FuelType) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, cur := range r.s.fuelTypes {
		if cur.Name == ft.Name {
			return domain.ErrDuplicate
		}
	}
	r.s.fuelTypes[ft.ID] = *ft
	return nil
}

func (r *FuelTypeRepo) GetByID(_ context.Context, id string) (*entity.FuelType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	ft, ok := r.s.fuelTypes[id]
	if !ok {
		return nil, nil
	}
	return &ft, nil
}

func (r *FuelTypeRepo) GetByName(_ context.Context, name string) (*entity.FuelType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, ft := range r.s.fuelTypes {
		if ft.Name == name {
			found := ft
			return &found, nil
		}
	}
	return nil, nil
}

func (r *FuelTypeRepo) Update(_ context.Context, ft *entity.FuelType) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.fuelTypes[ft.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, cur := range r.s.fuelTypes {
		if id != ft.ID && cur.Name == ft.Name {
			return domain.ErrDuplicate
		}
	}
	r.s.fuelTypes[ft.ID] = *ft
	return nil
}

func (r *FuelTypeRepo) List(_ context.Context, activeOnly bool) ([]*entity.FuelType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.FuelType, 0, len(r.s.fuelTypes))
	for _, ft := range r.s.fuelTypes {
		if activeOnly && !ft.IsActive {
			continue
		}
		cp := ft
		list = append(list, &cp)
	}
	slices.SortFunc(list, func(a, b *entity.FuelType) int { return strings.Compare(a.Name, b.Name) })
	return list, nil
}
