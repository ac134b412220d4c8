package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/jhoicas/fuel-dashboard-api/internal/domain"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/repository"
)

var (
	_ repository.InvoiceRepository = (*InvoiceRepo)(nil)
	_ repository.SaleRepository    = (*SaleRepo)(nil)
)

type InvoiceRepo struct{ s *Store }

func (r *InvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.fuelTypes[inv.FuelTypeID]; !ok {
		return domain.ErrInvalidFuelType
	}
	r.s.invoices[inv.ID] = *inv
	return nil
}

func (r *InvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	return &inv, nil
}

func (r *InvoiceRepo) Update(_ context.Context, inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.invoices[inv.ID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.s.fuelTypes[inv.FuelTypeID]; !ok {
		return domain.ErrInvalidFuelType
	}
	r.s.invoices[inv.ID] = *inv
	return nil
}

func (r *InvoiceRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.invoices[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.invoices, id)
	return nil
}

func (r *InvoiceRepo) List(_ context.Context, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	scope := idSet(f.StationIDs)
	list := make([]*entity.Invoice, 0)
	for _, inv := range r.s.invoices {
		if _, ok := scope[inv.StationID]; !ok {
			continue
		}
		if f.StationID != "" && inv.StationID != f.StationID {
			continue
		}
		if f.FuelTypeID != "" && inv.FuelTypeID != f.FuelTypeID {
			continue
		}
		if !inDateRange(inv.InvoiceDate, f.StartDate, f.EndDate) {
			continue
		}
		if f.Search != "" && !containsFold(inv.InvoiceNumber, f.Search) && !containsFold(inv.SupplierName, f.Search) {
			continue
		}
		cp := inv
		list = append(list, &cp)
	}
	slices.SortFunc(list, func(a, b *entity.Invoice) int {
		return cmp.Or(b.InvoiceDate.Compare(a.InvoiceDate), b.CreatedAt.Compare(a.CreatedAt))
	})
	return list, nil
}

type SaleRepo struct{ s *Store }

func (r *SaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.fuelTypes[sale.FuelTypeID]; !ok {
		return domain.ErrInvalidFuelType
	}
	r.s.sales[sale.ID] = *sale
	return nil
}

func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sale, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	return &sale, nil
}

func (r *SaleRepo) Update(_ context.Context, sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sales[sale.ID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.s.fuelTypes[sale.FuelTypeID]; !ok {
		return domain.ErrInvalidFuelType
	}
	r.s.sales[sale.ID] = *sale
	return nil
}

func (r *SaleRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sales[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.sales, id)
	return nil
}

func (r *SaleRepo) List(_ context.Context, f repository.SaleFilter) ([]*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	scope := idSet(f.StationIDs)
	list := make([]*entity.Sale, 0)
	for _, sale := range r.s.sales {
		if _, ok := scope[sale.StationID]; !ok {
			continue
		}
		if f.StationID != "" && sale.StationID != f.StationID {
			continue
		}
		if f.FuelTypeID != "" && sale.FuelTypeID != f.FuelTypeID {
			continue
		}
		if !inDateRange(sale.SaleDate, f.StartDate, f.EndDate) {
			continue
		}
		cp := sale
		list = append(list, &cp)
	}
	slices.SortFunc(list, func(a, b *entity.Sale) int {
		return cmp.Or(b.SaleDate.Compare(a.SaleDate), b.CreatedAt.Compare(a.CreatedAt))
	})
	return list, nil
}
