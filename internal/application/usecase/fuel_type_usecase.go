package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/fuel-dashboard-api/internal/application/dto"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/repository"
)

// FuelTypeUseCase catálogo global de combustibles. No hay borrado: se desactiva.
type FuelTypeUseCase struct {
	repo        repository.FuelTypeRepository
	invalidator DashboardInvalidator
}

// NewFuelTypeUseCase construye el caso de uso. invalidator puede ser nil.
func NewFuelTypeUseCase(repo repository.FuelTypeRepository, invalidator DashboardInvalidator) *FuelTypeUseCase {
	if invalidator == nil {
		invalidator = noopInvalidator{}
	}
	return &FuelTypeUseCase{repo: repo, invalidator: invalidator}
}

// ListActive tipos activos ordenados por nombre.
func (uc *FuelTypeUseCase) ListActive(ctx context.Context) ([]dto.FuelTypeResponse, error) {
	list, err := uc.repo.List(ctx, true)
	if err != nil {
		return nil, err
	}
	items := make([]dto.FuelTypeResponse, 0, len(list))
	for _, ft := range list {
		items = append(items, toFuelTypeResponse(ft))
	}
	return items, nil
}

// Create registra un tipo nuevo. Nombre repetido -> domain.ErrDuplicate.
func (uc *FuelTypeUseCase) Create(ctx context.Context, in dto.CreateFuelTypeRequest) (*dto.FuelTypeResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	unit := in.Unit
	if unit == "" {
		unit = entity.UnitLiters
	}
	ft := &entity.FuelType{
		ID:          uuid.New().String(),
		Name:        name,
		Description: in.Description,
		Unit:        unit,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, ft); err != nil {
		return nil, err
	}
	uc.invalidator.Invalidate(ctx, "")
	resp := toFuelTypeResponse(ft)
	return &resp, nil
}

// Update renombra, cambia la unidad o activa/desactiva.
func (uc *FuelTypeUseCase) Update(ctx context.Context, id string, in dto.UpdateFuelTypeRequest) (*dto.FuelTypeResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	ft, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ft == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		ft.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		ft.Description = *in.Description
	}
	if in.Unit != nil && *in.Unit != "" {
		ft.Unit = *in.Unit
	}
	if in.IsActive != nil {
		ft.IsActive = *in.IsActive
	}
	if err := uc.repo.Update(ctx, ft); err != nil {
		return nil, err
	}
	uc.invalidator.Invalidate(ctx, "")
	resp := toFuelTypeResponse(ft)
	return &resp, nil
}

func toFuelTypeResponse(ft *entity.FuelType) dto.FuelTypeResponse {
	return dto.FuelTypeResponse{
		ID:          ft.ID,
		Name:        ft.Name,
		Description: ft.Description,
		Unit:        ft.Unit,
		IsActive:    ft.IsActive,
		CreatedAt:   ft.CreatedAt,
	}
}
