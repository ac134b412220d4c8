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

// StationUseCase casos de uso CRUD para estaciones, siempre dentro de la organización del principal.
type StationUseCase struct {
	repo        repository.StationRepository
	invalidator DashboardInvalidator
}

// NewStationUseCase construye el caso de uso. invalidator puede ser nil.
func NewStationUseCase(repo repository.StationRepository, invalidator DashboardInvalidator) *StationUseCase {
	if invalidator == nil {
		invalidator = noopInvalidator{}
	}
	return &StationUseCase{repo: repo, invalidator: invalidator}
}

// Create crea una estación activa.
func (uc *StationUseCase) Create(ctx context.Context, organizationID string, in dto.CreateStationRequest) (*dto.StationResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	st := &entity.Station{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		Name:           strings.TrimSpace(in.Name),
		Location:       strings.TrimSpace(in.Location),
		City:           in.City,
		State:          in.State,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, st); err != nil {
		return nil, err
	}
	uc.invalidator.Invalidate(ctx, organizationID)
	return toStationResponse(st), nil
}

// Get obtiene una estación de la organización.
func (uc *StationUseCase) Get(ctx context.Context, organizationID, id string) (*dto.StationResponse, error) {
	st, err := uc.get(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	return toStationResponse(st), nil
}

// Update aplica los campos presentes.
func (uc *StationUseCase) Update(ctx context.Context, organizationID, id string, in dto.UpdateStationRequest) (*dto.StationResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	st, err := uc.get(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		st.Name = strings.TrimSpace(*in.Name)
	}
	if in.Location != nil {
		st.Location = strings.TrimSpace(*in.Location)
	}
	if in.City != nil {
		st.City = *in.City
	}
	if in.State != nil {
		st.State = *in.State
	}
	if in.IsActive != nil {
		st.IsActive = *in.IsActive
	}
	st.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, st); err != nil {
		return nil, err
	}
	uc.invalidator.Invalidate(ctx, organizationID)
	return toStationResponse(st), nil
}

// Delete elimina la estación y, en cascada, sus facturas y ventas.
func (uc *StationUseCase) Delete(ctx context.Context, organizationID, id string) error {
	if _, err := uc.get(ctx, organizationID, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidator.Invalidate(ctx, organizationID)
	return nil
}

// List estaciones de la organización ordenadas por nombre.
func (uc *StationUseCase) List(ctx context.Context, organizationID string) ([]dto.StationResponse, error) {
	list, err := uc.repo.ListByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StationResponse, 0, len(list))
	for _, st := range list {
		items = append(items, *toStationResponse(st))
	}
	return items, nil
}

func (uc *StationUseCase) get(ctx context.Context, organizationID, id string) (*entity.Station, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	st, err := uc.repo.GetForOrganization(ctx, id, organizationID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, domain.ErrNotFound
	}
	return st, nil
}

func toStationResponse(st *entity.Station) *dto.StationResponse {
	return &dto.StationResponse{
		ID:             st.ID,
		Name:           st.Name,
		Location:       st.Location,
		City:           st.City,
		State:          st.State,
		IsActive:       st.IsActive,
		OrganizationID: st.OrganizationID,
		CreatedAt:      st.CreatedAt,
	}
}
