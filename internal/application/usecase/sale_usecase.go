package usecase

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/fuel-dashboard-api/internal/application/dto"
	appreporting "github.com/jhoicas/fuel-dashboard-api/internal/application/reporting"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/entity"
	domainreporting "github.com/jhoicas/fuel-dashboard-api/internal/domain/reporting"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/repository"
)

// SaleUseCase casos de uso de ventas. Toda lectura sale enriquecida con el costo atribuido.
type SaleUseCase struct {
	sales       repository.SaleRepository
	fuelTypes   repository.FuelTypeRepository
	scope       *ScopeResolver
	attributor  *appreporting.CostAttributor
	invalidator DashboardInvalidator
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	sales repository.SaleRepository,
	fuelTypes repository.FuelTypeRepository,
	scope *ScopeResolver,
	attributor *appreporting.CostAttributor,
	invalidator DashboardInvalidator,
) *SaleUseCase {
	if invalidator == nil {
		invalidator = noopInvalidator{}
	}
	return &SaleUseCase{sales: sales, fuelTypes: fuelTypes, scope: scope, attributor: attributor, invalidator: invalidator}
}

// Create registra una venta y la devuelve enriquecida.
func (uc *SaleUseCase) Create(ctx context.Context, organizationID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	st, err := uc.scope.StationForWrite(ctx, organizationID, in.StationID)
	if err != nil {
		return nil, err
	}
	ft, err := requireFuelType(ctx, uc.fuelTypes, in.FuelTypeID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	s := &entity.Sale{
		ID:           uuid.New().String(),
		SaleDate:     entity.DateOf(in.SaleDate.Time),
		StationID:    st.ID,
		FuelTypeID:   ft.ID,
		QuantitySold: in.QuantitySold,
		PricePerUnit: in.PricePerUnit,
		Notes:        in.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.Recalculate()
	if err := uc.sales.Create(ctx, s); err != nil {
		return nil, err
	}
	uc.invalidator.Invalidate(ctx, organizationID)
	return uc.enrichOne(ctx, s, singleNames(st, ft))
}

// Get obtiene una venta visible para la organización.
func (uc *SaleUseCase) Get(ctx context.Context, organizationID, id string) (*dto.SaleResponse, error) {
	s, st, err := uc.load(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	ft, err := uc.fuelTypes.GetByID(ctx, s.FuelTypeID)
	if err != nil {
		return nil, err
	}
	return uc.enrichOne(ctx, s, singleNames(st, ft))
}

// Update aplica los campos presentes y recalcula total_sales.
func (uc *SaleUseCase) Update(ctx context.Context, organizationID, id string, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	s, st, err := uc.load(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	if in.StationID != nil && *in.StationID != s.StationID {
		if st, err = uc.scope.StationForWrite(ctx, organizationID, *in.StationID); err != nil {
			return nil, err
		}
		s.StationID = st.ID
	}
	fuelTypeID := s.FuelTypeID
	if in.FuelTypeID != nil {
		fuelTypeID = *in.FuelTypeID
	}
	ft, err := requireFuelType(ctx, uc.fuelTypes, fuelTypeID)
	if err != nil {
		return nil, err
	}
	s.FuelTypeID = ft.ID

	if in.SaleDate != nil {
		s.SaleDate = entity.DateOf(in.SaleDate.Time)
	}
	if in.QuantitySold != nil {
		s.QuantitySold = *in.QuantitySold
	}
	if in.PricePerUnit != nil {
		s.PricePerUnit = *in.PricePerUnit
	}
	if in.Notes != nil {
		s.Notes = *in.Notes
	}
	s.Recalculate()
	s.UpdatedAt = time.Now().UTC()

	if err := uc.sales.Update(ctx, s); err != nil {
		return nil, err
	}
	uc.invalidator.Invalidate(ctx, organizationID)
	return uc.enrichOne(ctx, s, singleNames(st, ft))
}

// Delete borra una venta.
func (uc *SaleUseCase) Delete(ctx context.Context, organizationID, id string) error {
	if _, _, err := uc.load(ctx, organizationID, id); err != nil {
		return err
	}
	if err := uc.sales.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidator.Invalidate(ctx, organizationID)
	return nil
}

// List ventas de la organización, fecha descendente, con costo y utilidad atribuidos.
func (uc *SaleUseCase) List(ctx context.Context, organizationID string, f dto.LedgerFilter) ([]dto.SaleResponse, error) {
	if !validFilter(f.StationID) || !validFilter(f.FuelTypeID) {
		return []dto.SaleResponse{}, nil
	}
	scope, err := uc.scope.Resolve(ctx, organizationID, "")
	if err != nil {
		return nil, err
	}
	list, err := uc.sales.List(ctx, repository.SaleFilter{
		StationIDs: scope.IDs(),
		StationID:  f.StationID,
		FuelTypeID: f.FuelTypeID,
		StartDate:  f.StartDate,
		EndDate:    f.EndDate,
	})
	if err != nil {
		return nil, err
	}
	n, err := loadNames(ctx, scope, uc.fuelTypes)
	if err != nil {
		return nil, err
	}
	attrs, err := uc.attributor.AttributeAll(ctx, list)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for i, s := range list {
		items = append(items, toSaleResponse(s, attrs[i], n))
	}
	return items, nil
}

// ExportCSV escribe en w las ventas filtradas con las mismas columnas calculadas que List.
func (uc *SaleUseCase) ExportCSV(ctx context.Context, organizationID string, f dto.LedgerFilter, w io.Writer) error {
	items, err := uc.List(ctx, organizationID, f)
	if err != nil {
		return err
	}
	return appreporting.WriteSalesCSV(w, items)
}

func (uc *SaleUseCase) load(ctx context.Context, organizationID, id string) (*entity.Sale, *entity.Station, error) {
	if !validID(id) {
		return nil, nil, domain.ErrNotFound
	}
	s, err := uc.sales.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if s == nil {
		return nil, nil, domain.ErrNotFound
	}
	st, err := uc.scope.StationForRecord(ctx, organizationID, s.StationID)
	if err != nil {
		return nil, nil, err
	}
	return s, st, nil
}

func (uc *SaleUseCase) enrichOne(ctx context.Context, s *entity.Sale, n names) (*dto.SaleResponse, error) {
	attr, err := uc.attributor.Attribute(ctx, s)
	if err != nil {
		return nil, err
	}
	resp := toSaleResponse(s, attr, n)
	return &resp, nil
}

func toSaleResponse(s *entity.Sale, attr domainreporting.Attribution, n names) dto.SaleResponse {
	return dto.SaleResponse{
		ID:           s.ID,
		SaleDate:     dto.NewDate(s.SaleDate),
		StationID:    s.StationID,
		StationName:  n.station(s.StationID),
		FuelTypeID:   s.FuelTypeID,
		FuelTypeName: n.fuelType(s.FuelTypeID),
		QuantitySold: s.QuantitySold,
		PricePerUnit: s.PricePerUnit,
		TotalSales:   s.TotalSales,
		CostPrice:    attr.CostPrice,
		ProfitMargin: attr.ProfitMargin,
		TotalProfit:  attr.TotalProfit,
		Notes:        s.Notes,
		CreatedAt:    s.CreatedAt,
	}
}
