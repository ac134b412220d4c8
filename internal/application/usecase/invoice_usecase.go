package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/fuel-dashboard-api/internal/application/dto"
	appreporting "github.com/jhoicas/fuel-dashboard-api/internal/application/reporting"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/repository"
)

// InvoiceUseCase casos de uso de facturas de compra.
// total_amount se recalcula en toda escritura; la estación debe ser de la organización.
type InvoiceUseCase struct {
	invoices    repository.InvoiceRepository
	fuelTypes   repository.FuelTypeRepository
	scope       *ScopeResolver
	docs        DocumentStore
	invalidator DashboardInvalidator
}

// NewInvoiceUseCase construye el caso de uso. docs e invalidator pueden ser nil.
func NewInvoiceUseCase(
	invoices repository.InvoiceRepository,
	fuelTypes repository.FuelTypeRepository,
	scope *ScopeResolver,
	docs DocumentStore,
	invalidator DashboardInvalidator,
) *InvoiceUseCase {
	if invalidator == nil {
		invalidator = noopInvalidator{}
	}
	return &InvoiceUseCase{invoices: invoices, fuelTypes: fuelTypes, scope: scope, docs: docs, invalidator: invalidator}
}

// Create registra una factura.
func (uc *InvoiceUseCase) Create(ctx context.Context, organizationID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
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
	inv := &entity.Invoice{
		ID:            uuid.New().String(),
		InvoiceNumber: strings.TrimSpace(in.InvoiceNumber),
		InvoiceDate:   entity.DateOf(in.InvoiceDate.Time),
		SupplierName:  strings.TrimSpace(in.SupplierName),
		StationID:     st.ID,
		FuelTypeID:    ft.ID,
		Quantity:      in.Quantity,
		PricePerUnit:  in.PricePerUnit,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	inv.Recalculate()
	if err := uc.invoices.Create(ctx, inv); err != nil {
		return nil, err
	}
	uc.invalidator.Invalidate(ctx, organizationID)
	resp := toInvoiceResponse(inv, singleNames(st, ft))
	return &resp, nil
}

// Get obtiene una factura visible para la organización.
func (uc *InvoiceUseCase) Get(ctx context.Context, organizationID, id string) (*dto.InvoiceResponse, error) {
	inv, st, err := uc.load(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	ft, err := uc.fuelTypes.GetByID(ctx, inv.FuelTypeID)
	if err != nil {
		return nil, err
	}
	resp := toInvoiceResponse(inv, singleNames(st, ft))
	return &resp, nil
}

// Update aplica los campos presentes y recalcula el total.
func (uc *InvoiceUseCase) Update(ctx context.Context, organizationID, id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	inv, st, err := uc.load(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	if in.StationID != nil && *in.StationID != inv.StationID {
		if st, err = uc.scope.StationForWrite(ctx, organizationID, *in.StationID); err != nil {
			return nil, err
		}
		inv.StationID = st.ID
	}
	fuelTypeID := inv.FuelTypeID
	if in.FuelTypeID != nil {
		fuelTypeID = *in.FuelTypeID
	}
	ft, err := requireFuelType(ctx, uc.fuelTypes, fuelTypeID)
	if err != nil {
		return nil, err
	}
	inv.FuelTypeID = ft.ID

	if in.InvoiceNumber != nil {
		inv.InvoiceNumber = strings.TrimSpace(*in.InvoiceNumber)
	}
	if in.InvoiceDate != nil {
		inv.InvoiceDate = entity.DateOf(in.InvoiceDate.Time)
	}
	if in.SupplierName != nil {
		inv.SupplierName = strings.TrimSpace(*in.SupplierName)
	}
	if in.Quantity != nil {
		inv.Quantity = *in.Quantity
	}
	if in.PricePerUnit != nil {
		inv.PricePerUnit = *in.PricePerUnit
	}
	if in.Notes != nil {
		inv.Notes = *in.Notes
	}
	inv.Recalculate()
	inv.UpdatedAt = time.Now().UTC()

	if err := uc.invoices.Update(ctx, inv); err != nil {
		return nil, err
	}
	uc.invalidator.Invalidate(ctx, organizationID)
	resp := toInvoiceResponse(inv, singleNames(st, ft))
	return &resp, nil
}

// Delete borra la factura y su documento adjunto, si lo tiene.
func (uc *InvoiceUseCase) Delete(ctx context.Context, organizationID, id string) error {
	inv, _, err := uc.load(ctx, organizationID, id)
	if err != nil {
		return err
	}
	if err := uc.invoices.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidator.Invalidate(ctx, organizationID)
	if inv.DocumentPath != "" && uc.docs != nil {
		if err := uc.docs.Delete(ctx, inv.DocumentPath); err != nil {
			return fmt.Errorf("borrar documento de la factura: %w", err)
		}
	}
	return nil
}

// List facturas de la organización con filtros opcionales, fecha descendente.
func (uc *InvoiceUseCase) List(ctx context.Context, organizationID string, f dto.LedgerFilter) ([]dto.InvoiceResponse, error) {
	if !validFilter(f.StationID) || !validFilter(f.FuelTypeID) {
		return []dto.InvoiceResponse{}, nil
	}
	scope, err := uc.scope.Resolve(ctx, organizationID, "")
	if err != nil {
		return nil, err
	}
	list, err := uc.invoices.List(ctx, repository.InvoiceFilter{
		StationIDs: scope.IDs(),
		StationID:  f.StationID,
		FuelTypeID: f.FuelTypeID,
		StartDate:  f.StartDate,
		EndDate:    f.EndDate,
		Search:     strings.TrimSpace(f.Search),
	})
	if err != nil {
		return nil, err
	}
	n, err := loadNames(ctx, scope, uc.fuelTypes)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, toInvoiceResponse(inv, n))
	}
	return items, nil
}

// ExportCSV escribe en w las facturas filtradas.
func (uc *InvoiceUseCase) ExportCSV(ctx context.Context, organizationID string, f dto.LedgerFilter, w io.Writer) error {
	items, err := uc.List(ctx, organizationID, f)
	if err != nil {
		return err
	}
	return appreporting.WriteInvoicesCSV(w, items)
}

// AttachDocument guarda un PDF para la factura y reemplaza el anterior.
func (uc *InvoiceUseCase) AttachDocument(
	ctx context.Context,
	organizationID, id, filename string,
	content io.Reader,
) (*dto.InvoiceResponse, error) {
	if uc.docs == nil {
		return nil, fmt.Errorf("almacenamiento de documentos no configurado")
	}
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return nil, fmt.Errorf("%w: solo se permiten archivos PDF", domain.ErrInvalidDocument)
	}
	inv, st, err := uc.load(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}

	ref, err := uc.docs.Save(ctx, inv.ID, content)
	if err != nil {
		return nil, fmt.Errorf("guardar documento: %w", err)
	}
	previous := inv.DocumentPath
	inv.DocumentPath = ref
	inv.UpdatedAt = time.Now().UTC()
	if err := uc.invoices.Update(ctx, inv); err != nil {
		_ = uc.docs.Delete(ctx, ref)
		return nil, err
	}
	if previous != "" && previous != ref {
		if err := uc.docs.Delete(ctx, previous); err != nil {
			return nil, fmt.Errorf("borrar documento anterior: %w", err)
		}
	}

	ft, err := uc.fuelTypes.GetByID(ctx, inv.FuelTypeID)
	if err != nil {
		return nil, err
	}
	resp := toInvoiceResponse(inv, singleNames(st, ft))
	return &resp, nil
}

// OpenDocument abre el PDF adjunto. Sin documento -> domain.ErrNotFound.
// El llamador cierra el lector.
func (uc *InvoiceUseCase) OpenDocument(ctx context.Context, organizationID, id string) (io.ReadCloser, string, error) {
	inv, _, err := uc.load(ctx, organizationID, id)
	if err != nil {
		return nil, "", err
	}
	if inv.DocumentPath == "" || uc.docs == nil {
		return nil, "", domain.ErrNotFound
	}
	rc, err := uc.docs.Open(ctx, inv.DocumentPath)
	if err != nil {
		return nil, "", err
	}
	return rc, documentFilename(inv), nil
}

// load obtiene la factura y su estación; ajena u ausente -> ErrNotFound.
func (uc *InvoiceUseCase) load(ctx context.Context, organizationID, id string) (*entity.Invoice, *entity.Station, error) {
	if !validID(id) {
		return nil, nil, domain.ErrNotFound
	}
	inv, err := uc.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if inv == nil {
		return nil, nil, domain.ErrNotFound
	}
	st, err := uc.scope.StationForRecord(ctx, organizationID, inv.StationID)
	if err != nil {
		return nil, nil, err
	}
	return inv, st, nil
}

func documentFilename(inv *entity.Invoice) string {
	if inv.InvoiceNumber != "" {
		return "invoice_" + inv.InvoiceNumber + ".pdf"
	}
	return "invoice_" + inv.ID + ".pdf"
}

func requireFuelType(ctx context.Context, repo repository.FuelTypeRepository, id string) (*entity.FuelType, error) {
	if !validID(id) {
		return nil, domain.ErrInvalidFuelType
	}
	ft, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ft == nil {
		return nil, domain.ErrInvalidFuelType
	}
	return ft, nil
}

func toInvoiceResponse(inv *entity.Invoice, n names) dto.InvoiceResponse {
	return dto.InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		InvoiceDate:   dto.NewDate(inv.InvoiceDate),
		SupplierName:  inv.SupplierName,
		StationID:     inv.StationID,
		StationName:   n.station(inv.StationID),
		FuelTypeID:    inv.FuelTypeID,
		FuelTypeName:  n.fuelType(inv.FuelTypeID),
		Quantity:      inv.Quantity,
		PricePerUnit:  inv.PricePerUnit,
		TotalAmount:   inv.TotalAmount,
		Notes:         inv.Notes,
		HasDocument:   inv.DocumentPath != "",
		CreatedAt:     inv.CreatedAt,
	}
}
