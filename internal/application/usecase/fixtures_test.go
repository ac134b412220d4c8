package usecase_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fuel-dashboard-api/internal/application/dto"
	appreporting "github.com/jhoicas/fuel-dashboard-api/internal/application/reporting"
	"github.com/jhoicas/fuel-dashboard-api/internal/application/usecase"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/fuel-dashboard-api/internal/infrastructure/memory"
)

// Estaciones y combustibles llevan UUID como en la base; ids malformados no se consultan.
const (
	orgA      = "org-a"
	orgB      = "org-b"
	stationA1 = "7f1c2a4e-0b5d-4c1e-9a51-3d2f6b8e0a11"
	stationA2 = "7f1c2a4e-0b5d-4c1e-9a51-3d2f6b8e0a12"
	stationB1 = "7f1c2a4e-0b5d-4c1e-9a51-3d2f6b8e0b21"
	regular   = "c3a9e1f0-5d2b-4f7a-8e6c-1b0d9f4a2c01"
	diesel    = "c3a9e1f0-5d2b-4f7a-8e6c-1b0d9f4a2c02"
)

type fixture struct {
	store       *memory.Store
	invalidator *recordingInvalidator
	docs        *memDocs
	scope       *usecase.ScopeResolver
	stations    *usecase.StationUseCase
	fuelTypes   *usecase.FuelTypeUseCase
	invoices    *usecase.InvoiceUseCase
	sales       *usecase.SaleUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	now := time.Now().UTC()

	for _, org := range []*entity.Organization{
		{ID: orgA, Name: "Org A", Email: "a@example.com", IsActive: true, CreatedAt: now},
		{ID: orgB, Name: "Org B", Email: "b@example.com", IsActive: true, CreatedAt: now},
	} {
		require.NoError(t, store.Organizations().Create(ctx, org))
	}
	for _, st := range []*entity.Station{
		{ID: stationA1, OrganizationID: orgA, Name: "Alpha", Location: "1 Main St", IsActive: true},
		{ID: stationA2, OrganizationID: orgA, Name: "Beta", Location: "2 Main St", IsActive: true},
		{ID: stationB1, OrganizationID: orgB, Name: "Gamma", Location: "3 Main St", IsActive: true},
	} {
		require.NoError(t, store.Stations().Create(ctx, st))
	}
	for _, ft := range []*entity.FuelType{
		{ID: regular, Name: "Regular", Unit: entity.UnitGallons, IsActive: true},
		{ID: diesel, Name: "Diesel", Unit: entity.UnitGallons, IsActive: true},
	} {
		require.NoError(t, store.FuelTypes().Create(ctx, ft))
	}

	inv := &recordingInvalidator{}
	docs := newMemDocs()
	scope := usecase.NewScopeResolver(store.Stations())
	return &fixture{
		store:       store,
		invalidator: inv,
		docs:        docs,
		scope:       scope,
		stations:    usecase.NewStationUseCase(store.Stations(), inv),
		fuelTypes:   usecase.NewFuelTypeUseCase(store.FuelTypes(), inv),
		invoices:    usecase.NewInvoiceUseCase(store.Invoices(), store.FuelTypes(), scope, docs, inv),
		sales: usecase.NewSaleUseCase(
			store.Sales(), store.FuelTypes(), scope,
			appreporting.NewCostAttributor(store.Reporting()), inv,
		),
	}
}

func (f *fixture) invoice(t *testing.T, stationID, date string, qty, price string) *dto.InvoiceResponse {
	t.Helper()
	resp, err := f.invoices.Create(context.Background(), orgA, dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-" + date,
		InvoiceDate:   mustDate(t, date),
		SupplierName:  "Shell Wholesale",
		StationID:     stationID,
		FuelTypeID:    regular,
		Quantity:      decimal.RequireFromString(qty),
		PricePerUnit:  decimal.RequireFromString(price),
	})
	require.NoError(t, err)
	return resp
}

func (f *fixture) sale(t *testing.T, stationID, date string, qty, price string) *dto.SaleResponse {
	t.Helper()
	resp, err := f.sales.Create(context.Background(), orgA, dto.CreateSaleRequest{
		SaleDate:     mustDate(t, date),
		StationID:    stationID,
		FuelTypeID:   regular,
		QuantitySold: decimal.RequireFromString(qty),
		PricePerUnit: decimal.RequireFromString(price),
	})
	require.NoError(t, err)
	return resp
}

func mustDate(t *testing.T, s string) dto.Date {
	t.Helper()
	d, err := entity.ParseDate(s)
	require.NoError(t, err)
	return dto.NewDate(d)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type recordingInvalidator struct {
	mu    sync.Mutex
	calls []string
}

func (r *recordingInvalidator) Invalidate(_ context.Context, organizationID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, organizationID)
}

func (r *recordingInvalidator) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

type memDocs struct {
	mu    sync.Mutex
	files map[string][]byte
	seq   int
}

func newMemDocs() *memDocs { return &memDocs{files: map[string][]byte{}} }

func (m *memDocs) Save(_ context.Context, invoiceID string, content io.Reader) (string, error) {
	b, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	ref := invoiceID + "-" + strconv.Itoa(m.seq) + ".pdf"
	m.files[ref] = b
	return ref, nil
}

func (m *memDocs) Open(_ context.Context, ref string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.files[ref]
	if !ok {
		return nil, os.ErrNotExist
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (m *memDocs) Delete(_ context.Context, ref string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, ref)
	return nil
}

func (m *memDocs) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files)
}
