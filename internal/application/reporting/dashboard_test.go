package reporting_test

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fuel-dashboard-api/internal/application/dto"
	"github.com/jhoicas/fuel-dashboard-api/internal/application/reporting"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/entity"
	domainreporting "github.com/jhoicas/fuel-dashboard-api/internal/domain/reporting"
	"github.com/jhoicas/fuel-dashboard-api/internal/infrastructure/memory"
)

var today = time.Date(2024, time.March, 20, 15, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return today }

type env struct {
	store    *memory.Store
	stations []*entity.Station
	seq      int
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	e := &env{store: memory.New()}
	require.NoError(t, e.store.Organizations().Create(ctx, &entity.Organization{ID: "org", Name: "Power Gas", Email: "o@x.com", IsActive: true}))
	for _, st := range []*entity.Station{
		{ID: "st-1", OrganizationID: "org", Name: "Alpha", Location: "a", IsActive: true},
		{ID: "st-2", OrganizationID: "org", Name: "Beta", Location: "b", IsActive: true},
	} {
		require.NoError(t, e.store.Stations().Create(ctx, st))
		e.stations = append(e.stations, st)
	}
	for _, ft := range []*entity.FuelType{
		{ID: "ft-reg", Name: "Regular", Unit: entity.UnitGallons, IsActive: true},
		{ID: "ft-die", Name: "Diesel", Unit: entity.UnitGallons, IsActive: true},
		{ID: "ft-old", Name: "Leaded", Unit: entity.UnitGallons, IsActive: false},
	} {
		require.NoError(t, e.store.FuelTypes().Create(ctx, ft))
	}
	return e
}

func (e *env) scope() domainreporting.StationScope {
	return domainreporting.NewStationScope("org", e.stations)
}

func (e *env) useCase(opts ...reporting.DashboardOption) *reporting.DashboardUseCase {
	opts = append([]reporting.DashboardOption{reporting.WithClock(fixedClock)}, opts...)
	return reporting.NewDashboardUseCase(e.store.Reporting(), e.store.FuelTypes(), e.store.Organizations(), opts...)
}

func (e *env) sale(t *testing.T, stationID, date, qty, price string) {
	t.Helper()
	e.seq++
	d, err := entity.ParseDate(date)
	require.NoError(t, err)
	s := &entity.Sale{
		ID:           "sale-" + date + "-" + stationID + "-" + strconv.Itoa(e.seq),
		SaleDate:     d,
		StationID:    stationID,
		FuelTypeID:   "ft-reg",
		QuantitySold: decimal.RequireFromString(qty),
		PricePerUnit: decimal.RequireFromString(price),
	}
	s.Recalculate()
	require.NoError(t, e.store.Sales().Create(context.Background(), s))
}

func (e *env) invoice(t *testing.T, stationID, date, qty, price string) {
	t.Helper()
	e.seq++
	d, err := entity.ParseDate(date)
	require.NoError(t, err)
	inv := &entity.Invoice{
		ID:           "inv-" + date + "-" + stationID + "-" + strconv.Itoa(e.seq),
		InvoiceDate:  d,
		SupplierName: "Shell",
		StationID:    stationID,
		FuelTypeID:   "ft-reg",
		Quantity:     decimal.RequireFromString(qty),
		PricePerUnit: decimal.RequireFromString(price),
	}
	inv.Recalculate()
	require.NoError(t, e.store.Invoices().Create(context.Background(), inv))
}

func days(n int) *int { return &n }

func assertDec(t *testing.T, want string, got decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "%s: esperado %s, obtenido %s", msg, want, got)
}

func TestBuild_KPIsDelMes(t *testing.T) {
	e := newEnv(t)
	e.invoice(t, "st-1", "2024-02-28", "500", "2.90") // mes anterior
	e.invoice(t, "st-1", "2024-03-05", "1000", "3.00")
	e.sale(t, "st-1", "2024-03-10", "100", "4.00")
	e.sale(t, "st-2", "2024-03-20", "50", "4.00")
	e.sale(t, "st-2", "2024-02-29", "70", "4.00") // mes anterior

	resp, err := e.useCase().Build(context.Background(), e.scope(), dto.DashboardQuery{})
	require.NoError(t, err)

	k := resp.KPIs
	assertDec(t, "200", k.TotalSalesToday, "ventas de hoy")
	assertDec(t, "600", k.TotalSalesThisMonth, "ventas del mes")
	assertDec(t, "150", k.TotalFuelSoldThisMonth, "litros vendidos")
	assertDec(t, "1000", k.TotalFuelPurchasedThisMonth, "litros comprados")
	assertDec(t, "3000", k.TotalPurchaseCostThisMonth, "costo de compras")
	assert.Equal(t, 2, k.StationCount)
}

func TestBuild_UtilidadDelMesNoEsLaSumaDeMargenes(t *testing.T) {
	e := newEnv(t)
	e.invoice(t, "st-1", "2024-03-05", "1000", "3.00")
	e.sale(t, "st-1", "2024-03-10", "100", "4.00")

	resp, err := e.useCase().Build(context.Background(), e.scope(), dto.DashboardQuery{})
	require.NoError(t, err)

	// El margen atribuido de la venta sería (4.00 - 3.00) * 100 = 100;
	// la utilidad gruesa descuenta todo el combustible comprado en el mes.
	assertDec(t, "-2600", resp.KPIs.ProfitThisMonth, "utilidad del mes")
}

func TestBuild_TendenciaRellenaConCeros(t *testing.T) {
	e := newEnv(t)
	e.sale(t, "st-1", "2024-03-18", "10", "4.00")
	e.sale(t, "st-2", "2024-03-18", "5", "4.00")
	e.sale(t, "st-1", "2024-03-12", "1", "4.00") // fuera de la ventana de 7 días

	resp, err := e.useCase().Build(context.Background(), e.scope(), dto.DashboardQuery{Days: days(7)})
	require.NoError(t, err)

	trend := resp.Charts.SalesTrend
	require.Len(t, trend, 8)
	assert.Equal(t, "2024-03-13", trend[0].Date.Format(entity.DateLayout))
	assert.Equal(t, "2024-03-20", trend[7].Date.Format(entity.DateLayout))
	for _, p := range trend {
		if p.Date.Format(entity.DateLayout) == "2024-03-18" {
			assertDec(t, "60", p.TotalSales, "día con ventas")
			assertDec(t, "15", p.TotalQuantity, "cantidad del día")
			continue
		}
		assert.True(t, p.TotalSales.IsZero(), p.Date.Format(entity.DateLayout))
	}
}

func TestBuild_VentanaPorDefectoYExplicita(t *testing.T) {
	e := newEnv(t)
	uc := e.useCase()
	ctx := context.Background()

	resp, err := uc.Build(ctx, e.scope(), dto.DashboardQuery{})
	require.NoError(t, err)
	assert.Len(t, resp.Charts.SalesTrend, 31)

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	resp, err = uc.Build(ctx, e.scope(), dto.DashboardQuery{StartDate: &start, EndDate: &end, Days: days(7)})
	require.NoError(t, err, "las fechas explícitas tienen prioridad sobre days")
	assert.Len(t, resp.Charts.SalesTrend, 10)
}

func TestBuild_PeriodoInvalido(t *testing.T) {
	e := newEnv(t)
	uc := e.useCase()
	ctx := context.Background()

	for _, n := range []int{0, 6, 366} {
		_, err := uc.Build(ctx, e.scope(), dto.DashboardQuery{Days: days(n)})
		assert.ErrorIs(t, err, domain.ErrInvalidPeriod, "days=%d", n)
	}

	start := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	_, err := uc.Build(ctx, e.scope(), dto.DashboardQuery{StartDate: &start, EndDate: &end})
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)

	start, end = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	_, err = uc.Build(ctx, e.scope(), dto.DashboardQuery{StartDate: &start, EndDate: &end, Days: days(3)})
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod, "days se valida aunque haya fechas")

	start = time.Date(1000, time.January, 1, 0, 0, 0, 0, time.UTC)
	end = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)
	_, err = uc.Build(ctx, e.scope(), dto.DashboardQuery{StartDate: &start, EndDate: &end})
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod, "rango explícito acotado")

	_, err = uc.Build(ctx, domainreporting.NewStationScope("org", nil), dto.DashboardQuery{Days: days(3)})
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod, "se valida antes de mirar el alcance")
}

func TestBuild_AlcanceVacio(t *testing.T) {
	e := newEnv(t)
	e.sale(t, "st-1", "2024-03-20", "10", "4.00")

	resp, err := e.useCase().Build(context.Background(), domainreporting.NewStationScope("org", nil), dto.DashboardQuery{})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.KPIs.StationCount)
	assert.True(t, resp.KPIs.TotalSalesToday.IsZero())
	assert.NotNil(t, resp.Charts.SalesTrend)
	assert.Empty(t, resp.Charts.SalesTrend)
	assert.Empty(t, resp.Charts.StationComparison)
	assert.Empty(t, resp.Charts.FuelBreakdown)
}

func TestBuild_ComparacionYDesgloseIncluyenFilasSinActividad(t *testing.T) {
	e := newEnv(t)
	e.sale(t, "st-1", "2024-03-10", "100", "4.00")

	resp, err := e.useCase().Build(context.Background(), e.scope(), dto.DashboardQuery{})
	require.NoError(t, err)

	cmp := resp.Charts.StationComparison
	require.Len(t, cmp, 2)
	assert.Equal(t, "Alpha", cmp[0].StationName)
	assertDec(t, "400", cmp[0].TotalSales, "Alpha")
	assert.Equal(t, "Beta", cmp[1].StationName)
	assert.True(t, cmp[1].TotalSales.IsZero())

	fb := resp.Charts.FuelBreakdown
	require.Len(t, fb, 2, "solo combustibles activos")
	assert.Equal(t, "Diesel", fb[0].FuelTypeName)
	assert.True(t, fb[0].QuantitySold.IsZero())
	assert.True(t, fb[0].QuantityPurchased.IsZero())
	assert.Equal(t, "Regular", fb[1].FuelTypeName)
	assertDec(t, "100", fb[1].QuantitySold, "Regular")
}

func TestBuild_UnaEstacion(t *testing.T) {
	e := newEnv(t)
	e.sale(t, "st-1", "2024-03-20", "10", "4.00")
	e.sale(t, "st-2", "2024-03-20", "20", "4.00")

	scope := domainreporting.NewStationScope("org", e.stations[1:])
	resp, err := e.useCase().Build(context.Background(), scope, dto.DashboardQuery{})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.KPIs.StationCount)
	assertDec(t, "80", resp.KPIs.TotalSalesToday, "solo Beta")
	require.Len(t, resp.Charts.StationComparison, 1)
}

// fakeCache versiona por organización como el adaptador de Redis. afterGet corre entre
// Get y Set, el hueco donde una escritura concurrente invalida.
type fakeCache struct {
	mu       sync.Mutex
	data     map[string]*dto.DashboardResponse
	versions map[string]int
	sets     int
	afterGet func()
}

func (c *fakeCache) Get(_ context.Context, key reporting.DashboardKey) (*dto.DashboardResponse, string, error) {
	c.mu.Lock()
	entry := key.OrganizationID + "|v" + strconv.Itoa(c.versions[key.OrganizationID]) + "|" + key.String()
	v := c.data[entry]
	hook := c.afterGet
	c.mu.Unlock()
	if hook != nil {
		hook()
	}
	return v, entry, nil
}

func (c *fakeCache) Set(_ context.Context, entry string, value *dto.DashboardResponse, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.data == nil {
		c.data = map[string]*dto.DashboardResponse{}
	}
	c.data[entry] = value
	c.sets++
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, organizationID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.versions == nil {
		c.versions = map[string]int{}
	}
	c.versions[organizationID]++
}

func TestBuild_UsaLaCache(t *testing.T) {
	e := newEnv(t)
	e.sale(t, "st-1", "2024-03-20", "10", "4.00")
	cache := &fakeCache{}
	uc := e.useCase(reporting.WithCache(cache, time.Minute))
	ctx := context.Background()

	first, err := uc.Build(ctx, e.scope(), dto.DashboardQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	e.sale(t, "st-1", "2024-03-20", "10", "4.00")
	second, err := uc.Build(ctx, e.scope(), dto.DashboardQuery{})
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, cache.sets)

	other, err := uc.Build(ctx, e.scope(), dto.DashboardQuery{Days: days(7)})
	require.NoError(t, err)
	assertDec(t, "80", other.KPIs.TotalSalesToday, "otra ventana es otra clave")
	assert.Equal(t, 2, cache.sets)
}

func TestBuild_InvalidacionDuranteElCalculoNoDejaEntradaVigente(t *testing.T) {
	e := newEnv(t)
	e.sale(t, "st-1", "2024-03-20", "10", "4.00")
	cache := &fakeCache{}
	uc := e.useCase(reporting.WithCache(cache, time.Minute))
	ctx := context.Background()

	// Una escritura invalida la organización mientras se calcula el primer dashboard.
	cache.afterGet = func() { cache.Invalidate(ctx, "org") }
	first, err := uc.Build(ctx, e.scope(), dto.DashboardQuery{})
	require.NoError(t, err)
	assertDec(t, "40", first.KPIs.TotalSalesToday, "primer cálculo")
	require.Equal(t, 1, cache.sets)
	var entries []string
	for k := range cache.data {
		entries = append(entries, k)
	}
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0], "org|v0|"), "se guarda bajo la versión leída en Get: %s", entries[0])

	cache.afterGet = nil
	e.sale(t, "st-1", "2024-03-20", "10", "4.00")
	second, err := uc.Build(ctx, e.scope(), dto.DashboardQuery{})
	require.NoError(t, err)
	assertDec(t, "80", second.KPIs.TotalSalesToday, "la versión nueva no ve el cálculo viejo")
	assert.Equal(t, 2, cache.sets)
}

func TestBuild_MesEnCursoIncluyeFechasPosterioresAHoy(t *testing.T) {
	e := newEnv(t)
	e.sale(t, "st-1", "2024-03-25", "10", "4.00")
	e.invoice(t, "st-1", "2024-03-28", "100", "3.00")

	resp, err := e.useCase().Build(context.Background(), e.scope(), dto.DashboardQuery{})
	require.NoError(t, err)

	k := resp.KPIs
	assert.True(t, k.TotalSalesToday.IsZero())
	assertDec(t, "40", k.TotalSalesThisMonth, "ventas del mes")
	assertDec(t, "10", k.TotalFuelSoldThisMonth, "litros vendidos")
	assertDec(t, "100", k.TotalFuelPurchasedThisMonth, "litros comprados")
	assertDec(t, "300", k.TotalPurchaseCostThisMonth, "costo de compras")
	assertDec(t, "-260", k.ProfitThisMonth, "utilidad")

	require.Len(t, resp.Charts.StationComparison, 2)
	assertDec(t, "40", resp.Charts.StationComparison[0].TotalSales, "Alpha")

	fb := resp.Charts.FuelBreakdown
	require.Len(t, fb, 2)
	assert.Equal(t, "Regular", fb[1].FuelTypeName)
	assertDec(t, "100", fb[1].QuantityPurchased, "Regular comprado")
	assertDec(t, "10", fb[1].QuantitySold, "Regular vendido")
}

type fakePDF struct{ got reporting.DashboardReport }

func (f *fakePDF) GenerateDashboardPDF(_ context.Context, r reporting.DashboardReport) ([]byte, error) {
	f.got = r
	return []byte("%PDF"), nil
}

func TestReport_PasaDatosAlGenerador(t *testing.T) {
	e := newEnv(t)
	gen := &fakePDF{}
	uc := e.useCase(reporting.WithPDFGenerator(gen))

	out, err := uc.Report(context.Background(), e.scope(), dto.DashboardQuery{Days: days(7)})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out))
	assert.Equal(t, "Power Gas", gen.got.OrganizationName)
	assert.Equal(t, []string{"Alpha", "Beta"}, gen.got.StationNames)
	assert.Equal(t, 8, gen.got.Window.Days())
	require.NotNil(t, gen.got.Dashboard)
}

func TestReport_VentanaYHoyCoincidenConElDashboard(t *testing.T) {
	e := newEnv(t)
	gen := &fakePDF{}
	calls := 0
	// Cada lectura del reloj avanza un día: solo debe leerse una vez por reporte.
	clock := func() time.Time {
		calls++
		return today.AddDate(0, 0, calls-1)
	}
	uc := e.useCase(reporting.WithPDFGenerator(gen), reporting.WithClock(clock))

	_, err := uc.Report(context.Background(), e.scope(), dto.DashboardQuery{Days: days(7)})
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	trend := gen.got.Dashboard.Charts.SalesTrend
	require.Len(t, trend, gen.got.Window.Days())
	assert.Equal(t, gen.got.Today, gen.got.Window.End)
	assert.Equal(t, dto.NewDate(gen.got.Window.End), trend[len(trend)-1].Date)
}
