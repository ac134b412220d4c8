package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/fuel-dashboard-api/internal/application/dto"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/entity"
	domainreporting "github.com/jhoicas/fuel-dashboard-api/internal/domain/reporting"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/repository"
	"github.com/jhoicas/fuel-dashboard-api/pkg/logger"
)

// DashboardUseCase calcula KPIs y gráficos del dashboard.
//
// Fuente de datos: ReportingRepository (consultas read-only) y el catálogo de combustibles.
// Recibe siempre un StationScope ya resuelto; nunca filtra por organización por su cuenta.
type DashboardUseCase struct {
	reportRepo   repository.ReportingRepository
	fuelTypeRepo repository.FuelTypeRepository
	orgRepo      repository.OrganizationRepository
	cache        DashboardCache
	cacheTTL     time.Duration
	pdf          DashboardPDFGenerator
	log          *logger.Logger
	now          func() time.Time
}

// DashboardOption configura dependencias opcionales del caso de uso.
type DashboardOption func(*DashboardUseCase)

// WithCache activa la caché de lectura. Sin ella cada petición recalcula todo.
func WithCache(cache DashboardCache, ttl time.Duration) DashboardOption {
	return func(uc *DashboardUseCase) {
		uc.cache = cache
		uc.cacheTTL = ttl
	}
}

// WithPDFGenerator habilita Report.
func WithPDFGenerator(g DashboardPDFGenerator) DashboardOption {
	return func(uc *DashboardUseCase) { uc.pdf = g }
}

// WithLogger logger para fallos no fatales de la caché.
func WithLogger(log *logger.Logger) DashboardOption {
	return func(uc *DashboardUseCase) { uc.log = log }
}

// WithClock fija el reloj que define "hoy" (tests).
func WithClock(now func() time.Time) DashboardOption {
	return func(uc *DashboardUseCase) { uc.now = now }
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	reportRepo repository.ReportingRepository,
	fuelTypeRepo repository.FuelTypeRepository,
	orgRepo repository.OrganizationRepository,
	opts ...DashboardOption,
) *DashboardUseCase {
	uc := &DashboardUseCase{
		reportRepo:   reportRepo,
		fuelTypeRepo: fuelTypeRepo,
		orgRepo:      orgRepo,
		log:          logger.Nop(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Today fecha de negocio actual según el reloj del caso de uso.
func (uc *DashboardUseCase) Today() time.Time {
	return entity.DateOf(uc.now())
}

// Build construye el dashboard para el alcance indicado.
//
// Validación primero (days fuera de [7, 365] o start > end es error aunque el alcance
// esté vacío). Un alcance vacío devuelve el dashboard vacío explícito.
func (uc *DashboardUseCase) Build(
	ctx context.Context,
	scope domainreporting.StationScope,
	q dto.DashboardQuery,
) (*dto.DashboardResponse, error) {
	b, err := uc.build(ctx, scope, q)
	if err != nil {
		return nil, err
	}
	return b.resp, nil
}

// built resultado de build con la ventana y el "hoy" con los que se calculó.
type built struct {
	resp   *dto.DashboardResponse
	window domainreporting.Window
	today  time.Time
}

func (uc *DashboardUseCase) build(
	ctx context.Context,
	scope domainreporting.StationScope,
	q dto.DashboardQuery,
) (built, error) {
	today := uc.Today()
	window, err := domainreporting.ResolveWindow(today, q.Days, q.StartDate, q.EndDate)
	if err != nil {
		return built{}, err
	}
	out := built{window: window, today: today}
	if scope.IsEmpty() {
		out.resp = dto.EmptyDashboard()
		return out, nil
	}

	key := DashboardKey{
		OrganizationID: scope.OrganizationID(),
		StationIDs:     scope.IDs(),
		Window:         window,
		Today:          today,
	}
	var entry string
	if uc.cache != nil {
		cached, e, err := uc.cache.Get(ctx, key)
		switch {
		case err != nil:
			uc.log.Warn().Err(err).Str("organization_id", key.OrganizationID).Msg("dashboard: lectura de caché")
		case cached != nil:
			out.resp = cached
			return out, nil
		default:
			entry = e
		}
	}

	resp, err := uc.compute(ctx, scope, window, today)
	if err != nil {
		return built{}, err
	}
	out.resp = resp

	if entry != "" {
		if err := uc.cache.Set(ctx, entry, resp, uc.cacheTTL); err != nil {
			uc.log.Warn().Err(err).Str("organization_id", key.OrganizationID).Msg("dashboard: escritura de caché")
		}
	}
	return out, nil
}

// compute lanza las sub-consultas en paralelo. Si cualquiera falla, falla todo el dashboard.
//
//  1. GetSalesTotals(hoy)         → total_sales_today
//  2. GetSalesTotals(mes)         → ventas y litros vendidos del mes (desde el día 1, sin tope)
//  3. GetPurchaseTotals(mes)      → litros comprados y costo del mes
//  4. GetSalesByStation(mes)      → station_comparison
//  5. GetDailySales(ventana)      → sales_trend
//  6. GetFuelVolumes(mes)         → fuel_breakdown
//  7. FuelTypes activos           → filas de fuel_breakdown
func (uc *DashboardUseCase) compute(
	ctx context.Context,
	scope domainreporting.StationScope,
	window domainreporting.Window,
	today time.Time,
) (*dto.DashboardResponse, error) {
	ids := scope.IDs()
	todayRange := repository.DateRange{From: today, To: today}
	// Mes en curso sin tope: incluye registros con fecha posterior a hoy.
	monthRange := repository.DateRange{From: domainreporting.MonthStart(today)}
	trendRange := repository.DateRange{From: window.Start, To: window.End}

	var (
		todaySales repository.SalesTotals
		monthSales repository.SalesTotals
		purchases  repository.PurchaseTotals
		byStation  []repository.StationSalesResult
		daily      []repository.DailySalesResult
		volumes    []repository.FuelVolumeResult
		fuelTypes  []*entity.FuelType
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		todaySales, err = uc.reportRepo.GetSalesTotals(gctx, ids, todayRange)
		return wrap("ventas de hoy", err)
	})
	g.Go(func() (err error) {
		monthSales, err = uc.reportRepo.GetSalesTotals(gctx, ids, monthRange)
		return wrap("ventas del mes", err)
	})
	g.Go(func() (err error) {
		purchases, err = uc.reportRepo.GetPurchaseTotals(gctx, ids, monthRange)
		return wrap("compras del mes", err)
	})
	g.Go(func() (err error) {
		byStation, err = uc.reportRepo.GetSalesByStation(gctx, ids, monthRange)
		return wrap("comparación de estaciones", err)
	})
	g.Go(func() (err error) {
		daily, err = uc.reportRepo.GetDailySales(gctx, ids, trendRange)
		return wrap("tendencia diaria", err)
	})
	g.Go(func() (err error) {
		volumes, err = uc.reportRepo.GetFuelVolumes(gctx, ids, monthRange)
		return wrap("volumen por combustible", err)
	})
	g.Go(func() (err error) {
		fuelTypes, err = uc.fuelTypeRepo.List(gctx, true)
		return wrap("tipos de combustible", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		KPIs: dto.DashboardKPIs{
			TotalSalesToday:             todaySales.TotalSales,
			TotalSalesThisMonth:         monthSales.TotalSales,
			TotalFuelPurchasedThisMonth: purchases.Quantity,
			TotalFuelSoldThisMonth:      monthSales.Quantity,
			TotalPurchaseCostThisMonth:  purchases.Amount,
			ProfitThisMonth:             monthSales.TotalSales.Sub(purchases.Amount),
			StationCount:                len(scope.Stations()),
		},
		Charts: dto.DashboardCharts{
			StationComparison: stationComparison(scope, byStation),
			SalesTrend:        salesTrend(window, daily),
			FuelBreakdown:     fuelBreakdown(fuelTypes, volumes),
		},
	}, nil
}

// stationComparison una fila por estación del alcance, en orden por nombre; cero si no vendió.
func stationComparison(scope domainreporting.StationScope, rows []repository.StationSalesResult) []dto.StationComparisonItem {
	byID := make(map[string]repository.SalesTotals, len(rows))
	for _, r := range rows {
		byID[r.StationID] = r.SalesTotals
	}
	out := make([]dto.StationComparisonItem, 0, len(scope.Stations()))
	for _, st := range scope.Stations() {
		item := dto.StationComparisonItem{
			StationID:     st.ID,
			StationName:   st.Name,
			TotalSales:    decimal.Zero,
			TotalQuantity: decimal.Zero,
		}
		if t, ok := byID[st.ID]; ok {
			item.TotalSales = t.TotalSales
			item.TotalQuantity = t.Quantity
		}
		out = append(out, item)
	}
	return out
}

func salesTrend(window domainreporting.Window, rows []repository.DailySalesResult) []dto.SalesTrendItem {
	points := make([]domainreporting.TrendPoint, 0, len(rows))
	for _, r := range rows {
		points = append(points, domainreporting.TrendPoint{Date: r.Date, TotalSales: r.TotalSales, Quantity: r.Quantity})
	}
	filled := domainreporting.FillDailyTrend(window, points)
	out := make([]dto.SalesTrendItem, 0, len(filled))
	for _, p := range filled {
		out = append(out, dto.SalesTrendItem{Date: dto.NewDate(p.Date), TotalSales: p.TotalSales, TotalQuantity: p.Quantity})
	}
	return out
}

// fuelBreakdown una fila por combustible activo, incluso sin actividad.
func fuelBreakdown(fuelTypes []*entity.FuelType, rows []repository.FuelVolumeResult) []dto.FuelBreakdownItem {
	byID := make(map[string]repository.FuelVolumeResult, len(rows))
	for _, r := range rows {
		byID[r.FuelTypeID] = r
	}
	out := make([]dto.FuelBreakdownItem, 0, len(fuelTypes))
	for _, ft := range fuelTypes {
		item := dto.FuelBreakdownItem{
			FuelTypeID:        ft.ID,
			FuelTypeName:      ft.Name,
			QuantityPurchased: decimal.Zero,
			QuantitySold:      decimal.Zero,
		}
		if v, ok := byID[ft.ID]; ok {
			item.QuantityPurchased = v.Purchased
			item.QuantitySold = v.Sold
		}
		out = append(out, item)
	}
	return out
}

// Report genera el PDF del dashboard para el alcance.
func (uc *DashboardUseCase) Report(
	ctx context.Context,
	scope domainreporting.StationScope,
	q dto.DashboardQuery,
) ([]byte, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("dashboard: generador PDF no configurado")
	}
	b, err := uc.build(ctx, scope, q)
	if err != nil {
		return nil, err
	}
	org, err := uc.orgRepo.GetByID(ctx, scope.OrganizationID())
	if err != nil {
		return nil, fmt.Errorf("dashboard: obtener organización: %w", err)
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}

	names := make([]string, 0, len(scope.Stations()))
	for _, st := range scope.Stations() {
		names = append(names, st.Name)
	}
	return uc.pdf.GenerateDashboardPDF(ctx, DashboardReport{
		OrganizationName: org.Name,
		StationNames:     names,
		Window:           b.window,
		Today:            b.today,
		Dashboard:        b.resp,
	})
}

func wrap(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("dashboard: %s: %w", what, err)
}
