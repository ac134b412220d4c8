// seed carga datos de demostración: tipos de combustible, la organización demo
// con su usuario, cinco estaciones de New Jersey y N días de facturas y ventas.
//
// Uso: go run ./cmd/seed [-reset] [-days 60]
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/fuel-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/fuel-dashboard-api/internal/infrastructure/postgres"
	"github.com/jhoicas/fuel-dashboard-api/pkg/config"
	"github.com/jhoicas/fuel-dashboard-api/pkg/logger"
)

type fuelSeed struct {
	name, description string
	purchase, buyVar  float64
	sale, saleVar     float64
	minBuy, maxBuy    int
	weekday, weekend  [2]int
}

var fuels = []fuelSeed{
	{"87 OCT. REGULAR UNLEADED", "Regular Unleaded Gasoline 87 Octane", 3.3310, 0.15, 3.599, 0.10, 5000, 8000, [2]int{1000, 2000}, [2]int{1500, 2500}},
	{"93 OCT. PREMIUM UNLEADED", "Premium Unleaded Gasoline 93 Octane", 3.9120, 0.20, 4.199, 0.10, 1000, 2000, [2]int{200, 500}, [2]int{300, 600}},
	{"ULTRA LOW SULFUR DIESEL", "Ultra Low Sulfur Diesel Fuel", 4.5965, 0.25, 4.899, 0.15, 1000, 2500, [2]int{300, 700}, [2]int{400, 800}},
}

var stations = []entity.Station{
	{Name: "Power Gas - Union", Location: "2445 Morris Ave", City: "Union", State: "NJ 07083"},
	{Name: "Manraj Corp", Location: "195 21st Ave", City: "Paterson", State: "NJ 07501"},
	{Name: "Vauxhall Fuel Inc", Location: "1865 Vauxhall Rd", City: "Union", State: "NJ 07083"},
	{Name: "Jot Gas Inc", Location: "500 Baldwin Ave", City: "Lodi", State: "NJ 07644"},
	{Name: "Highway Express", Location: "789 Route 22 East", City: "Newark", State: "NJ 07102"},
}

var (
	suppliers = []string{"P & J Fuel Inc", "Gulf Oil LP", "Exxon Mobil", "Shell Oil Products", "Sunoco LP", "CITGO Petroleum"}
	terminals = []string{"BAYWAY", "LINDEN", "PERTH AMBOY", "NEWARK"}
	carriers  = []string{"HIMAT ENT.", "JERSEY FUEL", "GARDEN STATE TRANSPORT"}
)

const invoiceBase = 2071500

func main() {
	reset := flag.Bool("reset", false, "borrar todas las tablas antes de sembrar")
	days := flag.Int("days", 60, "días de historial de facturas y ventas")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if *reset {
		if err := postgres.Reset(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("reset")
		}
		log.Info().Msg("tablas eliminadas")
	}
	if _, err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("iniciar transacción")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	s := &seeder{tx: tx, log: log, rnd: rand.New(rand.NewSource(time.Now().UnixNano())), now: time.Now().UTC()}
	if err := s.run(ctx, cfg.Demo, *days); err != nil {
		log.Fatal().Err(err).Msg("seed")
	}
	if err := tx.Commit(ctx); err != nil {
		log.Fatal().Err(err).Msg("commit")
	}

	log.Info().
		Str("email", cfg.Demo.Email).
		Str("business", "Power Gas Stations LLC").
		Int("stations", len(stations)).
		Int("days", *days).
		Msg("datos demo listos")
}

type seeder struct {
	tx  pgx.Tx
	log *logger.Logger
	rnd *rand.Rand
	now time.Time
}

func (s *seeder) run(ctx context.Context, demo config.DemoConfig, days int) error {
	fuelTypes, err := s.fuelTypes(ctx)
	if err != nil {
		return err
	}

	orgRepo := postgres.NewOrganizationRepository(s.tx)
	existing, err := orgRepo.GetByEmail(ctx, demo.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		s.log.Warn().Str("email", demo.Email).Msg("la organización demo ya existe; use -reset para regenerarla")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demo.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	org := &entity.Organization{
		ID:        uuid.New().String(),
		Name:      "Power Gas Stations LLC",
		Email:     strings.ToLower(demo.Email),
		Phone:     "(732) 555-0100",
		Address:   "210 Main Street, Newark, NJ 07102",
		IsActive:  true,
		IsDemo:    true,
		CreatedAt: s.now,
		UpdatedAt: s.now,
	}
	if err := orgRepo.Create(ctx, org); err != nil {
		return err
	}
	user := &entity.User{
		ID:             uuid.New().String(),
		OrganizationID: org.ID,
		Email:          org.Email,
		PasswordHash:   string(hash),
		FullName:       "John Mitchell",
		IsActive:       true,
		CreatedAt:      s.now,
		UpdatedAt:      s.now,
	}
	if err := postgres.NewUserRepository(s.tx).Create(ctx, user); err != nil {
		return err
	}

	stationRepo := postgres.NewStationRepository(s.tx)
	created := make([]*entity.Station, 0, len(stations))
	for _, tpl := range stations {
		st := tpl
		st.ID = uuid.New().String()
		st.OrganizationID = org.ID
		st.IsActive = true
		st.CreatedAt, st.UpdatedAt = s.now, s.now
		if err := stationRepo.Create(ctx, &st); err != nil {
			return err
		}
		created = append(created, &st)
	}
	s.log.Info().Int("count", len(created)).Msg("estaciones creadas")

	invoices, err := s.invoices(ctx, created, fuelTypes, days)
	if err != nil {
		return err
	}
	sales, err := s.sales(ctx, created, fuelTypes, days)
	if err != nil {
		return err
	}
	s.log.Info().Int("invoices", invoices).Int("sales", sales).Msg("historial generado")
	return nil
}

// fuelTypes crea los tipos que falten y devuelve los tres en el orden de fuels.
func (s *seeder) fuelTypes(ctx context.Context) ([]*entity.FuelType, error) {
	repo := postgres.NewFuelTypeRepository(s.tx)
	out := make([]*entity.FuelType, 0, len(fuels))
	for _, f := range fuels {
		ft, err := repo.GetByName(ctx, f.name)
		if err != nil {
			return nil, err
		}
		if ft == nil {
			ft = &entity.FuelType{
				ID:          uuid.New().String(),
				Name:        f.name,
				Description: f.description,
				Unit:        entity.UnitGallons,
				IsActive:    true,
				CreatedAt:   s.now,
			}
			if err := repo.Create(ctx, ft); err != nil {
				return nil, err
			}
		}
		out = append(out, ft)
	}
	return out, nil
}

// invoices genera entregas cada 2 o 3 días por estación, con 2 o 3 combustibles por entrega.
func (s *seeder) invoices(ctx context.Context, sts []*entity.Station, fts []*entity.FuelType, days int) (int, error) {
	repo := postgres.NewInvoiceRepository(s.tx)
	today := entity.DateOf(s.now)
	number := invoiceBase
	for _, st := range sts {
		for d := today.AddDate(0, 0, -days); !d.After(today); d = d.AddDate(0, 0, 2+s.rnd.Intn(2)) {
			n := 2
			if s.rnd.Intn(3) == 0 {
				n = 3
			}
			for _, i := range s.rnd.Perm(len(fts))[:n] {
				f := fuels[i]
				inv := &entity.Invoice{
					ID:            uuid.New().String(),
					InvoiceNumber: strconv.Itoa(number),
					InvoiceDate:   d,
					SupplierName:  s.pick(suppliers),
					StationID:     st.ID,
					FuelTypeID:    fts[i].ID,
					Quantity:      decimal.NewFromInt(int64(s.between(f.minBuy, f.maxBuy))),
					PricePerUnit:  s.vary(f.purchase, f.buyVar, 4),
					Notes:         fmt.Sprintf("Terminal: %s, Carrier: %s", s.pick(terminals), s.pick(carriers)),
					CreatedAt:     s.now,
					UpdatedAt:     s.now,
				}
				inv.Recalculate()
				if err := repo.Create(ctx, inv); err != nil {
					return 0, err
				}
				number++
			}
		}
	}
	return number - invoiceBase, nil
}

// sales genera una venta diaria por estación y combustible; los fines de semana venden más.
func (s *seeder) sales(ctx context.Context, sts []*entity.Station, fts []*entity.FuelType, days int) (int, error) {
	repo := postgres.NewSaleRepository(s.tx)
	today := entity.DateOf(s.now)
	count := 0
	for _, st := range sts {
		for d := today.AddDate(0, 0, -days); !d.After(today); d = d.AddDate(0, 0, 1) {
			weekend := d.Weekday() == time.Saturday || d.Weekday() == time.Sunday
			for i, ft := range fts {
				f := fuels[i]
				span := f.weekday
				if weekend {
					span = f.weekend
				}
				sale := &entity.Sale{
					ID:           uuid.New().String(),
					SaleDate:     d,
					StationID:    st.ID,
					FuelTypeID:   ft.ID,
					QuantitySold: decimal.NewFromInt(int64(s.between(span[0], span[1]))),
					PricePerUnit: s.vary(f.sale, f.saleVar, 3),
					CreatedAt:    s.now,
					UpdatedAt:    s.now,
				}
				sale.Recalculate()
				if err := repo.Create(ctx, sale); err != nil {
					return 0, err
				}
				count++
			}
		}
	}
	return count, nil
}

func (s *seeder) pick(options []string) string { return options[s.rnd.Intn(len(options))] }

func (s *seeder) between(lo, hi int) int { return lo + s.rnd.Intn(hi-lo+1) }

// vary devuelve base ± variation redondeado a places decimales.
func (s *seeder) vary(base, variation float64, places int32) decimal.Decimal {
	delta := (s.rnd.Float64()*2 - 1) * variation
	return decimal.NewFromFloat(base + delta).Round(places)
}
