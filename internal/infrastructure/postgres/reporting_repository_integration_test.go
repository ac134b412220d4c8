//go:build integration

package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fuel-dashboard-api/internal/domain/repository"
	"github.com/jhoicas/fuel-dashboard-api/pkg/config"
)

// reportingFixture una organización con una estación y dos combustibles propios del test.
type reportingFixture struct {
	pool    *pgxpool.Pool
	repo    *ReportingRepo
	station string
	regular string
	diesel  string
}

func newReportingFixture(t *testing.T) *reportingFixture {
	t.Helper()
	databaseURL := os.Getenv("FUEL_TEST_DATABASE_URL")
	if databaseURL == "" {
		t.Skip("set FUEL_TEST_DATABASE_URL to run postgres integration test")
	}

	ctx := context.Background()
	pool, err := NewPool(ctx, config.DBConfig{DatabaseURL: databaseURL})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	_, err = Migrate(ctx, pool)
	require.NoError(t, err)

	stamp := time.Now().UnixNano()
	f := &reportingFixture{
		pool:    pool,
		repo:    NewReportingRepository(pool),
		station: uuid.NewString(),
		regular: uuid.NewString(),
		diesel:  uuid.NewString(),
	}
	org := uuid.NewString()

	t.Cleanup(func() {
		_, _ = pool.Exec(ctx, `DELETE FROM organizations WHERE id = $1`, org)
		_, _ = pool.Exec(ctx, `DELETE FROM fuel_types WHERE id = ANY($1)`, []string{f.regular, f.diesel})
	})

	_, err = pool.Exec(ctx, `INSERT INTO organizations (id, name, email) VALUES ($1, 'Reporting IT', $2)`,
		org, fmt.Sprintf("reporting-it-%d@example.com", stamp))
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `INSERT INTO stations (id, organization_id, name, location) VALUES ($1, $2, 'Alpha', '1 Main St')`,
		f.station, org)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `
		INSERT INTO fuel_types (id, name, unit) VALUES
		    ($1, $3, 'gallons'),
		    ($2, $4, 'gallons')`,
		f.regular, f.diesel, fmt.Sprintf("Regular IT %d", stamp), fmt.Sprintf("Diesel IT %d", stamp))
	require.NoError(t, err)
	return f
}

func (f *reportingFixture) invoice(t *testing.T, fuelTypeID, date, qty, price string) {
	t.Helper()
	q, p := decimal.RequireFromString(qty), decimal.RequireFromString(price)
	_, err := f.pool.Exec(context.Background(), `
		INSERT INTO invoices (id, invoice_date, supplier_name, station_id, fuel_type_id, quantity, price_per_unit, total_amount)
		VALUES ($1, $2, 'Shell', $3, $4, $5, $6, $7)`,
		uuid.NewString(), date, f.station, fuelTypeID, q, p, q.Mul(p).Round(2))
	require.NoError(t, err)
}

func (f *reportingFixture) sale(t *testing.T, fuelTypeID, date, qty, price string) {
	t.Helper()
	q, p := decimal.RequireFromString(qty), decimal.RequireFromString(price)
	_, err := f.pool.Exec(context.Background(), `
		INSERT INTO sales (id, sale_date, station_id, fuel_type_id, quantity_sold, price_per_unit, total_sales)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		uuid.NewString(), date, f.station, fuelTypeID, q, p, q.Mul(p).Round(2))
	require.NoError(t, err)
}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestReportingRepo_AverageInvoicePrice(t *testing.T) {
	f := newReportingFixture(t)
	ctx := context.Background()

	avg, err := f.repo.AverageInvoicePrice(ctx, f.station, f.regular, date("2024-03-20"))
	require.NoError(t, err)
	assert.False(t, avg.Valid, "AVG sin filas es NULL")

	f.invoice(t, f.regular, "2024-03-01", "100", "3.00")
	f.invoice(t, f.regular, "2024-03-20", "100", "3.50")
	f.invoice(t, f.regular, "2024-03-21", "100", "9.00")
	f.invoice(t, f.diesel, "2024-03-01", "100", "7.00")

	avg, err = f.repo.AverageInvoicePrice(ctx, f.station, f.regular, date("2024-03-20"))
	require.NoError(t, err)
	require.True(t, avg.Valid)
	assert.True(t, decimal.RequireFromString("3.25").Equal(avg.Decimal), "got %s", avg.Decimal)
}

func TestReportingRepo_RangoAbiertoIncluyeFechasFuturas(t *testing.T) {
	f := newReportingFixture(t)
	ctx := context.Background()
	ids := []string{f.station}

	f.sale(t, f.regular, "2024-03-05", "10", "4.00")
	f.sale(t, f.regular, "2024-03-25", "10", "4.00")
	f.invoice(t, f.regular, "2024-03-28", "100", "3.00")
	f.sale(t, f.regular, "2024-02-28", "99", "4.00")

	open := repository.DateRange{From: date("2024-03-01")}
	closed := repository.DateRange{From: date("2024-03-01"), To: date("2024-03-20")}

	sales, err := f.repo.GetSalesTotals(ctx, ids, open)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(80).Equal(sales.TotalSales), "got %s", sales.TotalSales)

	sales, err = f.repo.GetSalesTotals(ctx, ids, closed)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(40).Equal(sales.TotalSales), "got %s", sales.TotalSales)

	purchases, err := f.repo.GetPurchaseTotals(ctx, ids, open)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(300).Equal(purchases.Amount), "got %s", purchases.Amount)

	purchases, err = f.repo.GetPurchaseTotals(ctx, ids, closed)
	require.NoError(t, err)
	assert.True(t, purchases.Amount.IsZero())

	byStation, err := f.repo.GetSalesByStation(ctx, ids, open)
	require.NoError(t, err)
	require.Len(t, byStation, 1)
	assert.Equal(t, f.station, byStation[0].StationID)
}

func TestReportingRepo_GetFuelVolumesUneComprasYVentas(t *testing.T) {
	f := newReportingFixture(t)
	ctx := context.Background()

	f.invoice(t, f.regular, "2024-03-02", "100", "3.00")
	f.invoice(t, f.regular, "2024-03-03", "50", "3.00")
	f.sale(t, f.diesel, "2024-03-04", "20", "5.00")
	f.sale(t, f.diesel, "2024-03-05", "5", "5.00")

	rows, err := f.repo.GetFuelVolumes(ctx, []string{f.station}, repository.DateRange{From: date("2024-03-01")})
	require.NoError(t, err)

	got := map[string]repository.FuelVolumeResult{}
	for _, r := range rows {
		got[r.FuelTypeID] = r
	}
	require.Len(t, got, 2, "FULL OUTER JOIN: un combustible solo comprado y otro solo vendido")
	assert.True(t, decimal.NewFromInt(150).Equal(got[f.regular].Purchased))
	assert.True(t, got[f.regular].Sold.IsZero())
	assert.True(t, got[f.diesel].Purchased.IsZero())
	assert.True(t, decimal.NewFromInt(25).Equal(got[f.diesel].Sold))
}

func TestReportingRepo_GetDailySalesOrdenaPorFecha(t *testing.T) {
	f := newReportingFixture(t)
	ctx := context.Background()

	f.sale(t, f.regular, "2024-03-03", "1", "4.00")
	f.sale(t, f.regular, "2024-03-01", "1", "4.00")
	f.sale(t, f.diesel, "2024-03-01", "2", "5.00")

	rows, err := f.repo.GetDailySales(ctx, []string{f.station}, repository.DateRange{From: date("2024-03-01"), To: date("2024-03-31")})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, date("2024-03-01"), rows[0].Date)
	assert.True(t, decimal.NewFromInt(14).Equal(rows[0].TotalSales), "got %s", rows[0].TotalSales)
	assert.Equal(t, date("2024-03-03"), rows[1].Date)

	empty, err := f.repo.GetDailySales(ctx, nil, repository.DateRange{From: date("2024-03-01")})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
