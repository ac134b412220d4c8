package reporting_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fuel-dashboard-api/internal/application/reporting"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/entity"
)

func saleOn(t *testing.T, stationID, date string) *entity.Sale {
	t.Helper()
	d, err := entity.ParseDate(date)
	require.NoError(t, err)
	return &entity.Sale{
		SaleDate:     d,
		StationID:    stationID,
		FuelTypeID:   "ft-reg",
		QuantitySold: decimal.NewFromInt(10),
		PricePerUnit: decimal.RequireFromString("3.50"),
	}
}

func TestAverageCost_IncluyeFacturasDelMismoDia(t *testing.T) {
	e := newEnv(t)
	e.invoice(t, "st-1", "2024-03-01", "100", "3.00")
	e.invoice(t, "st-1", "2024-03-05", "100", "3.30")
	a := reporting.NewCostAttributor(e.store.Reporting())
	ctx := context.Background()

	before, err := a.AverageCost(ctx, "st-1", "ft-reg", mustParse(t, "2024-02-29"))
	require.NoError(t, err)
	assert.False(t, before.Valid)

	first, err := a.AverageCost(ctx, "st-1", "ft-reg", mustParse(t, "2024-03-01"))
	require.NoError(t, err)
	assertDec(t, "3.00", first.Decimal, "solo la primera factura")

	both, err := a.AverageCost(ctx, "st-1", "ft-reg", mustParse(t, "2024-03-05"))
	require.NoError(t, err)
	assertDec(t, "3.15", both.Decimal, "promedio simple, sin ponderar por cantidad")

	other, err := a.AverageCost(ctx, "st-2", "ft-reg", mustParse(t, "2024-03-05"))
	require.NoError(t, err)
	assert.False(t, other.Valid, "las facturas de otra estación no cuentan")
}

func TestAttributeAll_UnaConsultaPorClave(t *testing.T) {
	e := newEnv(t)
	e.invoice(t, "st-1", "2024-03-01", "100", "3.00")
	repo := e.store.Reporting()
	a := reporting.NewCostAttributor(repo)

	sales := []*entity.Sale{
		saleOn(t, "st-1", "2024-03-10"),
		saleOn(t, "st-1", "2024-03-10"),
		saleOn(t, "st-1", "2024-03-10"),
		saleOn(t, "st-1", "2024-03-11"),
		saleOn(t, "st-2", "2024-03-10"),
	}
	attrs, err := a.AttributeAll(context.Background(), sales)
	require.NoError(t, err)
	require.Len(t, attrs, len(sales))

	assert.Equal(t, int64(3), repo.AverageCalls())
	for _, at := range attrs[:4] {
		require.True(t, at.TotalProfit.Valid)
		assertDec(t, "5", at.TotalProfit.Decimal, "(3.50 - 3.00) * 10")
	}
	assert.False(t, attrs[4].CostPrice.Valid)
}

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := entity.ParseDate(s)
	require.NoError(t, err)
	return v
}
