package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fuel-dashboard-api/internal/application/dto"
	"github.com/jhoicas/fuel-dashboard-api/internal/application/reporting"
	domainreporting "github.com/jhoicas/fuel-dashboard-api/internal/domain/reporting"
)

func TestFormatoDeImportes(t *testing.T) {
	g := NewMarotoPDFGenerator()
	assert.Equal(t, "$1,234,567.50", g.money(decimal.RequireFromString("1234567.5")))
	assert.Equal(t, "1,000.00", g.number(decimal.NewFromInt(1000)))
}

func TestGenerateDashboardPDF(t *testing.T) {
	day := time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)
	dash := dto.EmptyDashboard()
	dash.KPIs.TotalSalesToday = decimal.NewFromInt(200)
	dash.KPIs.StationCount = 1
	dash.Charts.StationComparison = []dto.StationComparisonItem{
		{StationID: "st-1", StationName: "Alpha", TotalSales: decimal.NewFromInt(200), TotalQuantity: decimal.NewFromInt(50)},
	}
	dash.Charts.SalesTrend = []dto.SalesTrendItem{
		{Date: dto.NewDate(day), TotalSales: decimal.NewFromInt(200), TotalQuantity: decimal.NewFromInt(50)},
	}

	out, err := NewMarotoPDFGenerator().GenerateDashboardPDF(context.Background(), reporting.DashboardReport{
		OrganizationName: "Power Gas Stations LLC",
		StationNames:     []string{"Alpha"},
		Window:           domainreporting.Window{Start: day, End: day},
		Today:            day,
		Dashboard:        dash,
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateDashboardPDF_SinDashboard(t *testing.T) {
	_, err := NewMarotoPDFGenerator().GenerateDashboardPDF(context.Background(), reporting.DashboardReport{})
	assert.Error(t, err)
}
