// Package pdf genera el reporte del dashboard en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Organización          │  Período + fecha de corte  │
//	│  Estaciones incluidas                                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KPIs del mes                                                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Estación | Ventas | Cantidad                         │
//	│  TABLA: Combustible | Comprado | Vendido                     │
//	│  TABLA: Fecha | Ventas | Cantidad (tendencia diaria)         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/fuel-dashboard-api/internal/application/reporting"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ reporting.DashboardPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa reporting.DashboardPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	printer *message.Printer
}

// NewMarotoPDFGenerator construye el generador. Los importes se formatean en en-US.
func NewMarotoPDFGenerator() *MarotoPDFGenerator {
	return &MarotoPDFGenerator{printer: message.NewPrinter(language.AmericanEnglish)}
}

// GenerateDashboardPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateDashboardPDF(_ context.Context, r reporting.DashboardReport) ([]byte, error) {
	if r.Dashboard == nil {
		return nil, fmt.Errorf("pdf: dashboard vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Fuel Dashboard Report", true).
		WithAuthor(r.OrganizationName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(stationsRow(r.StationNames))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionTitle("MONTH TO DATE"))
	m.AddRows(g.kpiRows(r)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	charts := r.Dashboard.Charts

	m.AddRows(sectionTitle("STATION COMPARISON"))
	m.AddRows(tableHeader("Station", "Sales", "Quantity"))
	for _, s := range charts.StationComparison {
		m.AddRows(tableRow(s.StationName, g.money(s.TotalSales), g.number(s.TotalQuantity)))
	}

	m.AddRows(sectionTitle("FUEL BREAKDOWN"))
	m.AddRows(tableHeader("Fuel type", "Purchased", "Sold"))
	for _, f := range charts.FuelBreakdown {
		m.AddRows(tableRow(f.FuelTypeName, g.number(f.QuantityPurchased), g.number(f.QuantitySold)))
	}

	m.AddRows(sectionTitle("DAILY SALES"))
	m.AddRows(tableHeader("Date", "Sales", "Quantity"))
	for _, p := range charts.SalesTrend {
		m.AddRows(tableRow(p.Date.Format(entity.DateLayout), g.money(p.TotalSales), g.number(p.TotalQuantity)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: organización (izq) y período + fecha de corte (der).
func headerRow(r reporting.DashboardReport) core.Row {
	period := fmt.Sprintf("%s to %s", r.Window.Start.Format(entity.DateLayout), r.Window.End.Format(entity.DateLayout))
	return row.New(18).Add(
		col.New(7).Add(
			text.New(r.OrganizationName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Fuel Dashboard Report", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PERIOD", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(period, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 7,
			}),
			text.New("As of "+r.Today.Format(entity.DateLayout), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func stationsRow(names []string) core.Row {
	label := "Stations: " + nonEmpty(strings.Join(names, ", "), "none")
	return row.New(8).Add(col.New(12).Add(
		text.New(label, props.Text{Size: 8, Top: 2, Color: colorGray}),
	))
}

func sectionTitle(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 3}),
	))
}

func (g *MarotoPDFGenerator) kpiRows(r reporting.DashboardReport) []core.Row {
	k := r.Dashboard.KPIs
	items := []struct{ label, value string }{
		{"Sales today", g.money(k.TotalSalesToday)},
		{"Sales this month", g.money(k.TotalSalesThisMonth)},
		{"Fuel purchased", g.number(k.TotalFuelPurchasedThisMonth)},
		{"Fuel sold", g.number(k.TotalFuelSoldThisMonth)},
		{"Purchase cost", g.money(k.TotalPurchaseCostThisMonth)},
		{"Profit (sales - purchases)", g.money(k.ProfitThisMonth)},
		{"Stations", g.printer.Sprintf("%d", k.StationCount)},
	}
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row.New(6).Add(
			col.New(3),
			col.New(4).Add(text.New(it.label+":", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 1,
			})),
			col.New(3).Add(text.New(it.value, props.Text{Size: 9, Align: align.Right, Right: 1, Top: 1})),
			col.New(2),
		))
	}
	return rows
}

func tableHeader(first, second, third string) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h(first, 6, align.Left),
		h(second, 3, align.Right),
		h(third, 3, align.Right),
	)
}

func tableRow(first, second, third string) core.Row {
	return row.New(6).Add(
		col.New(6).Add(text.New(first, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
		col.New(3).Add(text.New(second, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(3).Add(text.New(third, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

// money solo para presentación: "$1,234.50".
func (g *MarotoPDFGenerator) money(d decimal.Decimal) string {
	return g.printer.Sprintf("$%.2f", d.InexactFloat64())
}

func (g *MarotoPDFGenerator) number(d decimal.Decimal) string {
	return g.printer.Sprintf("%.2f", d.InexactFloat64())
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
