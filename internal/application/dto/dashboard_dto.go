package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardQuery parámetros de GET /api/dashboard.
// StartDate y EndDate solo tienen efecto si vienen ambos; si no, manda Days.
type DashboardQuery struct {
	StationID string
	Days      *int
	StartDate *time.Time
	EndDate   *time.Time
}

// DashboardResponse respuesta de GET /api/dashboard.
type DashboardResponse struct {
	KPIs   DashboardKPIs   `json:"kpis"`
	Charts DashboardCharts `json:"charts"`
}

// DashboardKPIs métricas escalares. Las sumas sin filas valen cero.
type DashboardKPIs struct {
	TotalSalesToday             decimal.Decimal `json:"total_sales_today"`
	TotalSalesThisMonth         decimal.Decimal `json:"total_sales_this_month"`
	TotalFuelPurchasedThisMonth decimal.Decimal `json:"total_fuel_purchased_this_month"`
	TotalFuelSoldThisMonth      decimal.Decimal `json:"total_fuel_sold_this_month"`
	TotalPurchaseCostThisMonth  decimal.Decimal `json:"total_purchase_cost_this_month"`
	ProfitThisMonth             decimal.Decimal `json:"profit_this_month"` // ventas - costo de compras del mes
	StationCount                int             `json:"station_count"`
}

// DashboardCharts series de los gráficos. Nunca son null: sin datos se serializan como [].
type DashboardCharts struct {
	StationComparison []StationComparisonItem `json:"station_comparison"`
	SalesTrend        []SalesTrendItem        `json:"sales_trend"`
	FuelBreakdown     []FuelBreakdownItem     `json:"fuel_breakdown"`
}

// StationComparisonItem ventas del mes de una estación.
type StationComparisonItem struct {
	StationID     string          `json:"station_id"`
	StationName   string          `json:"station_name"`
	TotalSales    decimal.Decimal `json:"total_sales"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
}

// SalesTrendItem ventas de una fecha de la ventana.
type SalesTrendItem struct {
	Date          Date            `json:"date"`
	TotalSales    decimal.Decimal `json:"total_sales"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
}

// FuelBreakdownItem compras vs ventas del mes por tipo de combustible.
type FuelBreakdownItem struct {
	FuelTypeID        string          `json:"fuel_type_id"`
	FuelTypeName      string          `json:"fuel_type_name"`
	QuantityPurchased decimal.Decimal `json:"quantity_purchased"`
	QuantitySold      decimal.Decimal `json:"quantity_sold"`
}

// EmptyDashboard dashboard explícitamente vacío: KPIs en cero y listas vacías.
func EmptyDashboard() *DashboardResponse {
	return &DashboardResponse{
		KPIs: DashboardKPIs{
			TotalSalesToday:             decimal.Zero,
			TotalSalesThisMonth:         decimal.Zero,
			TotalFuelPurchasedThisMonth: decimal.Zero,
			TotalFuelSoldThisMonth:      decimal.Zero,
			TotalPurchaseCostThisMonth:  decimal.Zero,
			ProfitThisMonth:             decimal.Zero,
		},
		Charts: DashboardCharts{
			StationComparison: []StationComparisonItem{},
			SalesTrend:        []SalesTrendItem{},
			FuelBreakdown:     []FuelBreakdownItem{},
		},
	}
}
