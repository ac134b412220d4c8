package reporting

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fuel-dashboard-api/internal/domain/entity"
)

// TrendPoint totales de venta de un día de la ventana.
type TrendPoint struct {
	Date       time.Time
	TotalSales decimal.Decimal
	Quantity   decimal.Decimal
}

// FillDailyTrend produce exactamente w.Days() puntos, uno por fecha de la ventana y en orden.
// Las fechas ausentes de points quedan en cero; las que caen fuera de la ventana se descartan.
func FillDailyTrend(w Window, points []TrendPoint) []TrendPoint {
	byDate := make(map[time.Time]TrendPoint, len(points))
	for _, p := range points {
		d := entity.DateOf(p.Date)
		acc, ok := byDate[d]
		if !ok {
			acc = TrendPoint{Date: d, TotalSales: decimal.Zero, Quantity: decimal.Zero}
		}
		acc.TotalSales = acc.TotalSales.Add(p.TotalSales)
		acc.Quantity = acc.Quantity.Add(p.Quantity)
		byDate[d] = acc
	}

	out := make([]TrendPoint, 0, w.Days())
	for d := w.Start; !d.After(w.End); d = d.AddDate(0, 0, 1) {
		if p, ok := byDate[d]; ok {
			out = append(out, p)
			continue
		}
		out = append(out, TrendPoint{Date: d, TotalSales: decimal.Zero, Quantity: decimal.Zero})
	}
	return out
}
