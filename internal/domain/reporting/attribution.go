// Package reporting contiene las reglas puras del motor de reportes: atribución de costo
// y utilidad por venta, resolución de la ventana del dashboard y relleno de series diarias.
package reporting

import "github.com/shopspring/decimal"

// Attribution resultado de atribuir costo histórico a una venta.
// Cada campo es nulo de forma independiente: un costo desconocido nunca se reporta como cero.
type Attribution struct {
	CostPrice    decimal.NullDecimal
	ProfitMargin decimal.NullDecimal
	TotalProfit  decimal.NullDecimal
}

// Attribute deriva margen y utilidad total de una venta dado el costo promedio resuelto.
//
//	margen = precio_venta - costo
//	utilidad_total = margen * cantidad_vendida
//
// Si cost no es válido, margen y utilidad tampoco lo son. Los márgenes negativos
// (venta por debajo del costo promedio) se devuelven tal cual.
func Attribute(sellPrice, quantitySold decimal.Decimal, cost decimal.NullDecimal) Attribution {
	if !cost.Valid {
		return Attribution{}
	}
	margin := sellPrice.Sub(cost.Decimal)
	return Attribution{
		CostPrice:    cost,
		ProfitMargin: decimal.NewNullDecimal(margin),
		TotalProfit:  decimal.NewNullDecimal(margin.Mul(quantitySold)),
	}
}

// AverageOf promedio aritmético exacto de prices; inválido si la lista está vacía.
func AverageOf(prices []decimal.Decimal) decimal.NullDecimal {
	if len(prices) == 0 {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.Avg(prices[0], prices[1:]...))
}
