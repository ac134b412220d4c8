package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice es una factura de compra de combustible a un proveedor.
// TotalAmount siempre se deriva de Quantity × PricePerUnit (ver Recalculate).
type Invoice struct {
	ID            string
	InvoiceNumber string
	InvoiceDate   time.Time // solo fecha (UTC, 00:00)
	SupplierName  string
	StationID     string
	FuelTypeID    string
	Quantity      decimal.Decimal // NUMERIC(12,2)
	PricePerUnit  decimal.Decimal // NUMERIC(10,4)
	TotalAmount   decimal.Decimal // NUMERIC(14,2)
	Notes         string
	DocumentPath  string // PDF adjunto; vacío si no hay
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Recalculate recomputa TotalAmount desde cantidad y precio.
// Se invoca en toda escritura; el total nunca se edita de forma independiente.
func (i *Invoice) Recalculate() {
	i.TotalAmount = i.Quantity.Mul(i.PricePerUnit).Round(2)
}
