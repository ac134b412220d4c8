package reporting

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fuel-dashboard-api/internal/application/dto"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/entity"
)

// SalesCSVHeader columnas de la exportación de ventas.
var SalesCSVHeader = []string{
	"Date", "Station", "Fuel Type", "Qty Sold", "Selling Price",
	"Total Sales", "Cost Price", "Profit Margin", "Total Profit", "Notes",
}

// InvoicesCSVHeader columnas de la exportación de facturas.
var InvoicesCSVHeader = []string{
	"Date", "Invoice #", "Station", "Supplier", "Fuel Type",
	"Quantity", "Price/Unit", "Total", "Notes",
}

// WriteSalesCSV una fila por venta. Costo, margen y utilidad desconocidos quedan como
// celda vacía, nunca "0".
func WriteSalesCSV(w io.Writer, sales []dto.SaleResponse) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(SalesCSVHeader); err != nil {
		return err
	}
	for _, s := range sales {
		if err := writer.Write([]string{
			s.SaleDate.Format(entity.DateLayout),
			s.StationName,
			s.FuelTypeName,
			formatDecimal(s.QuantitySold),
			formatDecimal(s.PricePerUnit),
			formatDecimal(s.TotalSales),
			formatNullDecimal(s.CostPrice),
			formatNullDecimal(s.ProfitMargin),
			formatNullDecimal(s.TotalProfit),
			s.Notes,
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteInvoicesCSV una fila por factura.
func WriteInvoicesCSV(w io.Writer, invoices []dto.InvoiceResponse) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(InvoicesCSVHeader); err != nil {
		return err
	}
	for _, inv := range invoices {
		if err := writer.Write([]string{
			inv.InvoiceDate.Format(entity.DateLayout),
			inv.InvoiceNumber,
			inv.StationName,
			inv.SupplierName,
			inv.FuelTypeName,
			formatDecimal(inv.Quantity),
			formatDecimal(inv.PricePerUnit),
			formatDecimal(inv.TotalAmount),
			inv.Notes,
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// formatDecimal solo para presentación: el valor almacenado sigue siendo exacto.
func formatDecimal(d decimal.Decimal) string {
	return strconv.FormatFloat(d.InexactFloat64(), 'f', -1, 64)
}

func formatNullDecimal(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return formatDecimal(d.Decimal)
}
