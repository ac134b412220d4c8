package dto

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fuel-dashboard-api/internal/domain"
)

// LedgerFilter filtros de listado y exportación de facturas y ventas.
// Search solo aplica a facturas.
type LedgerFilter struct {
	StationID  string
	FuelTypeID string
	StartDate  *time.Time
	EndDate    *time.Time
	Search     string
}

// CreateInvoiceRequest entrada para registrar una compra. total_amount nunca viene del cliente.
type CreateInvoiceRequest struct {
	InvoiceNumber string          `json:"invoice_number"`
	InvoiceDate   Date            `json:"invoice_date"`
	SupplierName  string          `json:"supplier_name"`
	StationID     string          `json:"station_id"`
	FuelTypeID    string          `json:"fuel_type_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	PricePerUnit  decimal.Decimal `json:"price_per_unit"`
	Notes         string          `json:"notes"`
}

// Validate campos obligatorios y cantidades.
func (r CreateInvoiceRequest) Validate() error {
	return errors.Join(
		requiredDate("invoice_date", r.InvoiceDate),
		required("supplier_name", r.SupplierName),
		required("station_id", r.StationID),
		required("fuel_type_id", r.FuelTypeID),
		positive("quantity", r.Quantity),
		nonNegative("price_per_unit", r.PricePerUnit),
	)
}

// UpdateInvoiceRequest actualización parcial de una factura.
type UpdateInvoiceRequest struct {
	InvoiceNumber *string          `json:"invoice_number"`
	InvoiceDate   *Date            `json:"invoice_date"`
	SupplierName  *string          `json:"supplier_name"`
	StationID     *string          `json:"station_id"`
	FuelTypeID    *string          `json:"fuel_type_id"`
	Quantity      *decimal.Decimal `json:"quantity"`
	PricePerUnit  *decimal.Decimal `json:"price_per_unit"`
	Notes         *string          `json:"notes"`
}

// Validate revisa solo los campos presentes.
func (r UpdateInvoiceRequest) Validate() error {
	var errs []error
	if r.InvoiceDate != nil {
		errs = append(errs, requiredDate("invoice_date", *r.InvoiceDate))
	}
	if r.SupplierName != nil {
		errs = append(errs, required("supplier_name", *r.SupplierName))
	}
	if r.Quantity != nil {
		errs = append(errs, positive("quantity", *r.Quantity))
	}
	if r.PricePerUnit != nil {
		errs = append(errs, nonNegative("price_per_unit", *r.PricePerUnit))
	}
	return errors.Join(errs...)
}

// InvoiceResponse salida de una factura con nombres de estación y combustible.
type InvoiceResponse struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoice_number,omitempty"`
	InvoiceDate   Date            `json:"invoice_date"`
	SupplierName  string          `json:"supplier_name"`
	StationID     string          `json:"station_id"`
	StationName   string          `json:"station_name"`
	FuelTypeID    string          `json:"fuel_type_id"`
	FuelTypeName  string          `json:"fuel_type_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	PricePerUnit  decimal.Decimal `json:"price_per_unit"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Notes         string          `json:"notes,omitempty"`
	HasDocument   bool            `json:"has_document"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CreateSaleRequest entrada para registrar una venta. total_sales se calcula en el servidor.
type CreateSaleRequest struct {
	SaleDate     Date            `json:"sale_date"`
	StationID    string          `json:"station_id"`
	FuelTypeID   string          `json:"fuel_type_id"`
	QuantitySold decimal.Decimal `json:"quantity_sold"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	Notes        string          `json:"notes"`
}

// Validate campos obligatorios y cantidades.
func (r CreateSaleRequest) Validate() error {
	return errors.Join(
		requiredDate("sale_date", r.SaleDate),
		required("station_id", r.StationID),
		required("fuel_type_id", r.FuelTypeID),
		positive("quantity_sold", r.QuantitySold),
		nonNegative("price_per_unit", r.PricePerUnit),
	)
}

// UpdateSaleRequest actualización parcial de una venta.
type UpdateSaleRequest struct {
	SaleDate     *Date            `json:"sale_date"`
	StationID    *string          `json:"station_id"`
	FuelTypeID   *string          `json:"fuel_type_id"`
	QuantitySold *decimal.Decimal `json:"quantity_sold"`
	PricePerUnit *decimal.Decimal `json:"price_per_unit"`
	Notes        *string          `json:"notes"`
}

// Validate revisa solo los campos presentes.
func (r UpdateSaleRequest) Validate() error {
	var errs []error
	if r.SaleDate != nil {
		errs = append(errs, requiredDate("sale_date", *r.SaleDate))
	}
	if r.QuantitySold != nil {
		errs = append(errs, positive("quantity_sold", *r.QuantitySold))
	}
	if r.PricePerUnit != nil {
		errs = append(errs, nonNegative("price_per_unit", *r.PricePerUnit))
	}
	return errors.Join(errs...)
}

// SaleResponse venta enriquecida con el costo atribuido.
// cost_price, profit_margin y total_profit son null (no cero) cuando no hay facturas previas.
type SaleResponse struct {
	ID           string              `json:"id"`
	SaleDate     Date                `json:"sale_date"`
	StationID    string              `json:"station_id"`
	StationName  string              `json:"station_name"`
	FuelTypeID   string              `json:"fuel_type_id"`
	FuelTypeName string              `json:"fuel_type_name"`
	QuantitySold decimal.Decimal     `json:"quantity_sold"`
	PricePerUnit decimal.Decimal     `json:"price_per_unit"`
	TotalSales   decimal.Decimal     `json:"total_sales"`
	CostPrice    decimal.NullDecimal `json:"cost_price"`
	ProfitMargin decimal.NullDecimal `json:"profit_margin"`
	TotalProfit  decimal.NullDecimal `json:"total_profit"`
	Notes        string              `json:"notes,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

func requiredDate(field string, d Date) error {
	if d.IsZero() {
		return fmt.Errorf("%w: %s es obligatorio", domain.ErrInvalidInput, field)
	}
	return nil
}

func positive(field string, v decimal.Decimal) error {
	if !v.IsPositive() {
		return fmt.Errorf("%w: %s debe ser mayor que cero", domain.ErrInvalidInput, field)
	}
	return nil
}

func nonNegative(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return fmt.Errorf("%w: %s no puede ser negativo", domain.ErrInvalidInput, field)
	}
	return nil
}
