package dto

import (
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/fuel-dashboard-api/internal/domain"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/entity"
)

// CreateFuelTypeRequest entrada para crear un tipo de combustible. Unit por defecto "liters".
type CreateFuelTypeRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Unit        string `json:"unit"`
}

// Validate nombre obligatorio y unidad conocida.
func (r CreateFuelTypeRequest) Validate() error {
	return errors.Join(required("name", r.Name), validUnit(r.Unit))
}

// UpdateFuelTypeRequest actualización parcial; IsActive=false es la baja lógica.
type UpdateFuelTypeRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Unit        *string `json:"unit"`
	IsActive    *bool   `json:"is_active"`
}

// Validate impide vaciar el nombre o usar una unidad desconocida.
func (r UpdateFuelTypeRequest) Validate() error {
	var errs []error
	if r.Name != nil {
		errs = append(errs, required("name", *r.Name))
	}
	if r.Unit != nil {
		errs = append(errs, validUnit(*r.Unit))
	}
	return errors.Join(errs...)
}

func validUnit(u string) error {
	switch u {
	case "", entity.UnitLiters, entity.UnitGallons:
		return nil
	default:
		return fmt.Errorf("%w: unit debe ser %q o %q", domain.ErrInvalidInput, entity.UnitLiters, entity.UnitGallons)
	}
}

// FuelTypeResponse salida de un tipo de combustible.
type FuelTypeResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Unit        string    `json:"unit"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}
