package entity

import "time"

// Unidades de medida soportadas para FuelType.
const (
	UnitLiters  = "liters"
	UnitGallons = "gallons"
)

// FuelType es dato de referencia global (no pertenece a una organización).
// Nunca se borra mientras esté referenciado: se desactiva con IsActive.
type FuelType struct {
	ID          string
	Name        string // único
	Description string
	Unit        string // ver constantes Unit*
	IsActive    bool
	CreatedAt   time.Time
}
