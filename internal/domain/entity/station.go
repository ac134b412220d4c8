package entity

import "time"

// Station representa una estación de servicio física de una organización.
// Es dueña de las facturas de compra y de las ventas.
type Station struct {
	ID             string
	OrganizationID string
	Name           string
	Location       string
	City           string
	State          string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
