package dto

import (
	"errors"
	"time"
)

// CreateStationRequest entrada para crear una estación.
type CreateStationRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	City     string `json:"city"`
	State    string `json:"state"`
}

// Validate nombre y ubicación son obligatorios.
func (r CreateStationRequest) Validate() error {
	return errors.Join(required("name", r.Name), required("location", r.Location))
}

// UpdateStationRequest actualización parcial: solo se aplican los campos presentes.
type UpdateStationRequest struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
	City     *string `json:"city"`
	State    *string `json:"state"`
	IsActive *bool   `json:"is_active"`
}

// Validate impide vaciar nombre o ubicación.
func (r UpdateStationRequest) Validate() error {
	var errs []error
	if r.Name != nil {
		errs = append(errs, required("name", *r.Name))
	}
	if r.Location != nil {
		errs = append(errs, required("location", *r.Location))
	}
	return errors.Join(errs...)
}

// StationResponse salida de una estación.
type StationResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Location       string    `json:"location"`
	City           string    `json:"city,omitempty"`
	State          string    `json:"state,omitempty"`
	IsActive       bool      `json:"is_active"`
	OrganizationID string    `json:"organization_id"`
	CreatedAt      time.Time `json:"created_at"`
}
