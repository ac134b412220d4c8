package dto

import (
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/jhoicas/fuel-dashboard-api/internal/domain"
)

// MinPasswordLength longitud mínima de contraseña al registrarse.
const MinPasswordLength = 8

// RegisterRequest registro: crea la organización (business_name) y su primer usuario.
type RegisterRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	FullName     string `json:"full_name"`
	BusinessName string `json:"business_name"`
}

// Validate verifica campos obligatorios y formato del email.
func (r RegisterRequest) Validate() error {
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	if len(r.Password) < MinPasswordLength {
		return fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrInvalidInput, MinPasswordLength)
	}
	return errors.Join(required("full_name", r.FullName), required("business_name", r.BusinessName))
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	FullName         string    `json:"full_name"`
	IsActive         bool      `json:"is_active"`
	OrganizationID   string    `json:"organization_id"`
	OrganizationName string    `json:"organization_name"`
	CreatedAt        time.Time `json:"created_at"`
}

// TokenResponse salida de registro y login.
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}
