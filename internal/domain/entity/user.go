package entity

import "time"

// User representa un usuario del sistema (pertenece a exactamente una Organization).
type User struct {
	ID             string
	OrganizationID string
	Email          string
	PasswordHash   string // bcrypt hash, nunca plano en dominio después de persistir
	FullName       string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
