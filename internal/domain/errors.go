package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidStation     = errors.New("estación inválida para la organización")
	ErrInvalidFuelType    = errors.New("tipo de combustible inválido")
	ErrInvalidPeriod      = errors.New("período de consulta inválido")
	ErrInvalidDocument    = errors.New("documento inválido")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
)
