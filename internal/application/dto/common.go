package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/fuel-dashboard-api/internal/domain"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/entity"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Date fecha de negocio serializada como "YYYY-MM-DD".
type Date struct {
	time.Time
}

// NewDate envuelve t truncado a su fecha.
func NewDate(t time.Time) Date { return Date{Time: entity.DateOf(t)} }

// MarshalJSON implementa json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(entity.DateLayout) + `"`), nil
}

// UnmarshalJSON implementa json.Unmarshaler.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	t, err := entity.ParseDate(s)
	if err != nil {
		return fmt.Errorf("%w: fecha %q, formato esperado YYYY-MM-DD", domain.ErrInvalidInput, s)
	}
	d.Time = t
	return nil
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s es obligatorio", domain.ErrInvalidInput, field)
	}
	return nil
}
