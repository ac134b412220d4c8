package entity

import "time"

// DateLayout formato de fechas de negocio (invoice_date, sale_date).
const DateLayout = "2006-01-02"

// DateOf trunca t a su fecha de calendario en UTC.
// Las columnas DATE se comparan siempre con este valor.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate interpreta una fecha YYYY-MM-DD.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
