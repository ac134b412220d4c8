package reporting

import (
	"fmt"
	"time"

	"github.com/jhoicas/fuel-dashboard-api/internal/domain"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/entity"
)

const (
	DefaultWindowDays = 30
	MinWindowDays     = 7
	MaxWindowDays     = 365

	// MaxWindowEntries tope de fechas de una ventana explícita: lo mismo que days=365.
	MaxWindowEntries = MaxWindowDays + 1
)

const secondsPerDay = 24 * 60 * 60

// Window período del gráfico de tendencia, inclusivo en ambos extremos.
type Window struct {
	Start time.Time
	End   time.Time
}

// Days número de entradas que produce la ventana (End - Start + 1).
// Se calcula sobre fechas civiles UTC, sin pasar por time.Duration.
func (w Window) Days() int {
	return daysBetween(w.Start, w.End) + 1
}

func daysBetween(from, to time.Time) int {
	return int((entity.DateOf(to).Unix() - entity.DateOf(from).Unix()) / secondsPerDay)
}

// ResolveWindow aplica las reglas de la ventana del dashboard:
//   - days, si viene, debe estar en [7, 365] aunque haya fechas explícitas;
//   - start y end explícitos (ambos) tienen prioridad sobre days y cubren a lo sumo
//     MaxWindowEntries fechas;
//   - si no, la ventana es [today - days, today]; days nil usa DefaultWindowDays.
//
// Un solo extremo explícito se ignora y se usa days.
func ResolveWindow(today time.Time, days *int, start, end *time.Time) (Window, error) {
	today = entity.DateOf(today)
	n := DefaultWindowDays
	if days != nil {
		n = *days
	}
	if n < MinWindowDays || n > MaxWindowDays {
		return Window{}, fmt.Errorf("%w: days debe estar entre %d y %d", domain.ErrInvalidPeriod, MinWindowDays, MaxWindowDays)
	}
	if start != nil && end != nil {
		s, e := entity.DateOf(*start), entity.DateOf(*end)
		if s.After(e) {
			return Window{}, fmt.Errorf("%w: start_date no puede ser posterior a end_date", domain.ErrInvalidPeriod)
		}
		if daysBetween(s, e)+1 > MaxWindowEntries {
			return Window{}, fmt.Errorf("%w: el rango no puede superar %d días", domain.ErrInvalidPeriod, MaxWindowEntries)
		}
		return Window{Start: s, End: e}, nil
	}
	return Window{Start: today.AddDate(0, 0, -n), End: today}, nil
}

// MonthStart primer día del mes calendario de today.
func MonthStart(today time.Time) time.Time {
	d := entity.DateOf(today)
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}
