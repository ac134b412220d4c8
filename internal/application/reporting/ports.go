// Package reporting contiene los casos de uso del motor de reportes: atribución de costo
// a ventas, agregación del dashboard y exportaciones.
package reporting

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/fuel-dashboard-api/internal/application/dto"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/entity"
	domainreporting "github.com/jhoicas/fuel-dashboard-api/internal/domain/reporting"
)

// DashboardKey identifica un dashboard calculado. El adaptador de caché añade la
// versión de la organización, de modo que cualquier escritura invalida sus entradas.
type DashboardKey struct {
	OrganizationID string
	StationIDs     []string
	Window         domainreporting.Window
	Today          time.Time
}

// String representación estable de la clave, sin la versión.
func (k DashboardKey) String() string {
	var b strings.Builder
	b.WriteString(strings.Join(k.StationIDs, ","))
	b.WriteString(":")
	b.WriteString(k.Window.Start.Format(entity.DateLayout))
	b.WriteString(":")
	b.WriteString(k.Window.End.Format(entity.DateLayout))
	b.WriteString(":")
	b.WriteString(k.Today.Format(entity.DateLayout))
	return b.String()
}

// DashboardCache caché de lectura del dashboard.
//
// Get resuelve la entrada versionada una sola vez y la devuelve junto al valor (nil si no
// hay). Set escribe exactamente en esa entrada: si la organización se invalidó mientras se
// calculaba, el resultado queda bajo la versión vieja y no se vuelve a servir.
// Una entrada vacía significa que no se puede escribir.
type DashboardCache interface {
	Get(ctx context.Context, key DashboardKey) (value *dto.DashboardResponse, entry string, err error)
	Set(ctx context.Context, entry string, value *dto.DashboardResponse, ttl time.Duration) error
}

// DashboardReport datos que recibe el generador del PDF.
type DashboardReport struct {
	OrganizationName string
	StationNames     []string
	Window           domainreporting.Window
	Today            time.Time
	Dashboard        *dto.DashboardResponse
}

// DashboardPDFGenerator genera el reporte del dashboard en PDF.
type DashboardPDFGenerator interface {
	GenerateDashboardPDF(ctx context.Context, report DashboardReport) ([]byte, error)
}
