// Package cache implementa la caché de lectura del dashboard.
package cache

import (
	"context"
	"time"

	"github.com/jhoicas/fuel-dashboard-api/internal/application/dto"
	"github.com/jhoicas/fuel-dashboard-api/internal/application/reporting"
)

// NoopDashboardCache no guarda nada: cada petición recalcula el dashboard.
// Se usa cuando REDIS_ADDR está vacío.
type NoopDashboardCache struct{}

func (NoopDashboardCache) Get(_ context.Context, _ reporting.DashboardKey) (*dto.DashboardResponse, string, error) {
	return nil, "", nil
}

func (NoopDashboardCache) Set(_ context.Context, _ string, _ *dto.DashboardResponse, _ time.Duration) error {
	return nil
}

func (NoopDashboardCache) Invalidate(context.Context, string) {}
