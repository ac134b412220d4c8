package usecase

import (
	"context"
	"io"
)

// DashboardInvalidator invalida los dashboards en caché de una organización.
// Se invoca después de cada escritura de estación, factura o venta; organizationID vacío
// invalida todas las organizaciones (cambios en el catálogo global de combustibles).
// Los fallos los registra la implementación: la escritura ya está confirmada.
type DashboardInvalidator interface {
	Invalidate(ctx context.Context, organizationID string)
}

// DocumentStore almacena los PDF adjuntos a facturas. ref es opaco para el caso de uso.
type DocumentStore interface {
	Save(ctx context.Context, invoiceID string, content io.Reader) (ref string, err error)
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
	Delete(ctx context.Context, ref string) error
}

type noopInvalidator struct{}

func (noopInvalidator) Invalidate(context.Context, string) {}
