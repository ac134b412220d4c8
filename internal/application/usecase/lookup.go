package usecase

import (
	"context"

	"github.com/jhoicas/fuel-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/reporting"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/repository"
)

// unknownName se muestra si una referencia ya no resuelve (no debería ocurrir con FKs).
const unknownName = "Unknown"

// names resuelve nombres de estación y combustible para enriquecer listados
// sin una consulta por fila.
type names struct {
	stations  map[string]string
	fuelTypes map[string]string
}

func loadNames(ctx context.Context, scope reporting.StationScope, fuelTypes repository.FuelTypeRepository) (names, error) {
	n := names{stations: map[string]string{}, fuelTypes: map[string]string{}}
	for _, st := range scope.Stations() {
		n.stations[st.ID] = st.Name
	}
	list, err := fuelTypes.List(ctx, false)
	if err != nil {
		return n, err
	}
	for _, ft := range list {
		n.fuelTypes[ft.ID] = ft.Name
	}
	return n, nil
}

func singleNames(st *entity.Station, ft *entity.FuelType) names {
	n := names{stations: map[string]string{}, fuelTypes: map[string]string{}}
	if st != nil {
		n.stations[st.ID] = st.Name
	}
	if ft != nil {
		n.fuelTypes[ft.ID] = ft.Name
	}
	return n
}

func (n names) station(id string) string {
	if v, ok := n.stations[id]; ok {
		return v
	}
	return unknownName
}

func (n names) fuelType(id string) string {
	if v, ok := n.fuelTypes[id]; ok {
		return v
	}
	return unknownName
}
