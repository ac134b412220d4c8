package reporting

import "github.com/jhoicas/fuel-dashboard-api/internal/domain/entity"

// StationScope conjunto de estaciones ya acotado a una organización (y opcionalmente a una
// estación). El motor de reportes solo acepta este tipo como entrada, nunca un organizationID.
type StationScope struct {
	organizationID string
	stations       []*entity.Station
}

// NewStationScope construye el alcance. Solo debe llamarlo el resolvedor de alcance
// (usecase.ScopeResolver), que es quien aplica el filtro por organización.
func NewStationScope(organizationID string, stations []*entity.Station) StationScope {
	return StationScope{organizationID: organizationID, stations: stations}
}

// OrganizationID organización dueña del alcance (para claves de caché y logs).
func (s StationScope) OrganizationID() string { return s.organizationID }

// Stations estaciones del alcance, ordenadas por nombre.
func (s StationScope) Stations() []*entity.Station { return s.stations }

// IDs identificadores de las estaciones del alcance.
func (s StationScope) IDs() []string {
	ids := make([]string, 0, len(s.stations))
	for _, st := range s.stations {
		ids = append(ids, st.ID)
	}
	return ids
}

// Contains informa si la estación pertenece al alcance.
func (s StationScope) Contains(stationID string) bool {
	for _, st := range s.stations {
		if st.ID == stationID {
			return true
		}
	}
	return false
}

// IsEmpty true si no hay estaciones en el alcance.
func (s StationScope) IsEmpty() bool { return len(s.stations) == 0 }
