// Package memory implementa los puertos de persistencia en memoria.
// Se usa en tests y para levantar la API sin PostgreSQL.
package memory

import (
	"context"
	"maps"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/fuel-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/fuel-dashboard-api/internal/domain/repository"
)

// Store guarda todas las tablas detrás de un único RWMutex.
type Store struct {
	mu            sync.RWMutex
	organizations map[string]entity.Organization
	users         map[string]entity.User
	stations      map[string]entity.Station
	fuelTypes     map[string]entity.FuelType
	invoices      map[string]entity.Invoice
	sales         map[string]entity.Sale
}

// New crea un store vacío.
func New() *Store {
	return &Store{
		organizations: make(map[string]entity.Organization),
		users:         make(map[string]entity.User),
		stations:      make(map[string]entity.Station),
		fuelTypes:     make(map[string]entity.FuelType),
		invoices:      make(map[string]entity.Invoice),
		sales:         make(map[string]entity.Sale),
	}
}

func (s *Store) Organizations() *OrganizationRepo { return &OrganizationRepo{s: s} }
func (s *Store) Users() *UserRepo                 { return &UserRepo{s: s} }
func (s *Store) Stations() *StationRepo           { return &StationRepo{s: s} }
func (s *Store) FuelTypes() *FuelTypeRepo         { return &FuelTypeRepo{s: s} }
func (s *Store) Invoices() *InvoiceRepo           { return &InvoiceRepo{s: s} }
func (s *Store) Sales() *SaleRepo                 { return &SaleRepo{s: s} }
func (s *Store) Reporting() *ReportingRepo        { return &ReportingRepo{s: s} }

// RunRegistration emula la transacción de registro: si fn falla se restauran
// organizaciones y usuarios al estado previo.
func (s *Store) RunRegistration(ctx context.Context, fn func(
	orgRepo repository.OrganizationRepository,
	userRepo repository.UserRepository,
) error) error {
	s.mu.RLock()
	orgs := maps.Clone(s.organizations)
	users := maps.Clone(s.users)
	s.mu.RUnlock()

	if err := fn(s.Organizations(), s.Users()); err != nil {
		s.mu.Lock()
		s.organizations = orgs
		s.users = users
		s.mu.Unlock()
		return err
	}
	return nil
}

func inDateRange(d time.Time, from, to *time.Time) bool {
	if from != nil && d.Before(entity.DateOf(*from)) {
		return false
	}
	if to != nil && d.After(entity.DateOf(*to)) {
		return false
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func idSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
