package web

import (
	"context"
	"database/sql"
	"net/http"
	"sync"
	"testing"
	"time"

	"karting/internal/adapters/api"
	"karting/internal/adapters/metrics"
	auditStore "karting/internal/adapters/storage/audit"
	domainAudit "karting/internal/domain/audit"
	"karting/internal/domain/customer"
	"karting/internal/domain/kart"
	"karting/internal/domain/rack"
	"karting/internal/domain/report"
	"karting/internal/domain/reservation"
)

var testCSRFKey = []byte("0123456789abcdef0123456789abcdef")

// fixedNow is Wednesday 14 October 2026 at noon.
var fixedNow = time.Date(2026, time.October, 14, 12, 0, 0, 0, time.UTC)

var errServer = &api.ServerError{Op: "GET /api/clientes", Status: http.StatusInternalServerError}

// mockCollaborator serves seeded data for every collaborator endpoint.
type mockCollaborator struct {
	mu           sync.Mutex
	customers    []customer.Customer
	karts        []kart.Kart
	reservations []reservation.Reservation
	grid         rack.Grid
	reportData   report.Data
	err          error
	created      []reservation.CreateRequest
	deleted      []int64
	gridCalls    int
}

func newMockCollaborator() *mockCollaborator {
	return &mockCollaborator{
		customers: []customer.Customer{
			{ID: 1, Name: "Ana Pérez", Email: "ana@gmail.com", BirthDate: "1990-10-14", Visits: 3},
			{ID: 2, Name: "Bruno Díaz", Email: "bruno@gmail.com", Visits: 0},
		},
		karts: []kart.Kart{
			{ID: 1, Code: "K001", Status: kart.StatusAvailable},
			{ID: 2, Code: "K002", Status: kart.StatusUnavailable},
		},
		reservations: []reservation.Reservation{
			{ID: 10, Date: "2026-10-15", Time: "10:00:00", FinalPrice: 15000, People: 1,
				Customers: []customer.Customer{{ID: 1, Name: "Ana Pérez", Email: "ana@gmail.com"}},
				Karts:     []kart.Kart{{ID: 1, Code: "K001"}}},
		},
		grid: rack.Grid{
			"Jueves": {"10:00-11:00": {{ID: 10, Customers: []customer.Customer{{ID: 1, Name: "Ana Pérez"}}}}},
		},
		reportData: report.Data{
			"10 vueltas o máx 10 min": {"OCTOBER": 15000, report.TotalKey: 15000},
		},
	}
}

func (m *mockCollaborator) fail() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

// ListCustomers returns the seeded customers.
func (m *mockCollaborator) ListCustomers(_ context.Context) ([]customer.Customer, error) {
	return m.customers, m.fail()
}

// GetCustomer returns a seeded customer or a collaborator 404.
func (m *mockCollaborator) GetCustomer(_ context.Context, id int64) (customer.Customer, error) {
	if err := m.fail(); err != nil {
		return customer.Customer{}, err
	}
	for _, c := range m.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return customer.Customer{}, &api.ServerError{Op: "GET /api/clientes", Status: http.StatusNotFound}
}

// CreateCustomer assigns the next id.
func (m *mockCollaborator) CreateCustomer(_ context.Context, c customer.Customer) (customer.Customer, error) {
	if err := m.fail(); err != nil {
		return customer.Customer{}, err
	}
	c.ID = int64(len(m.customers) + 1)
	m.customers = append(m.customers, c)
	return c, nil
}

// UpdateCustomer replaces a seeded customer.
func (m *mockCollaborator) UpdateCustomer(_ context.Context, id int64, c customer.Customer) (customer.Customer, error) {
	for i := range m.customers {
		if m.customers[i].ID == id {
			c.ID = id
			m.customers[i] = c
			return c, nil
		}
	}
	return customer.Customer{}, &api.ServerError{Op: "PUT /api/clientes", Status: http.StatusNotFound}
}

// DeleteCustomer drops a seeded customer.
func (m *mockCollaborator) DeleteCustomer(_ context.Context, id int64) error {
	for i := range m.customers {
		if m.customers[i].ID == id {
			m.customers = append(m.customers[:i], m.customers[i+1:]...)
			return nil
		}
	}
	return &api.ServerError{Op: "DELETE /api/clientes", Status: http.StatusNotFound}
}

// ListKarts returns the seeded karts.
func (m *mockCollaborator) ListKarts(_ context.Context) ([]kart.Kart, error) {
	return m.karts, m.fail()
}

// CreateKart assigns the next id.
func (m *mockCollaborator) CreateKart(_ context.Context, k kart.Kart) (kart.Kart, error) {
	if err := m.fail(); err != nil {
		return kart.Kart{}, err
	}
	k.ID = int64(len(m.karts) + 1)
	m.karts = append(m.karts, k)
	return k, nil
}

// ListReservations returns the seeded reservations.
func (m *mockCollaborator) ListReservations(_ context.Context) ([]reservation.Reservation, error) {
	return m.reservations, m.fail()
}

// CreateReservation records the request and returns reservation 99.
func (m *mockCollaborator) CreateReservation(_ context.Context, req reservation.CreateRequest) (reservation.Reservation, error) {
	if err := m.fail(); err != nil {
		return reservation.Reservation{}, err
	}
	m.created = append(m.created, req)
	return reservation.Reservation{ID: 99, Date: req.Date, Time: req.Time}, nil
}

// DeleteReservation records the id.
func (m *mockCollaborator) DeleteReservation(_ context.Context, id int64) error {
	if err := m.fail(); err != nil {
		return err
	}
	m.deleted = append(m.deleted, id)
	return nil
}

// SendReceipt reports the reservation's customer addresses.
func (m *mockCollaborator) SendReceipt(_ context.Context, id int64) ([]string, error) {
	if err := m.fail(); err != nil {
		return nil, err
	}
	return []string{"ana@gmail.com"}, nil
}

// WeeklyGrid returns the seeded grid.
func (m *mockCollaborator) WeeklyGrid(_ context.Context, _, _ time.Time) (rack.Grid, error) {
	m.mu.Lock()
	m.gridCalls++
	m.mu.Unlock()
	if err := m.fail(); err != nil {
		return nil, err
	}
	return m.grid, nil
}

// RevenueReport returns the seeded report.
func (m *mockCollaborator) RevenueReport(_ context.Context, _ report.Kind, _ report.Range) (report.Data, error) {
	if err := m.fail(); err != nil {
		return nil, err
	}
	return m.reportData, nil
}

// memAuditStore keeps audit events in memory.
type memAuditStore struct {
	mu     sync.Mutex
	events []domainAudit.Event
}

// Save appends the event.
func (s *memAuditStore) Save(_ context.Context, e domainAudit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

// List returns stored events newest first, filtered by resource.
func (s *memAuditStore) List(_ context.Context, filter auditStore.Filter, limit int) ([]domainAudit.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domainAudit.Event
	for i := len(s.events) - 1; i >= 0 && len(out) < limit; i-- {
		if filter.ResourceType != nil && s.events[i].ResourceType != *filter.ResourceType {
			continue
		}
		out = append(out, s.events[i])
	}
	return out, nil
}

// GetByID finds an event.
func (s *memAuditStore) GetByID(_ context.Context, id string) (domainAudit.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.events {
		if e.ID == id {
			return e, nil
		}
	}
	return domainAudit.Event{}, sql.ErrNoRows
}

func (s *memAuditStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

type pinger struct{ err error }

// PingContext returns the configured error.
func (p pinger) PingContext(context.Context) error { return p.err }

// testEnv is a fully wired console handler over mocks.
type testEnv struct {
	api     *mockCollaborator
	audit   *memAuditStore
	handler http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	prev := timeNow
	timeNow = func() time.Time { return fixedNow }
	t.Cleanup(func() { timeNow = prev })

	env := &testEnv{api: newMockCollaborator(), audit: &memAuditStore{}}
	env.handler = NewMux(&Services{
		API:              env.api,
		AuditStore:       env.audit,
		DB:               pinger{},
		EmailFrom:        "reservas@karting.cl",
		ReportRecipients: []string{"gerencia@karting.cl"},
		Metrics:          metrics.New(),
	}, Options{CSRFKey: testCSRFKey})
	return env
}
