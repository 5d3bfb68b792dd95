package orchestrators

import (
	"context"
	"errors"
	"sync"

	emailAdapter "karting/internal/adapters/email"
	domainAudit "karting/internal/domain/audit"
	"karting/internal/domain/customer"
	"karting/internal/domain/kart"
	"karting/internal/domain/report"
	"karting/internal/domain/reservation"
)

var errUpstream = errors.New("upstream down")

// fakeCollaborator records writes and returns canned results.
type fakeCollaborator struct {
	err        error
	calls      int
	created    []reservation.CreateRequest
	customers  []customer.Customer
	deleted    []int64
	receiptTo  []string
	reportData report.Data
}

// CreateCustomer stores the customer with id 42.
// PRE: c is valid
// POST: Returns c with ID 42, or the seeded error
func (f *fakeCollaborator) CreateCustomer(_ context.Context, c customer.Customer) (customer.Customer, error) {
	f.calls++
	if f.err != nil {
		return customer.Customer{}, f.err
	}
	c.ID = 42
	f.customers = append(f.customers, c)
	return c, nil
}

// UpdateCustomer echoes the customer.
// PRE: id > 0
// POST: Returns c, or the seeded error
func (f *fakeCollaborator) UpdateCustomer(_ context.Context, _ int64, c customer.Customer) (customer.Customer, error) {
	f.calls++
	if f.err != nil {
		return customer.Customer{}, f.err
	}
	f.customers = append(f.customers, c)
	return c, nil
}

// DeleteCustomer records the id.
// PRE: id > 0
// POST: Returns the seeded error
func (f *fakeCollaborator) DeleteCustomer(_ context.Context, id int64) error {
	f.calls++
	f.deleted = append(f.deleted, id)
	return f.err
}

// CreateKart stores the kart with id 7.
// PRE: k is valid
// POST: Returns k with ID 7, or the seeded error
func (f *fakeCollaborator) CreateKart(_ context.Context, k kart.Kart) (kart.Kart, error) {
	f.calls++
	if f.err != nil {
		return kart.Kart{}, f.err
	}
	k.ID = 7
	return k, nil
}

// CreateReservation records the request.
// PRE: req is complete
// POST: Returns a reservation with ID 99, or the seeded error
func (f *fakeCollaborator) CreateReservation(_ context.Context, req reservation.CreateRequest) (reservation.Reservation, error) {
	f.calls++
	if f.err != nil {
		return reservation.Reservation{}, f.err
	}
	f.created = append(f.created, req)
	return reservation.Reservation{ID: 99, Date: req.Date, Time: req.Time}, nil
}

// DeleteReservation records the id.
// PRE: id > 0
// POST: Returns the seeded error
func (f *fakeCollaborator) DeleteReservation(_ context.Context, id int64) error {
	f.calls++
	f.deleted = append(f.deleted, id)
	return f.err
}

// SendReceipt returns the seeded addresses.
// PRE: id > 0
// POST: Returns receiptTo, or the seeded error
func (f *fakeCollaborator) SendReceipt(_ context.Context, _ int64) ([]string, error) {
	f.calls++
	return f.receiptTo, f.err
}

// RevenueReport returns the seeded data.
// PRE: kind is known
// POST: Returns reportData, or the seeded error
func (f *fakeCollaborator) RevenueReport(_ context.Context, _ report.Kind, _ report.Range) (report.Data, error) {
	f.calls++
	return f.reportData, f.err
}

// memAudit keeps saved events in memory.
type memAudit struct {
	mu     sync.Mutex
	events []domainAudit.Event
	err    error
}

// Save appends the event unless an error is seeded.
// PRE: event is valid
// POST: Event appended, or the seeded error returned
func (m *memAudit) Save(_ context.Context, event domainAudit.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}

// fakeSender captures sent requests.
type fakeSender struct {
	sent []emailAdapter.SendRequest
	err  error
}

// Send captures the request.
// PRE: req has recipients
// POST: Request captured, or the seeded error returned
func (s *fakeSender) Send(_ context.Context, req emailAdapter.SendRequest) (emailAdapter.SendResult, error) {
	if s.err != nil {
		return emailAdapter.SendResult{}, s.err
	}
	s.sent = append(s.sent, req)
	return emailAdapter.SendResult{MessageID: "msg-1"}, nil
}

// emailCounter tallies outcomes by kind.
type emailCounter struct {
	ok, failed map[string]int
}

func newEmailCounter() *emailCounter {
	return &emailCounter{ok: map[string]int{}, failed: map[string]int{}}
}

func (c *emailCounter) CountEmail(kind string, err error) {
	if err != nil {
		c.failed[kind]++
		return
	}
	c.ok[kind]++
}
