package projections

import (
	"context"
	"errors"

	"karting/internal/domain/customer"
	"karting/internal/domain/kart"
	"karting/internal/domain/report"
	"karting/internal/domain/reservation"
)

var errUpstream = errors.New("upstream down")

// fakeCollaborator serves seeded lists and counts calls.
type fakeCollaborator struct {
	customers    []customer.Customer
	karts        []kart.Kart
	reservations []reservation.Reservation
	reportData   report.Data
	err          error
	calls        int
}

// ListCustomers returns the seeded customers.
// PRE: none
// POST: Returns seeded customers or the seeded error
func (f *fakeCollaborator) ListCustomers(_ context.Context) ([]customer.Customer, error) {
	f.calls++
	return f.customers, f.err
}

// GetCustomer returns a seeded customer by id.
// PRE: id > 0
// POST: Returns the customer or errUpstream
func (f *fakeCollaborator) GetCustomer(_ context.Context, id int64) (customer.Customer, error) {
	f.calls++
	for _, c := range f.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return customer.Customer{}, errUpstream
}

// ListKarts returns the seeded karts.
// PRE: none
// POST: Returns seeded karts or the seeded error
func (f *fakeCollaborator) ListKarts(_ context.Context) ([]kart.Kart, error) {
	f.calls++
	return f.karts, f.err
}

// ListReservations returns the seeded reservations.
// PRE: none
// POST: Returns seeded reservations or the seeded error
func (f *fakeCollaborator) ListReservations(_ context.Context) ([]reservation.Reservation, error) {
	f.calls++
	return f.reservations, f.err
}

// RevenueReport returns the seeded report data.
// PRE: kind is known
// POST: Returns seeded data or the seeded error
func (f *fakeCollaborator) RevenueReport(_ context.Context, _ report.Kind, _ report.Range) (report.Data, error) {
	f.calls++
	return f.reportData, f.err
}
