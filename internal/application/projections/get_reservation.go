package projections

import (
	"context"
	"errors"

	"karting/internal/domain/customer"
	"karting/internal/domain/kart"
	"karting/internal/domain/reservation"
)

// ErrReservationNotFound is returned when the id is not in the collaborator's list.
var ErrReservationNotFound = errors.New("reservation not found")

// GetReservationDeps holds dependencies for GetReservation.
type GetReservationDeps struct {
	Reservations ReservationReader
}

// QueryGetReservation finds one reservation. The collaborator has no
// single-reservation endpoint, so the list is scanned.
// PRE: id > 0
// POST: Returns the reservation or ErrReservationNotFound
func QueryGetReservation(ctx context.Context, id int64, deps GetReservationDeps) (reservation.Reservation, error) {
	all, err := deps.Reservations.ListReservations(ctx)
	if err != nil {
		return reservation.Reservation{}, err
	}
	for _, r := range all {
		if r.ID == id {
			return r, nil
		}
	}
	return reservation.Reservation{}, ErrReservationNotFound
}

// ReservationFormOptions are the choices offered by the create form.
type ReservationFormOptions struct {
	Customers []customer.Customer
	Karts     []kart.Kart // available karts only
	Plans     []reservation.Plan
}

// GetReservationFormDeps holds dependencies for GetReservationForm.
type GetReservationFormDeps struct {
	Customers CustomerReader
	Karts     KartReader
}

// QueryGetReservationForm loads the customers and available karts for the form.
// PRE: none
// POST: Karts contains only karts with status disponible
func QueryGetReservationForm(ctx context.Context, deps GetReservationFormDeps) (ReservationFormOptions, error) {
	customers, err := deps.Customers.ListCustomers(ctx)
	if err != nil {
		return ReservationFormOptions{}, err
	}
	karts, err := deps.Karts.ListKarts(ctx)
	if err != nil {
		return ReservationFormOptions{}, err
	}
	opts := ReservationFormOptions{Customers: customers, Plans: reservation.Plans()}
	for _, k := range karts {
		if k.IsAvailable() {
			opts.Karts = append(opts.Karts, k)
		}
	}
	return opts, nil
}
