package projections

import (
	"context"
	"strings"

	"karting/internal/domain/search"
)

// GetSearchDeps holds dependencies for GetSearch.
type GetSearchDeps struct {
	Customers    CustomerReader
	Karts        KartReader
	Reservations ReservationReader
}

// QueryGetSearch fetches a fresh snapshot and runs the search over it.
// PRE: none
// POST: A blank term returns no results without calling the collaborator
func QueryGetSearch(ctx context.Context, term string, deps GetSearchDeps) ([]search.Result, error) {
	if strings.TrimSpace(term) == "" {
		return nil, nil
	}
	var snap search.Snapshot
	var err error
	if snap.Customers, err = deps.Customers.ListCustomers(ctx); err != nil {
		return nil, err
	}
	if snap.Karts, err = deps.Karts.ListKarts(ctx); err != nil {
		return nil, err
	}
	if snap.Reservations, err = deps.Reservations.ListReservations(ctx); err != nil {
		return nil, err
	}
	return search.Search(term, snap), nil
}
