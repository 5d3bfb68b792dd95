package projections

import (
	"context"
	"sort"
	"time"

	"karting/internal/domain/customer"
	"karting/internal/domain/kart"
	"karting/internal/domain/reservation"
)

const (
	recentCustomers   = 5
	frequentCustomers = 3
	upcomingLimit     = 5
	upcomingDays      = 3
)

// GetDashboardQuery carries query parameters.
type GetDashboardQuery struct {
	Now time.Time // in the venue time zone
}

// DashboardStats are the headline counters.
type DashboardStats struct {
	Customers      int
	Karts          int
	Reservations   int
	AvailableKarts int
}

// GetDashboardResult carries the query result.
type GetDashboardResult struct {
	Stats    DashboardStats
	Recent   []customer.Customer
	Frequent []customer.Customer
	Upcoming []reservation.Reservation
}

// GetDashboardDeps holds dependencies for GetDashboard.
type GetDashboardDeps struct {
	Customers    CustomerReader
	Karts        KartReader
	Reservations ReservationReader
}

// QueryGetDashboard builds the home page summary from fresh lists.
// PRE: query.Now is set
// POST: Recent holds the newest customers by id; Frequent those with more than
// customer.FrequentVisits visits; Upcoming the next reservations within 3 days
func QueryGetDashboard(ctx context.Context, query GetDashboardQuery, deps GetDashboardDeps) (GetDashboardResult, error) {
	customers, err := deps.Customers.ListCustomers(ctx)
	if err != nil {
		return GetDashboardResult{}, err
	}
	karts, err := deps.Karts.ListKarts(ctx)
	if err != nil {
		return GetDashboardResult{}, err
	}
	reservations, err := deps.Reservations.ListReservations(ctx)
	if err != nil {
		return GetDashboardResult{}, err
	}

	result := GetDashboardResult{
		Stats: DashboardStats{
			Customers:    len(customers),
			Karts:        len(karts),
			Reservations: len(reservations),
		},
	}
	for _, k := range karts {
		if k.Status == kart.StatusAvailable {
			result.Stats.AvailableKarts++
		}
	}

	byID := append([]customer.Customer(nil), customers...)
	sort.Slice(byID, func(i, j int) bool { return byID[i].ID > byID[j].ID })
	result.Recent = firstN(byID, recentCustomers)

	var frequent []customer.Customer
	for _, c := range customers {
		if c.IsFrequent() {
			frequent = append(frequent, c)
		}
	}
	sort.SliceStable(frequent, func(i, j int) bool { return frequent[i].Visits > frequent[j].Visits })
	result.Frequent = firstN(frequent, frequentCustomers)

	result.Upcoming = upcoming(reservations, query.Now)
	return result, nil
}

type timedReservation struct {
	r     reservation.Reservation
	start time.Time
}

// upcoming returns reservations starting between now and the end of the
// third day after today, earliest first.
func upcoming(reservations []reservation.Reservation, now time.Time) []reservation.Reservation {
	loc := now.Location()
	y, m, d := now.Date()
	limit := time.Date(y, m, d, 0, 0, 0, 0, loc).AddDate(0, 0, upcomingDays+1)

	var list []timedReservation
	for _, r := range reservations {
		start, err := r.StartsAt(loc)
		if err != nil {
			continue
		}
		if !start.Before(now) && start.Before(limit) {
			list = append(list, timedReservation{r, start})
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].start.Before(list[j].start) })

	out := make([]reservation.Reservation, 0, upcomingLimit)
	for i := 0; i < len(list) && i < upcomingLimit; i++ {
		out = append(out, list[i].r)
	}
	return out
}

func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
