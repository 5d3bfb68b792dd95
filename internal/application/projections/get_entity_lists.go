package projections

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"karting/internal/application/listutil"
	"karting/internal/domain/customer"
	"karting/internal/domain/kart"
	"karting/internal/domain/reservation"
)

// Sortable columns per list view.
var (
	CustomerSortColumns    = []string{"id", "nombre", "email", "fechaNacimiento", "numeroVisitas"}
	KartSortColumns        = []string{"id", "codigo", "estado"}
	ReservationSortColumns = []string{"id", "fecha", "personas", "precioFinal"}
)

// ListResult is one page of a list view.
type ListResult[T any] struct {
	Items  []T
	Page   listutil.PageInfo
	Params listutil.ListParams
}

// GetCustomerListDeps holds dependencies for GetCustomerList.
type GetCustomerListDeps struct {
	Customers CustomerReader
}

// QueryGetCustomerList filters by name or email, sorts and pages customers.
// PRE: params came from listutil.Parse with CustomerSortColumns
// POST: Items holds at most params.PerPage customers
func QueryGetCustomerList(ctx context.Context, params listutil.ListParams, deps GetCustomerListDeps) (ListResult[customer.Customer], error) {
	all, err := deps.Customers.ListCustomers(ctx)
	if err != nil {
		return ListResult[customer.Customer]{}, err
	}

	term := strings.ToLower(params.Search)
	var rows []customer.Customer
	for _, c := range all {
		if term == "" || strings.Contains(strings.ToLower(c.Name), term) || strings.Contains(strings.ToLower(c.Email), term) {
			rows = append(rows, c)
		}
	}

	less := map[string]func(a, b customer.Customer) bool{
		"nombre":          func(a, b customer.Customer) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) },
		"email":           func(a, b customer.Customer) bool { return a.Email < b.Email },
		"fechaNacimiento": func(a, b customer.Customer) bool { return a.BirthDate < b.BirthDate },
		"numeroVisitas":   func(a, b customer.Customer) bool { return a.Visits < b.Visits },
	}
	sortRows(rows, params, less, func(a, b customer.Customer) bool { return a.ID < b.ID })
	return page(rows, params), nil
}

// GetKartListDeps holds dependencies for GetKartList.
type GetKartListDeps struct {
	Karts KartReader
}

// QueryGetKartList filters by code and status, sorts and pages karts.
// PRE: params came from listutil.Parse with KartSortColumns
// POST: When params.Filter is a status, only karts in that status are returned
func QueryGetKartList(ctx context.Context, params listutil.ListParams, deps GetKartListDeps) (ListResult[kart.Kart], error) {
	all, err := deps.Karts.ListKarts(ctx)
	if err != nil {
		return ListResult[kart.Kart]{}, err
	}

	term := strings.ToLower(params.Search)
	var rows []kart.Kart
	for _, k := range all {
		if params.Filter != "" && k.Status != params.Filter {
			continue
		}
		if term == "" || strings.Contains(strings.ToLower(k.Code), term) {
			rows = append(rows, k)
		}
	}

	less := map[string]func(a, b kart.Kart) bool{
		"codigo": func(a, b kart.Kart) bool { return a.Code < b.Code },
		"estado": func(a, b kart.Kart) bool { return a.Status < b.Status },
	}
	sortRows(rows, params, less, func(a, b kart.Kart) bool { return a.ID < b.ID })
	return page(rows, params), nil
}

// GetReservationListDeps holds dependencies for GetReservationList.
type GetReservationListDeps struct {
	Reservations ReservationReader
}

// QueryGetReservationList filters by id, date, customer name or kart code,
// sorts and pages reservations. The default order is by date and time.
// PRE: params came from listutil.Parse with ReservationSortColumns
// POST: Items holds at most params.PerPage reservations
func QueryGetReservationList(ctx context.Context, params listutil.ListParams, deps GetReservationListDeps) (ListResult[reservation.Reservation], error) {
	all, err := deps.Reservations.ListReservations(ctx)
	if err != nil {
		return ListResult[reservation.Reservation]{}, err
	}

	term := strings.ToLower(params.Search)
	var rows []reservation.Reservation
	for _, r := range all {
		if term == "" || reservationMatches(r, term) {
			rows = append(rows, r)
		}
	}

	byDate := func(a, b reservation.Reservation) bool {
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		return a.ClockLabel() < b.ClockLabel()
	}
	less := map[string]func(a, b reservation.Reservation) bool{
		"id":          func(a, b reservation.Reservation) bool { return a.ID < b.ID },
		"fecha":       byDate,
		"personas":    func(a, b reservation.Reservation) bool { return a.Headcount() < b.Headcount() },
		"precioFinal": func(a, b reservation.Reservation) bool { return a.FinalPrice < b.FinalPrice },
	}
	sortRows(rows, params, less, byDate)
	return page(rows, params), nil
}

func reservationMatches(r reservation.Reservation, term string) bool {
	if strings.Contains(strconv.FormatInt(r.ID, 10), term) || strings.Contains(r.Date, term) {
		return true
	}
	for _, c := range r.Customers {
		if strings.Contains(strings.ToLower(c.Name), term) {
			return true
		}
	}
	for _, k := range r.Karts {
		if strings.Contains(strings.ToLower(k.Code), term) {
			return true
		}
	}
	return false
}

// sortRows orders rows by the requested column, falling back to def.
func sortRows[T any](rows []T, params listutil.ListParams, less map[string]func(a, b T) bool, def func(a, b T) bool) {
	fn, ok := less[params.Sort]
	if !ok {
		fn = def
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if params.Desc {
			return fn(rows[j], rows[i])
		}
		return fn(rows[i], rows[j])
	})
}

func page[T any](rows []T, params listutil.ListParams) ListResult[T] {
	info := listutil.NewPageInfo(params.Page, params.PerPage, len(rows))
	return ListResult[T]{
		Items:  listutil.Paginate(rows, info),
		Page:   info,
		Params: params,
	}
}
