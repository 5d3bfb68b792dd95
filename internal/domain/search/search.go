package search

import (
	"fmt"
	"strconv"
	"strings"

	"karting/internal/domain/customer"
	"karting/internal/domain/kart"
	"karting/internal/domain/reservation"
)

// MaxResults caps how many matches Search returns.
const MaxResults = 8

// Result kinds
const (
	KindCustomer    = "cliente"
	KindKart        = "kart"
	KindReservation = "reserva"
)

// Snapshot is the entity data a search runs over. It is fetched per request
// and passed in explicitly.
type Snapshot struct {
	Customers    []customer.Customer
	Karts        []kart.Kart
	Reservations []reservation.Reservation
}

// Result is one search hit with the console link it navigates to.
type Result struct {
	Kind     string `json:"tipo"`
	ID       int64  `json:"id"`
	Title    string `json:"titulo"`
	Subtitle string `json:"subtitulo"`
	URL      string `json:"url"`
}

// Search matches term against customers (name, email), karts (code) and
// reservations (id, date), in that order.
// PRE: none
// POST: Returns at most MaxResults results; a blank term returns none
func Search(term string, snap Snapshot) []Result {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	lower := strings.ToLower(term)
	var results []Result

	for _, c := range snap.Customers {
		if strings.Contains(strings.ToLower(c.Name), lower) || strings.Contains(strings.ToLower(c.Email), lower) {
			results = append(results, Result{
				Kind:     KindCustomer,
				ID:       c.ID,
				Title:    c.Name,
				Subtitle: c.Email,
				URL:      fmt.Sprintf("/clientes/edit/%d", c.ID),
			})
			if len(results) == MaxResults {
				return results
			}
		}
	}

	for _, k := range snap.Karts {
		if strings.Contains(strings.ToLower(k.Code), lower) {
			results = append(results, Result{
				Kind:     KindKart,
				ID:       k.ID,
				Title:    k.Code,
				Subtitle: "Estado: " + kart.StatusLabel(k.Status),
				URL:      "/karts/list?q=" + k.Code,
			})
			if len(results) == MaxResults {
				return results
			}
		}
	}

	for _, r := range snap.Reservations {
		id := strconv.FormatInt(r.ID, 10)
		if strings.Contains(id, term) || strings.Contains(r.Date, term) {
			results = append(results, Result{
				Kind:     KindReservation,
				ID:       r.ID,
				Title:    "Reserva #" + id,
				Subtitle: r.Date,
				URL:      "/reservas/list?q=" + id,
			})
			if len(results) == MaxResults {
				return results
			}
		}
	}

	return results
}
