package reservation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"karting/internal/domain/customer"
	"karting/internal/domain/kart"
)

// Domain errors
var (
	ErrInvalidTime = errors.New("reservation time must be HH:MM or HH:MM:SS")
	ErrInvalidDate = errors.New("reservation date must be yyyy-MM-dd")
)

// Reservation mirrors the collaborator's reserva resource. Prices and
// discounts are computed server-side and are display-only here.
type Reservation struct {
	ID               int64               `json:"id"`
	Customers        []customer.Customer `json:"clientes"`
	Karts            []kart.Kart         `json:"karts"`
	Laps             int                 `json:"numeroVueltas"`
	MaxMinutes       int                 `json:"tiempoMaximo"`
	TotalMinutes     int                 `json:"duracionTotal"`
	BasePrice        int64               `json:"precioBase"`
	FinalPrice       int64               `json:"precioFinal"`
	People           int                 `json:"numeroPersonas"`
	GroupDiscount    int                 `json:"descuentoPorPersonas"`
	VisitsDiscount   int                 `json:"descuentoPorVisitas"`
	BirthdayDiscount int                 `json:"descuentoPorCumpleaños"`
	TotalDiscount    int                 `json:"descuentoTotal"`
	SpecialDay       bool                `json:"esDiaEspecial"`
	TotalPrice       int64               `json:"precioTotal"`
	Date             string              `json:"fechaReserva"` // yyyy-MM-dd
	Time             string              `json:"horaReserva"`  // HH:MM[:SS]
}

// Ref identifies an existing entity in a create request.
type Ref struct {
	ID int64 `json:"id"`
}

// CreateRequest is the body sent to POST /api/reservas.
type CreateRequest struct {
	Customers    []Ref  `json:"clientes"`
	Karts        []Ref  `json:"karts"`
	Laps         int    `json:"numeroVueltas"`
	MaxMinutes   int    `json:"tiempoMaximo"`
	BasePrice    int64  `json:"precioBase"`
	TotalMinutes int    `json:"duracionTotal"`
	Date         string `json:"fechaReserva"`
	Time         string `json:"horaReserva"`
}

// ParseClock parses "HH:MM" or "HH:MM:SS" into hours and minutes.
// PRE: none
// POST: Returns hour in [0,23], minute in [0,59], or ErrInvalidTime
func ParseClock(s string) (hour, minute int, err error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, perr := time.Parse(layout, s); perr == nil {
			return t.Hour(), t.Minute(), nil
		}
	}
	return 0, 0, ErrInvalidTime
}

// CombineDateTime joins a yyyy-MM-dd date and a clock string in loc.
func CombineDateTime(date, clock string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(date), loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	h, m, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), h, m, 0, 0, loc), nil
}

// StartsAt returns the reservation start in loc.
func (r Reservation) StartsAt(loc *time.Location) (time.Time, error) {
	return CombineDateTime(r.Date, r.Time, loc)
}

// ClockLabel returns the reservation time as HH:MM.
func (r Reservation) ClockLabel() string {
	h, m, err := ParseClock(r.Time)
	if err != nil {
		return r.Time
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}

// Headcount returns the number of customers on the reservation.
func (r Reservation) Headcount() int {
	return len(r.Customers)
}

// Label is the short description used in grid cells and search results.
func (r Reservation) Label() string {
	return fmt.Sprintf("Reserva #%d - %d cliente(s)", r.ID, len(r.Customers))
}

// KartCodes returns the codes of the assigned karts.
func (r Reservation) KartCodes() []string {
	codes := make([]string, 0, len(r.Karts))
	for _, k := range r.Karts {
		codes = append(codes, k.Code)
	}
	return codes
}

// CustomerNames returns the names of the customers on the reservation.
func (r Reservation) CustomerNames() []string {
	names := make([]string, 0, len(r.Customers))
	for _, c := range r.Customers {
		names = append(names, c.Name)
	}
	return names
}
