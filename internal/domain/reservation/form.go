package reservation

import (
	"errors"
	"strings"
	"time"

	"karting/internal/domain/validation"
)

// Form field names, used as keys in validation.Errors.
const (
	FieldCustomers = "clientes"
	FieldKarts     = "karts"
	FieldPlan      = "plan"
	FieldDate      = "fechaReserva"
	FieldTime      = "horaReserva"
)

// Form is the immutable state of the create-reservation form. Every setter
// returns a new Form; the receiver is never modified.
type Form struct {
	customerIDs []int64
	kartIDs     []int64
	planID      string
	date        string
	clock       string
}

// NewForm returns an empty form.
func NewForm() Form {
	return Form{}
}

// WithCustomers returns a copy with the given customer selection.
func (f Form) WithCustomers(ids []int64) Form {
	f.customerIDs = append([]int64(nil), ids...)
	return f
}

// WithKarts returns a copy with the given kart selection.
func (f Form) WithKarts(ids []int64) Form {
	f.kartIDs = append([]int64(nil), ids...)
	return f
}

// WithPlan returns a copy with the given plan id.
func (f Form) WithPlan(id string) Form {
	f.planID = strings.TrimSpace(id)
	return f
}

// WithDate returns a copy with the given yyyy-MM-dd date.
func (f Form) WithDate(date string) Form {
	f.date = strings.TrimSpace(date)
	return f
}

// WithTime returns a copy with the given HH:MM time.
func (f Form) WithTime(clock string) Form {
	f.clock = strings.TrimSpace(clock)
	return f
}

// CustomerIDs returns a copy of the selected customer ids.
func (f Form) CustomerIDs() []int64 { return append([]int64(nil), f.customerIDs...) }

// KartIDs returns a copy of the selected kart ids.
func (f Form) KartIDs() []int64 { return append([]int64(nil), f.kartIDs...) }

// PlanID returns the selected plan id.
func (f Form) PlanID() string { return f.planID }

// Date returns the selected date.
func (f Form) Date() string { return f.date }

// Time returns the selected time.
func (f Form) Time() string { return f.clock }

// HasCustomer reports whether id is selected.
func (f Form) HasCustomer(id int64) bool { return containsID(f.customerIDs, id) }

// HasKart reports whether id is selected.
func (f Form) HasKart(id int64) bool { return containsID(f.kartIDs, id) }

// Plan returns the selected plan, if it exists.
func (f Form) Plan() (Plan, bool) {
	return PlanByID(f.planID)
}

// SelectedPlan returns the selected plan, or the zero Plan when none is.
func (f Form) SelectedPlan() Plan {
	p, _ := f.Plan()
	return p
}

// Ready reports whether enough fields are set to show a booking summary.
func (f Form) Ready() bool {
	_, ok := f.Plan()
	return len(f.customerIDs) > 0 && len(f.kartIDs) > 0 && ok && f.date != "" && f.clock != ""
}

// Validate checks the form at submission time. now must be in the venue's
// time zone; the date and time are interpreted in now's location.
// PRE: none
// POST: Returns nil or validation.Errors keyed by field
// INVARIANT: Customer and kart counts must match
func (f Form) Validate(now time.Time) error {
	errs := validation.Errors{}

	if len(f.customerIDs) == 0 {
		errs.Add(FieldCustomers, "Debe seleccionar al menos un cliente")
	}
	if len(f.kartIDs) == 0 {
		errs.Add(FieldKarts, "Debe seleccionar al menos un kart")
	}
	if len(f.customerIDs) > 0 && len(f.kartIDs) > 0 && len(f.customerIDs) != len(f.kartIDs) {
		errs.Add(FieldKarts, "La cantidad de karts debe coincidir con la cantidad de clientes")
	}
	if _, ok := f.Plan(); !ok {
		errs.Add(FieldPlan, "Debe seleccionar un plan")
	}
	if f.date == "" {
		errs.Add(FieldDate, "Debe seleccionar una fecha")
	}
	if f.clock == "" {
		errs.Add(FieldTime, "Debe seleccionar una hora")
	}

	if f.date != "" && f.clock != "" {
		start, err := CombineDateTime(f.date, f.clock, now.Location())
		switch {
		case errors.Is(err, ErrInvalidDate):
			errs.Add(FieldDate, "Fecha inválida")
		case err != nil:
			errs.Add(FieldTime, "Hora inválida")
		case start.Before(now):
			errs.Add(FieldDate, "La fecha y hora de la reserva no pueden estar en el pasado")
		}
	}

	return errs.Err()
}

// Request builds the collaborator payload for a validated form.
// PRE: Validate returned nil
func (f Form) Request() CreateRequest {
	p, _ := f.Plan()
	req := CreateRequest{
		Laps:         p.Laps,
		MaxMinutes:   p.MaxMinutes,
		BasePrice:    p.Price,
		TotalMinutes: p.TotalMinutes,
		Date:         f.date,
		Time:         f.clock,
	}
	for _, id := range f.customerIDs {
		req.Customers = append(req.Customers, Ref{ID: id})
	}
	for _, id := range f.kartIDs {
		req.Karts = append(req.Karts, Ref{ID: id})
	}
	return req
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
