package rack_test

import (
	"errors"
	"testing"
	"time"

	"karting/internal/domain/customer"
	"karting/internal/domain/rack"
	"karting/internal/domain/reservation"
	"karting/internal/domain/validation"
)

// TestWeekBounds checks every day of a week maps to the same Monday..Sunday.
func TestWeekBounds(t *testing.T) {
	wantStart := time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)

	for d := 12; d <= 18; d++ {
		anchor := time.Date(2026, 10, d, 15, 30, 0, 0, time.UTC)
		start, end := rack.WeekBounds(anchor)
		if !start.Equal(wantStart) || !end.Equal(wantEnd) {
			t.Errorf("WeekBounds(Oct %d) = %s..%s", d, start.Format(time.DateOnly), end.Format(time.DateOnly))
		}
	}
}

// TestWeekBoundsContainsAnchor checks the Monday-start invariant over a range of dates.
func TestWeekBoundsContainsAnchor(t *testing.T) {
	zone := time.FixedZone("UTC-3", -3*3600)
	base := time.Date(2024, 12, 20, 23, 30, 0, 0, zone)
	for i := 0; i < 400; i++ {
		anchor := base.AddDate(0, 0, i)
		start, end := rack.WeekBounds(anchor)

		if start.Weekday() != time.Monday {
			t.Fatalf("start %s is %s", start, start.Weekday())
		}
		if end.Weekday() != time.Sunday || end.Sub(start) != 6*24*time.Hour {
			t.Fatalf("end %s not 6 days after %s", end, start)
		}
		y, m, d := anchor.Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		if day.Before(start) || day.After(end) {
			t.Fatalf("anchor %s outside %s..%s", anchor, start, end)
		}
	}
}

// TestCellInfoMissingKey treats absent days and slots as available.
func TestCellInfoMissingKey(t *testing.T) {
	tests := []struct {
		name string
		grid rack.Grid
	}{
		{"nil grid", nil},
		{"empty grid", rack.Grid{}},
		{"day without slot", rack.Grid{"Lunes": {}}},
		{"empty slot", rack.Grid{"Lunes": {"09:00-10:00": nil}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := rack.CellInfo("Lunes", "09:00-10:00", tt.grid)
			if !c.Available {
				t.Error("expected available")
			}
		})
	}
}

// TestBuildViewSingleReservation marks exactly one occupied cell.
func TestBuildViewSingleReservation(t *testing.T) {
	res := reservation.Reservation{ID: 3, Customers: []customer.Customer{{ID: 1}}}
	grid := rack.Grid{"Martes": {"10:00-11:00": {res}}}
	start, _ := rack.WeekBounds(time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC))

	v := rack.BuildView(start, grid)

	if v.Occupied != 1 || v.Available != 48 {
		t.Fatalf("occupied=%d available=%d, want 1 and 48", v.Occupied, v.Available)
	}
	for _, row := range v.Rows {
		for _, c := range row.Cells {
			wantOccupied := c.Day == "Martes" && c.Slot == "10:00-11:00"
			if c.Available == wantOccupied {
				t.Errorf("%s %s available=%v", c.Day, c.Slot, c.Available)
			}
			if wantOccupied && c.Labels()[0] != "Reserva #3 - 1 cliente(s)" {
				t.Errorf("label = %q", c.Labels()[0])
			}
		}
	}
}

// TestBuildViewEmpty renders 49 available cells for an empty week.
func TestBuildViewEmpty(t *testing.T) {
	start, _ := rack.WeekBounds(time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC))
	v := rack.BuildView(start, rack.Grid{})

	if len(v.Rows) != 7 || v.Available != 49 {
		t.Fatalf("rows=%d available=%d", len(v.Rows), v.Available)
	}
	if v.Headers[0].Short() != "12/10" || v.Headers[6].Short() != "18/10" {
		t.Errorf("headers %s..%s", v.Headers[0].Short(), v.Headers[6].Short())
	}
	if got := v.NextWeek().Format(time.DateOnly); got != "2026-10-19" {
		t.Errorf("NextWeek = %s", got)
	}
}

// TestBuildViewOverlap shows a reservation spanning two slots in both cells.
func TestBuildViewOverlap(t *testing.T) {
	res := reservation.Reservation{ID: 9, Customers: []customer.Customer{{ID: 1}}}
	grid := rack.Grid{"Viernes": {"11:00-12:00": {res}, "12:00-13:00": {res}}}
	start, _ := rack.WeekBounds(time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC))

	v := rack.BuildView(start, grid)
	if v.Occupied != 2 {
		t.Errorf("occupied = %d, want 2", v.Occupied)
	}
}

func TestParseAnchor(t *testing.T) {
	fallback := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		raw     string
		want    time.Time
		wantErr bool
	}{
		{"empty uses fallback", "", fallback, false},
		{"iso date", "2026-11-02", time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC), false},
		{"surrounding spaces", " 2026-11-02 ", time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC), false},
		{"day first", "14-10-2026", time.Time{}, true},
		{"impossible day", "2026-02-30", time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rack.ParseAnchor(tt.raw, fallback)
			if tt.wantErr {
				var errs validation.Errors
				if !errors.As(err, &errs) || !errs.Has(rack.FieldAnchor) {
					t.Fatalf("err = %v, want a %s field error", err, rack.FieldAnchor)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}
