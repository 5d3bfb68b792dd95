package rack

import (
	"strings"
	"time"

	"karting/internal/domain/reservation"
	"karting/internal/domain/validation"
)

// FieldAnchor is the query field holding the date whose week is shown.
const FieldAnchor = "fecha"

// Days are the grid's day labels, Monday first.
var days = []string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo"}

// Slots are the bookable one-hour blocks; 13:00-14:00 is the lunch gap.
var slots = []string{
	"09:00-10:00",
	"10:00-11:00",
	"11:00-12:00",
	"12:00-13:00",
	"14:00-15:00",
	"15:00-16:00",
	"16:00-17:00",
}

// Days returns the day labels in week order.
func Days() []string { return append([]string(nil), days...) }

// Slots returns the slot labels in time order.
func Slots() []string { return append([]string(nil), slots...) }

// Grid is the collaborator's weekly projection: day label -> slot label -> reservations.
// Missing keys mean the cell is empty.
type Grid map[string]map[string][]reservation.Reservation

// Cell is the display state of one day/slot intersection.
type Cell struct {
	Day       string
	Slot      string
	Available bool
	Occupants []reservation.Reservation
}

// Labels returns one label per occupying reservation.
func (c Cell) Labels() []string {
	out := make([]string, 0, len(c.Occupants))
	for i := range c.Occupants {
		out = append(out, c.Occupants[i].Label())
	}
	return out
}

// CellInfo looks up a cell in the grid.
// PRE: none
// POST: Available is true iff the grid holds no reservation for day/slot
func CellInfo(day, slot string, grid Grid) Cell {
	c := Cell{Day: day, Slot: slot}
	if bySlot, ok := grid[day]; ok {
		c.Occupants = bySlot[slot]
	}
	c.Available = len(c.Occupants) == 0
	return c
}

// WeekBounds returns the Monday and Sunday of the week holding anchor's
// calendar date, as UTC midnights.
// PRE: none
// POST: start.Weekday() == Monday; end == start + 6 days; start <= anchor date <= end
func WeekBounds(anchor time.Time) (start, end time.Time) {
	y, m, d := anchor.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	start = day.AddDate(0, 0, -offset)
	end = start.AddDate(0, 0, 6)
	return start, end
}

// ParseAnchor reads a yyyy-MM-dd anchor date. An empty value yields
// fallback.
// PRE: none
// POST: Returns the parsed date, or validation.Errors keyed by FieldAnchor
func ParseAnchor(raw string, fallback time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	anchor, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		errs := validation.Errors{}
		errs.Add(FieldAnchor, "Fecha inválida, use el formato aaaa-mm-dd")
		return time.Time{}, errs.Err()
	}
	return anchor, nil
}

// DayHeader labels one grid column.
type DayHeader struct {
	Name string
	Date time.Time
}

// Short returns the dd/MM form shown in the grid header.
func (h DayHeader) Short() string {
	return h.Date.Format("02/01")
}

// Row is one slot across the seven days.
type Row struct {
	Slot  string
	Cells []Cell
}

// View is the full weekly grid ready to render.
type View struct {
	Start     time.Time
	End       time.Time
	Headers   []DayHeader
	Rows      []Row
	Available int
	Occupied  int
}

// PrevWeek returns the Monday of the previous week.
func (v View) PrevWeek() time.Time { return v.Start.AddDate(0, 0, -7) }

// NextWeek returns the Monday of the next week.
func (v View) NextWeek() time.Time { return v.Start.AddDate(0, 0, 7) }

// BuildView lays the grid out as slot rows by day columns.
// PRE: start is a Monday from WeekBounds
// POST: len(Rows) == len(Slots()); each row has len(Days()) cells
func BuildView(start time.Time, grid Grid) View {
	v := View{Start: start, End: start.AddDate(0, 0, 6)}
	for i, name := range days {
		v.Headers = append(v.Headers, DayHeader{Name: name, Date: start.AddDate(0, 0, i)})
	}
	for _, slot := range slots {
		row := Row{Slot: slot}
		for _, day := range days {
			c := CellInfo(day, slot, grid)
			if c.Available {
				v.Available++
			} else {
				v.Occupied++
			}
			row.Cells = append(row.Cells, c)
		}
		v.Rows = append(v.Rows, row)
	}
	return v
}
