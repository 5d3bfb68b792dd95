package report

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"karting/internal/domain/validation"
)

// Kind selects one of the collaborator's revenue reports.
type Kind string

// Report kinds
const (
	KindLaps      Kind = "vueltas"
	KindHeadcount Kind = "personas"
)

// TotalKey is the synthetic per-category total the collaborator adds.
const TotalKey = "TOTAL"

// Range field names, used as keys in validation.Errors.
const (
	FieldStart = "inicio"
	FieldEnd   = "fin"
)

// ErrUnknownKind is returned for a report kind the console does not know.
var ErrUnknownKind = errors.New("unknown report kind")

// Kinds returns both report kinds in menu order.
func Kinds() []Kind { return []Kind{KindLaps, KindHeadcount} }

// ParseKind validates a kind taken from a URL.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindLaps, KindHeadcount:
		return Kind(s), nil
	}
	return "", ErrUnknownKind
}

// Endpoint returns the collaborator path segment for the kind.
func (k Kind) Endpoint() string {
	return "reporte-ingresos-" + string(k)
}

// Title is the page heading for the kind.
func (k Kind) Title() string {
	if k == KindHeadcount {
		return "Reporte de ingresos por número de personas"
	}
	return "Reporte de ingresos por número de vueltas o tiempo máximo"
}

// CategoryHeader is the first column heading for the kind.
func (k Kind) CategoryHeader() string {
	if k == KindHeadcount {
		return "Número de personas"
	}
	return "Número de vueltas / tiempo máximo"
}

// Data is the collaborator's raw report: category -> month key -> amount.
type Data map[string]map[string]int64

// Range is a validated, inclusive reporting period.
type Range struct {
	Start time.Time
	End   time.Time
}

// ParseRange validates the inicio/fin query values.
// PRE: none
// POST: Returns a Range with Start <= End, or validation.Errors
func ParseRange(start, end string) (Range, error) {
	errs := validation.Errors{}
	var r Range
	var err error

	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start == "" {
		errs.Add(FieldStart, "Debe seleccionar la fecha de inicio")
	} else if r.Start, err = time.Parse(time.DateOnly, start); err != nil {
		errs.Add(FieldStart, "Fecha de inicio inválida")
	}
	if end == "" {
		errs.Add(FieldEnd, "Debe seleccionar la fecha de fin")
	} else if r.End, err = time.Parse(time.DateOnly, end); err != nil {
		errs.Add(FieldEnd, "Fecha de fin inválida")
	}
	if len(errs) == 0 && r.End.Before(r.Start) {
		errs.Add(FieldEnd, "La fecha de fin no puede ser anterior a la de inicio")
	}
	if err := errs.Err(); err != nil {
		return Range{}, err
	}
	return r, nil
}

// Row is one category across the month columns.
type Row struct {
	Category string
	Values   []int64
	Total    int64
}

// Pivot is a report ready to render: sorted rows, ordered months, totals.
type Pivot struct {
	Kind       Kind
	Range      Range
	Months     []string
	Rows       []Row
	Totals     []int64
	GrandTotal int64
}

// Empty reports whether the period had no revenue rows.
func (p Pivot) Empty() bool { return len(p.Rows) == 0 }

// MonthLabels returns the display names of the month columns.
func (p Pivot) MonthLabels() []string {
	out := make([]string, len(p.Months))
	for i, m := range p.Months {
		out[i] = MonthLabel(m)
	}
	return out
}

// Build pivots raw report data.
// PRE: none
// POST: Months excludes TotalKey and is ordered chronologically, unknown keys last
// INVARIANT: Every row has len(Months) values; missing cells are 0
func Build(kind Kind, r Range, data Data) Pivot {
	p := Pivot{Kind: kind, Range: r}

	monthSet := map[string]bool{}
	categories := make([]string, 0, len(data))
	for category, byMonth := range data {
		categories = append(categories, category)
		for month := range byMonth {
			if month != TotalKey {
				monthSet[month] = true
			}
		}
	}
	for month := range monthSet {
		p.Months = append(p.Months, month)
	}
	sortMonths(p.Months)
	sortCategories(categories)

	p.Totals = make([]int64, len(p.Months))
	for _, category := range categories {
		byMonth := data[category]
		row := Row{Category: category, Values: make([]int64, len(p.Months))}
		var sum int64
		for i, month := range p.Months {
			row.Values[i] = byMonth[month]
			sum += row.Values[i]
			p.Totals[i] += row.Values[i]
		}
		row.Total = sum
		if total, ok := byMonth[TotalKey]; ok {
			row.Total = total
		}
		p.GrandTotal += row.Total
		p.Rows = append(p.Rows, row)
	}
	return p
}

var monthNames = map[string]struct {
	order int
	label string
}{
	"JANUARY":   {1, "Enero"},
	"FEBRUARY":  {2, "Febrero"},
	"MARCH":     {3, "Marzo"},
	"APRIL":     {4, "Abril"},
	"MAY":       {5, "Mayo"},
	"JUNE":      {6, "Junio"},
	"JULY":      {7, "Julio"},
	"AUGUST":    {8, "Agosto"},
	"SEPTEMBER": {9, "Septiembre"},
	"OCTOBER":   {10, "Octubre"},
	"NOVEMBER":  {11, "Noviembre"},
	"DECEMBER":  {12, "Diciembre"},
}

// MonthLabel returns the Spanish name of a month key, or the key itself.
func MonthLabel(key string) string {
	if m, ok := monthNames[strings.ToUpper(key)]; ok {
		return m.label
	}
	if key == TotalKey {
		return "Total"
	}
	return key
}

func monthOrder(key string) int {
	if m, ok := monthNames[strings.ToUpper(key)]; ok {
		return m.order
	}
	return 13
}

func sortMonths(months []string) {
	sort.Slice(months, func(i, j int) bool {
		oi, oj := monthOrder(months[i]), monthOrder(months[j])
		if oi != oj {
			return oi < oj
		}
		return months[i] < months[j]
	})
}

// sortCategories orders by leading number ("3-5 personas" before "11-15 personas"),
// then by text.
func sortCategories(categories []string) {
	sort.Slice(categories, func(i, j int) bool {
		ni, iok := leadingNumber(categories[i])
		nj, jok := leadingNumber(categories[j])
		if iok && jok && ni != nj {
			return ni < nj
		}
		if iok != jok {
			return iok
		}
		return categories[i] < categories[j]
	})
}

func leadingNumber(s string) (int, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	return n, err == nil
}

// Filename returns the export file name for the pivot, without extension.
func (p Pivot) Filename() string {
	return fmt.Sprintf("reporte-%s_%s_%s", p.Kind, p.Range.Start.Format(time.DateOnly), p.Range.End.Format(time.DateOnly))
}
