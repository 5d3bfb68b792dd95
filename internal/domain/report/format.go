package report

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var clp = message.NewPrinter(language.MustParse("es-CL"))

// FormatCLP formats an amount in Chilean pesos, e.g. 15000 -> "$15.000".
func FormatCLP(amount int64) string {
	if amount < 0 {
		return "-$" + clp.Sprintf("%d", -amount)
	}
	return "$" + clp.Sprintf("%d", amount)
}

// Markdown renders the pivot as a GFM table with a heading.
func Markdown(p Pivot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## %s\n\n", p.Kind.Title())
	fmt.Fprintf(&b, "Periodo: %s al %s\n\n", p.Range.Start.Format("02/01/2006"), p.Range.End.Format("02/01/2006"))

	if p.Empty() {
		b.WriteString("No hay datos para el periodo seleccionado.\n")
		return b.String()
	}

	header := append([]string{p.Kind.CategoryHeader()}, p.MonthLabels()...)
	header = append(header, "Total")
	writeMarkdownRow(&b, header)

	sep := make([]string, len(header))
	sep[0] = "---"
	for i := 1; i < len(sep); i++ {
		sep[i] = "---:"
	}
	writeMarkdownRow(&b, sep)

	for _, row := range p.Rows {
		cells := []string{row.Category}
		for _, v := range row.Values {
			cells = append(cells, FormatCLP(v))
		}
		cells = append(cells, FormatCLP(row.Total))
		writeMarkdownRow(&b, cells)
	}

	totals := []string{"**Total**"}
	for _, v := range p.Totals {
		totals = append(totals, FormatCLP(v))
	}
	totals = append(totals, "**"+FormatCLP(p.GrandTotal)+"**")
	writeMarkdownRow(&b, totals)

	return b.String()
}

func writeMarkdownRow(b *strings.Builder, cells []string) {
	b.WriteString("|")
	for _, c := range cells {
		b.WriteString(" ")
		b.WriteString(strings.ReplaceAll(c, "|", "\\|"))
		b.WriteString(" |")
	}
	b.WriteString("\n")
}
