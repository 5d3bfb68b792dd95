package export

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"

	"karting/internal/domain/report"
)

// Content types of the generated files.
const (
	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ReportPDF renders the pivot as a landscape A4 table.
// PRE: none
// POST: Returns a PDF document; an empty pivot yields a "no data" page
func ReportPDF(p report.Pivot) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(p.Kind.Title()), false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, tr(p.Kind.Title()), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Periodo: %s al %s",
		p.Range.Start.Format("02/01/2006"), p.Range.End.Format("02/01/2006"))), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	if p.Empty() {
		pdf.CellFormat(0, 8, tr("No hay datos para el periodo seleccionado."), "", 1, "L", false, 0, "")
		return output(pdf)
	}

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageWidth - left - right
	firstCol := 60.0
	other := (usable - firstCol) / float64(len(p.Months)+1)

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(firstCol, 7, tr(p.Kind.CategoryHeader()), "1", 0, "L", true, 0, "")
	for _, label := range p.MonthLabels() {
		pdf.CellFormat(other, 7, tr(label), "1", 0, "C", true, 0, "")
	}
	pdf.CellFormat(other, 7, "Total", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, row := range p.Rows {
		pdf.CellFormat(firstCol, 7, tr(row.Category), "1", 0, "L", false, 0, "")
		for _, v := range row.Values {
			pdf.CellFormat(other, 7, report.FormatCLP(v), "1", 0, "R", false, 0, "")
		}
		pdf.CellFormat(other, 7, report.FormatCLP(row.Total), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(firstCol, 7, "Total", "1", 0, "L", true, 0, "")
	for _, v := range p.Totals {
		pdf.CellFormat(other, 7, report.FormatCLP(v), "1", 0, "R", true, 0, "")
	}
	pdf.CellFormat(other, 7, report.FormatCLP(p.GrandTotal), "1", 1, "R", true, 0, "")

	return output(pdf)
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
