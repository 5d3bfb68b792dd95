package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"karting/internal/domain/report"
)

const reportSheet = "Reporte"

// ReportXLSX writes the pivot to a single-sheet workbook. Amounts are stored
// as numbers with a peso format so they stay summable.
// PRE: none
// POST: Returns an XLSX document with header, category rows and a totals row
func ReportXLSX(p report.Pivot) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	pesoFmt := `"$"#,##0`
	money, err := f.NewStyle(&excelize.Style{CustomNumFmt: &pesoFmt})
	if err != nil {
		return nil, err
	}
	moneyBold, err := f.NewStyle(&excelize.Style{CustomNumFmt: &pesoFmt, Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	set := func(col, row int, v any, style int) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(reportSheet, cell, v); err != nil {
			return err
		}
		if style != 0 {
			return f.SetCellStyle(reportSheet, cell, cell, style)
		}
		return nil
	}

	if err := set(1, 1, p.Kind.Title(), bold); err != nil {
		return nil, err
	}
	if err := set(1, 2, fmt.Sprintf("Periodo: %s al %s",
		p.Range.Start.Format("02/01/2006"), p.Range.End.Format("02/01/2006")), 0); err != nil {
		return nil, err
	}

	if p.Empty() {
		if err := set(1, 4, "No hay datos para el periodo seleccionado.", 0); err != nil {
			return nil, err
		}
		return write(f)
	}

	const headerRow = 4
	header := append([]string{p.Kind.CategoryHeader()}, p.MonthLabels()...)
	header = append(header, "Total")
	for i, h := range header {
		if err := set(i+1, headerRow, h, bold); err != nil {
			return nil, err
		}
	}

	rowNum := headerRow + 1
	for _, row := range p.Rows {
		if err := set(1, rowNum, row.Category, 0); err != nil {
			return nil, err
		}
		for i, v := range row.Values {
			if err := set(i+2, rowNum, v, money); err != nil {
				return nil, err
			}
		}
		if err := set(len(p.Months)+2, rowNum, row.Total, money); err != nil {
			return nil, err
		}
		rowNum++
	}

	if err := set(1, rowNum, "Total", bold); err != nil {
		return nil, err
	}
	for i, v := range p.Totals {
		if err := set(i+2, rowNum, v, moneyBold); err != nil {
			return nil, err
		}
	}
	if err := set(len(p.Months)+2, rowNum, p.GrandTotal, moneyBold); err != nil {
		return nil, err
	}

	if err := f.SetColWidth(reportSheet, "A", "A", 32); err != nil {
		return nil, err
	}
	return write(f)
}

func write(f *excelize.File) ([]byte, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
