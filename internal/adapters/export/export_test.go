package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"karting/internal/domain/customer"
	"karting/internal/domain/kart"
	"karting/internal/domain/report"
	"karting/internal/domain/reservation"
)

func samplePivot() report.Pivot {
	rng := report.Range{
		Start: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	return report.Build(report.KindLaps, rng, report.Data{
		"10 vueltas o máx 30 min": {"JANUARY": 17850, "MARCH": 35700, "TOTAL": 53550},
		"20 vueltas o máx 40 min": {"FEBRUARY": 29750, "TOTAL": 29750},
	})
}

// TestReportPDF produces a PDF document for data and for an empty period.
func TestReportPDF(t *testing.T) {
	for _, p := range []report.Pivot{samplePivot(), report.Build(report.KindHeadcount, report.Range{}, nil)} {
		data, err := ReportPDF(p)
		if err != nil {
			t.Fatalf("ReportPDF: %v", err)
		}
		if !bytes.HasPrefix(data, []byte("%PDF")) {
			t.Errorf("not a PDF: %q", data[:8])
		}
	}
}

// TestReportXLSX writes the pivot as numbers with a totals row.
func TestReportXLSX(t *testing.T) {
	data, err := ReportXLSX(samplePivot())
	if err != nil {
		t.Fatalf("ReportXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(reportSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	// title, period, blank, header, 2 categories, totals
	if len(rows) != 7 {
		t.Fatalf("rows = %d, want 7: %v", len(rows), rows)
	}
	header := rows[3]
	if header[1] != "Enero" || header[3] != "Marzo" || header[4] != "Total" {
		t.Errorf("header = %v", header)
	}

	raw, err := f.GetCellValue(reportSheet, "E7", excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if raw != "83300" {
		t.Errorf("grand total = %q, want 83300", raw)
	}
}

// TestReservationSlip renders a PDF and encodes id, date and time in the QR payload.
func TestReservationSlip(t *testing.T) {
	r := reservation.Reservation{
		ID:         12,
		Customers:  []customer.Customer{{ID: 1, Name: "Ana Pérez"}},
		Karts:      []kart.Kart{{ID: 1, Code: "K001"}},
		Laps:       10,
		MaxMinutes: 10,
		BasePrice:  15000,
		FinalPrice: 15000,
		Date:       "2026-10-20",
		Time:       "10:00:00",
	}

	if got := SlipPayload(r); got != "reserva:12|2026-10-20|10:00" {
		t.Errorf("SlipPayload = %q", got)
	}
	data, err := ReservationSlip(r)
	if err != nil {
		t.Fatalf("ReservationSlip: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("slip is not a PDF")
	}
}
