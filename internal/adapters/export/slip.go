package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"

	"karting/internal/domain/report"
	"karting/internal/domain/reservation"
)

// SlipPayload is the text encoded in the slip's QR code.
func SlipPayload(r reservation.Reservation) string {
	return fmt.Sprintf("reserva:%d|%s|%s", r.ID, r.Date, r.ClockLabel())
}

// ReservationSlip renders a printable A5 slip with a QR code for check-in.
// PRE: r.ID > 0
// POST: Returns a single-page PDF
func ReservationSlip(r reservation.Reservation) ([]byte, error) {
	qrPNG, err := qrcode.Encode(SlipPayload(r), qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A5", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(fmt.Sprintf("Reserva #%d", r.ID), false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("Reserva #%d", r.ID), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 100, 12, 36, 36, false, imageOpts, 0, "")

	line := func(label, value string) {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(38, 7, tr(label), "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 7, tr(value), "", 1, "L", false, 0, "")
	}

	line("Fecha:", r.Date)
	line("Hora:", r.ClockLabel())
	line("Vueltas:", fmt.Sprintf("%d", r.Laps))
	line("Tiempo máximo:", fmt.Sprintf("%d min", r.MaxMinutes))
	line("Duración total:", fmt.Sprintf("%d min", r.TotalMinutes))
	line("Personas:", fmt.Sprintf("%d", r.Headcount()))
	pdf.Ln(6)

	line("Clientes:", strings.Join(r.CustomerNames(), ", "))
	line("Karts:", strings.Join(r.KartCodes(), ", "))
	pdf.Ln(4)

	line("Precio base:", report.FormatCLP(r.BasePrice))
	if r.TotalDiscount > 0 {
		line("Descuento:", fmt.Sprintf("%d%%", r.TotalDiscount))
	}
	line("Precio final:", report.FormatCLP(r.FinalPrice))

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 8)
	pdf.MultiCell(0, 4, tr("Presente este comprobante en el mesón al llegar. El código QR identifica su reserva."), "", "L", false)

	return output(pdf)
}
