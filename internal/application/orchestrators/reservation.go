package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	domainAudit "karting/internal/domain/audit"
	"karting/internal/domain/reservation"
)

// CreateReservationInput carries the reservation form.
type CreateReservationInput struct {
	Form   reservation.Form
	Origin Origin
}

// CreateReservationDeps holds dependencies for CreateReservation.
type CreateReservationDeps struct {
	Reservations ReservationWriter
	Audit        RecordAuditDeps
	Now          func() time.Time // venue-local clock
}

// ExecuteCreateReservation validates the form against the venue clock and
// submits it.
// PRE: none
// POST: Returns the created reservation, validation.Errors, or an upstream error
// INVARIANT: Nothing is sent while the form is incomplete or in the past
func ExecuteCreateReservation(ctx context.Context, input CreateReservationInput, deps CreateReservationDeps) (reservation.Reservation, error) {
	if err := input.Form.Validate(deps.Now()); err != nil {
		return reservation.Reservation{}, err
	}
	created, err := deps.Reservations.CreateReservation(ctx, input.Form.Request())
	if err != nil {
		return reservation.Reservation{}, fmt.Errorf("create reservation: %w", err)
	}

	slog.Info("reservation_created", "reservation_id", created.ID, "date", created.Date, "time", created.ClockLabel())
	ExecuteRecordAudit(ctx, RecordAuditInput{
		Action:      domainAudit.ActionCreate,
		Resource:    domainAudit.ResourceReservation,
		ResourceID:  strconv.FormatInt(created.ID, 10),
		Description: created.Date + " " + created.ClockLabel(),
		Origin:      input.Origin,
	}, deps.Audit)
	return created, nil
}

// ReservationActionInput identifies a reservation for delete or receipt.
type ReservationActionInput struct {
	ID     int64
	Origin Origin
}

// DeleteReservationDeps holds dependencies for DeleteReservation.
type DeleteReservationDeps struct {
	Reservations ReservationWriter
	Audit        RecordAuditDeps
}

// ExecuteDeleteReservation removes a reservation.
// PRE: input.ID > 0 and the user confirmed
// POST: Reservation deleted upstream, or an upstream error
func ExecuteDeleteReservation(ctx context.Context, input ReservationActionInput, deps DeleteReservationDeps) error {
	if err := deps.Reservations.DeleteReservation(ctx, input.ID); err != nil {
		return fmt.Errorf("delete reservation %d: %w", input.ID, err)
	}
	slog.Info("reservation_deleted", "reservation_id", input.ID)
	ExecuteRecordAudit(ctx, RecordAuditInput{
		Action:     domainAudit.ActionDelete,
		Resource:   domainAudit.ResourceReservation,
		ResourceID: strconv.FormatInt(input.ID, 10),
		Origin:     input.Origin,
	}, deps.Audit)
	return nil
}

// SendReceiptDeps holds dependencies for SendReceipt.
type SendReceiptDeps struct {
	Receipts ReceiptSender
	Emails   EmailCounter
	Audit    RecordAuditDeps
}

// ExecuteSendReceipt asks the collaborator to email the receipt.
// PRE: input.ID > 0 and the user confirmed
// POST: Returns the addresses the receipt was sent to
func ExecuteSendReceipt(ctx context.Context, input ReservationActionInput, deps SendReceiptDeps) ([]string, error) {
	sent, err := deps.Receipts.SendReceipt(ctx, input.ID)
	if deps.Emails != nil {
		deps.Emails.CountEmail("receipt", err)
	}
	if err != nil {
		return nil, fmt.Errorf("send receipt %d: %w", input.ID, err)
	}

	slog.Info("receipt_sent", "reservation_id", input.ID, "recipients", len(sent))
	ExecuteRecordAudit(ctx, RecordAuditInput{
		Action:      domainAudit.ActionSendReceipt,
		Resource:    domainAudit.ResourceReservation,
		ResourceID:  strconv.FormatInt(input.ID, 10),
		Description: strings.Join(sent, ", "),
		Origin:      input.Origin,
	}, deps.Audit)
	return sent, nil
}
