package orchestrators

import (
	"context"

	emailAdapter "karting/internal/adapters/email"
	domainAudit "karting/internal/domain/audit"
	"karting/internal/domain/customer"
	"karting/internal/domain/kart"
	"karting/internal/domain/report"
	"karting/internal/domain/reservation"
)

// CustomerWriter writes customers through the collaborator.
type CustomerWriter interface {
	CreateCustomer(ctx context.Context, c customer.Customer) (customer.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, c customer.Customer) (customer.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error
}

// KartWriter writes karts through the collaborator.
type KartWriter interface {
	CreateKart(ctx context.Context, k kart.Kart) (kart.Kart, error)
}

// ReservationWriter writes reservations through the collaborator.
type ReservationWriter interface {
	CreateReservation(ctx context.Context, req reservation.CreateRequest) (reservation.Reservation, error)
	DeleteReservation(ctx context.Context, id int64) error
}

// ReceiptSender asks the collaborator to email a reservation receipt.
type ReceiptSender interface {
	SendReceipt(ctx context.Context, id int64) ([]string, error)
}

// ReportFetcher fetches raw revenue report data.
type ReportFetcher interface {
	RevenueReport(ctx context.Context, kind report.Kind, r report.Range) (report.Data, error)
}

// AuditStore persists audit events.
type AuditStore interface {
	Save(ctx context.Context, event domainAudit.Event) error
}

// EmailSender delivers outgoing mail.
type EmailSender = emailAdapter.Sender

// EmailCounter records email outcomes.
type EmailCounter interface {
	CountEmail(kind string, err error)
}

// Origin identifies the browser request behind an action.
type Origin struct {
	IPAddress string
	UserAgent string
}
