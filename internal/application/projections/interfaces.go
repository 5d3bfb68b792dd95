package projections

import (
	"context"
	"time"

	auditStore "karting/internal/adapters/storage/audit"
	domainAudit "karting/internal/domain/audit"
	"karting/internal/domain/customer"
	"karting/internal/domain/kart"
	"karting/internal/domain/rack"
	"karting/internal/domain/report"
	"karting/internal/domain/reservation"
)

// CustomerReader reads customers from the collaborator.
type CustomerReader interface {
	ListCustomers(ctx context.Context) ([]customer.Customer, error)
	GetCustomer(ctx context.Context, id int64) (customer.Customer, error)
}

// KartReader reads karts from the collaborator.
type KartReader interface {
	ListKarts(ctx context.Context) ([]kart.Kart, error)
}

// ReservationReader reads reservations from the collaborator.
type ReservationReader interface {
	ListReservations(ctx context.Context) ([]reservation.Reservation, error)
}

// GridFetcher fetches the weekly day/slot projection.
type GridFetcher interface {
	WeeklyGrid(ctx context.Context, start, end time.Time) (rack.Grid, error)
}

// ReportFetcher fetches a raw revenue report.
type ReportFetcher interface {
	RevenueReport(ctx context.Context, kind report.Kind, r report.Range) (report.Data, error)
}

// AuditLister lists local audit events.
type AuditLister interface {
	List(ctx context.Context, filter auditStore.Filter, limit int) ([]domainAudit.Event, error)
}
