package audit_test

import (
	"errors"
	"testing"
	"time"

	"karting/internal/domain/audit"
)

// TestNewEvent builds a valid event with a generated id.
func TestNewEvent(t *testing.T) {
	now := time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)
	e := audit.NewEvent(audit.ActionDelete, audit.ResourceReservation, now).
		WithResourceID("12").
		WithDescription("Reserva #12 eliminada").
		WithRequest("10.0.0.1", "test-agent")

	if err := e.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if e.ID == "" || !e.Timestamp.Equal(now) {
		t.Errorf("event = %+v", e)
	}
	if e.ActionLabel() != "Eliminación" {
		t.Errorf("ActionLabel() = %q", e.ActionLabel())
	}
}

// TestValidateRejectsIncomplete requires action and resource.
func TestValidateRejectsIncomplete(t *testing.T) {
	e := audit.NewEvent("", audit.ResourceKart, time.Now())
	if err := e.Validate(); !errors.Is(err, audit.ErrInvalidEvent) {
		t.Errorf("expected ErrInvalidEvent, got %v", err)
	}
}
