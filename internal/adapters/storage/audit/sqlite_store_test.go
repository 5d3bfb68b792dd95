package audit

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"karting/internal/adapters/storage"
	domain "karting/internal/domain/audit"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSQLiteStore(db)
}

// TestSaveAndList stores events and lists them newest first.
func TestSaveAndList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

	events := []domain.Event{
		domain.NewEvent(domain.ActionCreate, domain.ResourceCustomer, base).WithResourceID("1"),
		domain.NewEvent(domain.ActionDelete, domain.ResourceReservation, base.Add(time.Minute)).WithResourceID("7"),
		domain.NewEvent(domain.ActionCreate, domain.ResourceKart, base.Add(2*time.Minute)).WithResourceID("3"),
	}
	for _, e := range events {
		if err := store.Save(ctx, e); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	got, err := store.List(ctx, Filter{}, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 3 || got[0].ResourceType != domain.ResourceKart {
		t.Fatalf("List order wrong: %+v", got)
	}
	if !got[2].Timestamp.Equal(base) {
		t.Errorf("timestamp round trip: %v", got[2].Timestamp)
	}

	action := domain.ActionCreate
	created, err := store.List(ctx, Filter{Action: &action}, 10)
	if err != nil {
		t.Fatalf("List filtered: %v", err)
	}
	if len(created) != 2 {
		t.Errorf("filtered count = %d, want 2", len(created))
	}

	limited, _ := store.List(ctx, Filter{}, 1)
	if len(limited) != 1 {
		t.Errorf("limit ignored: %d", len(limited))
	}
}

// TestGetByID fetches a single event and reports missing ones.
func TestGetByID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	e := domain.NewEvent(domain.ActionSendReceipt, domain.ResourceReservation, time.Now()).
		WithDescription("Comprobante enviado")
	if err := store.Save(ctx, e); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.GetByID(ctx, e.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Description != "Comprobante enviado" {
		t.Errorf("description = %q", got.Description)
	}

	if _, err := store.GetByID(ctx, "missing"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
}

// TestSaveRejectsInvalid refuses events without an action.
func TestSaveRejectsInvalid(t *testing.T) {
	store := newTestStore(t)
	if err := store.Save(context.Background(), domain.Event{ID: "x"}); !errors.Is(err, domain.ErrInvalidEvent) {
		t.Errorf("expected ErrInvalidEvent, got %v", err)
	}
}
