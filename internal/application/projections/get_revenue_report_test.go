package projections

import (
	"context"
	"errors"
	"testing"

	"karting/internal/domain/report"
	"karting/internal/domain/validation"
)

// TestQueryGetRevenueReport covers range validation and pivoting.
func TestQueryGetRevenueReport(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		end       string
		wantField string
		wantCalls int
	}{
		{name: "valid range", start: "2026-01-01", end: "2026-03-31", wantCalls: 1},
		{name: "missing start", start: "", end: "2026-03-31", wantField: report.FieldStart},
		{name: "end before start", start: "2026-03-31", end: "2026-01-01", wantField: report.FieldEnd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeCollaborator{reportData: report.Data{
				"10 vueltas o máx 10 min": {"JANUARY": 15000, "TOTAL": 15000},
			}}
			p, err := QueryGetRevenueReport(context.Background(), GetRevenueReportQuery{
				Kind: report.KindLaps, Start: tt.start, End: tt.end,
			}, GetRevenueReportDeps{Reports: f})

			if f.calls != tt.wantCalls {
				t.Errorf("collaborator calls = %d, want %d", f.calls, tt.wantCalls)
			}
			if tt.wantField != "" {
				var verrs validation.Errors
				if !errors.As(err, &verrs) || !verrs.Has(tt.wantField) {
					t.Fatalf("err = %v, want validation error on %s", err, tt.wantField)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.GrandTotal != 15000 || len(p.Rows) != 1 {
				t.Errorf("pivot = %+v", p)
			}
		})
	}
}
