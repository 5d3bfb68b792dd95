package projections

import (
	"context"

	"karting/internal/domain/report"
)

// GetRevenueReportQuery carries the raw inicio/fin values of the request.
type GetRevenueReportQuery struct {
	Kind  report.Kind
	Start string
	End   string
}

// GetRevenueReportDeps holds dependencies for GetRevenueReport.
type GetRevenueReportDeps struct {
	Reports ReportFetcher
}

// QueryGetRevenueReport validates the range, fetches the report and pivots it.
// PRE: query.Kind is a known kind
// POST: Returns a Pivot, validation.Errors for a bad range, or an upstream error
// INVARIANT: The collaborator is not called when the range is invalid
func QueryGetRevenueReport(ctx context.Context, query GetRevenueReportQuery, deps GetRevenueReportDeps) (report.Pivot, error) {
	rng, err := report.ParseRange(query.Start, query.End)
	if err != nil {
		return report.Pivot{}, err
	}
	data, err := deps.Reports.RevenueReport(ctx, query.Kind, rng)
	if err != nil {
		return report.Pivot{}, err
	}
	return report.Build(query.Kind, rng, data), nil
}
