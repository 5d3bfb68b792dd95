package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"karting/internal/domain/rack"
	"karting/internal/domain/report"
)

// ReportJobTimeout bounds one scheduled run.
const ReportJobTimeout = 2 * time.Minute

// PreviousWeek returns the Monday..Sunday range of the week before now.
func PreviousWeek(now time.Time) (start, end string) {
	s, e := rack.WeekBounds(now.AddDate(0, 0, -7))
	return s.Format(time.DateOnly), e.Format(time.DateOnly)
}

// RunWeeklyReports emails both revenue reports for the previous week.
// PRE: deps.Recipients is non-empty
// POST: Each report is attempted once; failures are logged
func RunWeeklyReports(ctx context.Context, now time.Time, deps EmailRevenueReportDeps) {
	start, end := PreviousWeek(now)
	for _, kind := range report.Kinds() {
		input := EmailRevenueReportInput{Kind: kind, Start: start, End: end, Origin: Origin{UserAgent: "scheduler"}}
		if _, err := ExecuteEmailRevenueReport(ctx, input, deps); err != nil {
			slog.Error("scheduled_report_failed", "kind", kind, "start", start, "end", end, "error", err)
		}
	}
}

// StartReportSchedule runs the weekly report job on the given cron spec in
// the venue time zone. An empty spec disables the job.
// PRE: spec is a standard 5-field cron expression or empty
// POST: Returns the running scheduler (nil when disabled); the caller stops it
func StartReportSchedule(spec string, loc *time.Location, deps EmailRevenueReportDeps) (*cron.Cron, error) {
	if spec == "" || len(deps.Recipients) == 0 {
		slog.Info("report_schedule_disabled")
		return nil, nil
	}
	c := cron.New(cron.WithLocation(loc))
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), ReportJobTimeout)
		defer cancel()
		RunWeeklyReports(ctx, time.Now().In(loc), deps)
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	slog.Info("report_schedule_started", "spec", spec, "timezone", loc.String())
	return c, nil
}
