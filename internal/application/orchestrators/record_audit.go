package orchestrators

import (
	"context"
	"log/slog"
	"time"

	domainAudit "karting/internal/domain/audit"
)

// RecordAuditInput describes one console action.
type RecordAuditInput struct {
	Action      domainAudit.Action
	Resource    domainAudit.Resource
	ResourceID  string
	Description string
	Origin      Origin
}

// RecordAuditDeps holds dependencies for RecordAudit.
type RecordAuditDeps struct {
	AuditStore AuditStore
	Now        func() time.Time
}

// ExecuteRecordAudit stores an audit event for a completed action.
// PRE: the action already succeeded
// POST: Event saved, or the failure logged
// INVARIANT: Never returns an error; audit problems must not fail the user action
func ExecuteRecordAudit(ctx context.Context, input RecordAuditInput, deps RecordAuditDeps) {
	if deps.AuditStore == nil {
		return
	}
	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}
	event := domainAudit.NewEvent(input.Action, input.Resource, now()).
		WithResourceID(input.ResourceID).
		WithDescription(input.Description).
		WithRequest(input.Origin.IPAddress, input.Origin.UserAgent)
	if err := deps.AuditStore.Save(ctx, event); err != nil {
		slog.Error("audit_save_failed", "action", input.Action, "resource", input.Resource, "error", err)
	}
}
