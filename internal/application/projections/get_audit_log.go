package projections

import (
	"context"

	auditStore "karting/internal/adapters/storage/audit"
	domainAudit "karting/internal/domain/audit"
)

// AuditLogLimit is how many events the audit page shows.
const AuditLogLimit = 100

// GetAuditLogQuery carries optional filters.
type GetAuditLogQuery struct {
	Resource string
}

// GetAuditLogDeps holds dependencies for GetAuditLog.
type GetAuditLogDeps struct {
	AuditStore AuditLister
}

// QueryGetAuditLog returns the latest console audit events.
// PRE: none
// POST: Returns at most AuditLogLimit events, newest first
func QueryGetAuditLog(ctx context.Context, query GetAuditLogQuery, deps GetAuditLogDeps) ([]domainAudit.Event, error) {
	var filter auditStore.Filter
	if query.Resource != "" {
		res := domainAudit.Resource(query.Resource)
		filter.ResourceType = &res
	}
	return deps.AuditStore.List(ctx, filter, AuditLogLimit)
}
