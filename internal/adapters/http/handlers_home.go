package web

import (
	"context"
	"net/http"
	"strings"
	"time"

	"karting/internal/application/projections"
)

// handleHome renders the dashboard, with search results when q is set.
func handleHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	deps := projections.GetDashboardDeps{Customers: svc.API, Karts: svc.API, Reservations: svc.API}
	result, err := projections.QueryGetDashboard(ctx, projections.GetDashboardQuery{Now: venueNow()}, deps)
	if err != nil {
		respondError(w, r, err, "Inicio")
		return
	}

	term := strings.TrimSpace(r.URL.Query().Get("q"))
	results, err := projections.QueryGetSearch(ctx, term, projections.GetSearchDeps{Customers: svc.API, Karts: svc.API, Reservations: svc.API})
	if err != nil {
		respondError(w, r, err, "Inicio")
		return
	}

	if !isHTMLRequest(r) {
		writeJSON(w, http.StatusOK, map[string]any{"dashboard": result, "results": results})
		return
	}
	renderTemplate(w, r, "home.html", map[string]any{
		"Title":     "Inicio",
		"Dashboard": result,
		"Query":     term,
		"Results":   results,
	})
}

// handleSearch answers the global search box.
func handleSearch(w http.ResponseWriter, r *http.Request) {
	term := strings.TrimSpace(r.URL.Query().Get("q"))
	results, err := projections.QueryGetSearch(r.Context(), term, projections.GetSearchDeps{Customers: svc.API, Karts: svc.API, Reservations: svc.API})
	if err != nil {
		respondError(w, r, err, "Búsqueda")
		return
	}
	if !isHTMLRequest(r) {
		writeJSON(w, http.StatusOK, results)
		return
	}
	renderTemplate(w, r, "search.html", map[string]any{
		"Title":   "Búsqueda",
		"Query":   term,
		"Results": results,
	})
}

// handleAuditLog lists the latest console actions.
func handleAuditLog(w http.ResponseWriter, r *http.Request) {
	query := projections.GetAuditLogQuery{Resource: r.URL.Query().Get("recurso")}
	events, err := projections.QueryGetAuditLog(r.Context(), query, projections.GetAuditLogDeps{AuditStore: svc.AuditStore})
	if err != nil {
		internalError(w, err)
		return
	}
	if !isHTMLRequest(r) {
		writeJSON(w, http.StatusOK, events)
		return
	}
	renderTemplate(w, r, "audit.html", map[string]any{
		"Title":    "Auditoría",
		"Events":   events,
		"Resource": query.Resource,
	})
}

// handleHealth reports whether the local database answers.
func handleHealth(w http.ResponseWriter, r *http.Request) {
	if svc.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := svc.DB.PingContext(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "database": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
