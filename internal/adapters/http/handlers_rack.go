package web

import (
	"errors"
	"net/http"
	"time"

	"karting/internal/adapters/http/middleware"
	"karting/internal/application/projections"
	"karting/internal/domain/rack"
)

// handleRack renders the weekly grid for the week holding ?fecha
// (yyyy-MM-dd), defaulting to the current venue date. The browser's own
// loader decides whether this response may replace what it shows.
func handleRack(w http.ResponseWriter, r *http.Request) {
	loader, ok := middleware.StateFromContext[*projections.WeekLoader](r.Context())
	if !ok {
		internalError(w, errors.New("rack: no session loader"))
		return
	}

	raw := r.URL.Query().Get(rack.FieldAnchor)
	anchor, err := rack.ParseAnchor(raw, venueNow())
	if errs, ok := asValidation(err); ok {
		if !isHTMLRequest(r) {
			validationFailed(w, errs)
			return
		}
		// Keep whatever week is on screen and flag the date field.
		view, loaded := loader.Current()
		renderStatus(w, r, http.StatusUnprocessableEntity, "rack.html", map[string]any{
			"Title":  "Rack semanal",
			"Result": projections.GridResult{View: view, Loaded: loaded},
			"Fecha":  raw,
			"Errors": errs,
			"Today":  venueNow().Format(time.DateOnly),
		})
		return
	}

	result, err := loader.Load(r.Context(), anchor)
	status := http.StatusOK
	var banner *Banner
	switch {
	case errors.Is(err, projections.ErrSuperseded):
		// A newer navigation owns the screen; answer with what it shows.
		if !isHTMLRequest(r) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "superseded"})
			return
		}
	case err != nil:
		if !isHTMLRequest(r) {
			body := map[string]any{"error": upstreamMessage(err)}
			if result.Loaded {
				body["grid"] = result.View
			}
			writeJSON(w, http.StatusBadGateway, body)
			return
		}
		status = http.StatusBadGateway
		banner = &Banner{Message: upstreamMessage(err), RetryURL: r.URL.RequestURI()}
	}

	if !isHTMLRequest(r) {
		writeJSON(w, http.StatusOK, result.View)
		return
	}
	renderStatus(w, r, status, "rack.html", map[string]any{
		"Title":  "Rack semanal",
		"Result": result,
		"Banner": banner,
		"Fecha":  anchor.Format(time.DateOnly),
		"Today":  venueNow().Format(time.DateOnly),
	})
}
