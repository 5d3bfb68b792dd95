package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"karting/internal/adapters/export"
	"karting/internal/application/listutil"
	"karting/internal/application/orchestrators"
	"karting/internal/application/projections"
	domainAudit "karting/internal/domain/audit"
	"karting/internal/domain/reservation"
	"karting/internal/domain/validation"
)

// reservationBody is the JSON shape accepted by POST /reservas/add.
type reservationBody struct {
	Customers []int64 `json:"clientes"`
	Karts     []int64 `json:"karts"`
	Plan      string  `json:"plan"`
	Date      string  `json:"fechaReserva"`
	Time      string  `json:"horaReserva"`
}

// handleReservationList renders the reservation table.
func handleReservationList(w http.ResponseWriter, r *http.Request) {
	params := listutil.Parse(r.URL.Query(), projections.ReservationSortColumns)
	result, err := projections.QueryGetReservationList(r.Context(), params, projections.GetReservationListDeps{Reservations: svc.API})
	if err != nil {
		respondError(w, r, err, "Reservas")
		return
	}
	if !isHTMLRequest(r) {
		writeJSON(w, http.StatusOK, result)
		return
	}
	renderTemplate(w, r, "reservation_list.html", map[string]any{
		"Title":  "Reservas",
		"List":   result,
		"Params": params,
	})
}

// formFromRequest builds the immutable form from a submission. Unparseable
// ids are dropped, which surfaces as a missing selection.
func formFromRequest(r *http.Request) (reservation.Form, error) {
	if isJSONBody(r) {
		var body reservationBody
		if err := strictDecode(r, &body); err != nil {
			return reservation.Form{}, err
		}
		return reservation.Form{}.
			WithCustomers(body.Customers).
			WithKarts(body.Karts).
			WithPlan(body.Plan).
			WithDate(body.Date).
			WithTime(body.Time), nil
	}
	if err := r.ParseForm(); err != nil {
		return reservation.Form{}, err
	}
	return reservation.Form{}.
		WithCustomers(parseIDs(r.Form[reservation.FieldCustomers])).
		WithKarts(parseIDs(r.Form[reservation.FieldKarts])).
		WithPlan(r.FormValue(reservation.FieldPlan)).
		WithDate(r.FormValue(reservation.FieldDate)).
		WithTime(r.FormValue(reservation.FieldTime)), nil
}

func parseIDs(raw []string) []int64 {
	ids := make([]int64, 0, len(raw))
	for _, s := range raw {
		if id, err := strconv.ParseInt(s, 10, 64); err == nil && id > 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

// renderReservationForm loads the options and renders the create form.
func renderReservationForm(w http.ResponseWriter, r *http.Request, status int, form reservation.Form, errs validation.Errors) {
	opts, err := projections.QueryGetReservationForm(r.Context(), projections.GetReservationFormDeps{Customers: svc.API, Karts: svc.API})
	if err != nil {
		respondError(w, r, err, "Nueva reserva")
		return
	}
	renderStatus(w, r, status, "reservation_form.html", map[string]any{
		"Title":   "Nueva reserva",
		"Form":    form,
		"Options": opts,
		"Errors":  errs,
		"Today":   venueNow().Format("2006-01-02"),
	})
}

// handleReservationAdd shows the create form (GET) or submits it (POST).
// GET accepts fechaReserva and horaReserva to prefill from the weekly grid.
func handleReservationAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		q := r.URL.Query()
		form := reservation.Form{}.
			WithDate(q.Get(reservation.FieldDate)).
			WithTime(q.Get(reservation.FieldTime))
		renderReservationForm(w, r, http.StatusOK, form, nil)
		return
	}

	form, err := formFromRequest(r)
	if err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	created, err := orchestrators.ExecuteCreateReservation(r.Context(),
		orchestrators.CreateReservationInput{Form: form, Origin: origin(r)},
		orchestrators.CreateReservationDeps{Reservations: svc.API, Audit: auditDeps(), Now: venueNow})
	if errs, ok := asValidation(err); ok {
		if isJSONBody(r) || !isHTMLRequest(r) {
			validationFailed(w, errs)
			return
		}
		renderReservationForm(w, r, http.StatusUnprocessableEntity, form, errs)
		return
	}
	if err != nil {
		respondError(w, r, err, "Nueva reserva")
		return
	}
	if isJSONBody(r) || !isHTMLRequest(r) {
		writeJSON(w, http.StatusCreated, created)
		return
	}
	http.Redirect(w, r, "/reservas/list", http.StatusSeeOther)
}

// loadReservation finds the reservation named by the path, writing the
// error response itself when it cannot.
func loadReservation(w http.ResponseWriter, r *http.Request, title string) (reservation.Reservation, bool) {
	id, ok := pathID(r)
	if !ok {
		handleNotFound(w, r)
		return reservation.Reservation{}, false
	}
	res, err := projections.QueryGetReservation(r.Context(), id, projections.GetReservationDeps{Reservations: svc.API})
	if errors.Is(err, projections.ErrReservationNotFound) {
		handleNotFound(w, r)
		return reservation.Reservation{}, false
	}
	if err != nil {
		respondError(w, r, err, title)
		return reservation.Reservation{}, false
	}
	return res, true
}

// handleReservationDelete confirms (GET) and deletes (POST) a reservation.
func handleReservationDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		res, ok := loadReservation(w, r, "Eliminar reserva")
		if !ok {
			return
		}
		renderTemplate(w, r, "confirm.html", map[string]any{
			"Title":       "Eliminar reserva",
			"Question":    "¿Eliminar la " + res.Label() + " del " + res.Date + " a las " + res.ClockLabel() + "?",
			"Reservation": res,
			"Action":      "/reservas/" + strconv.FormatInt(res.ID, 10) + "/delete",
			"Submit":      "Eliminar",
			"Cancel":      "/reservas/list",
		})
		return
	}

	id, ok := pathID(r)
	if !ok {
		handleNotFound(w, r)
		return
	}
	err := orchestrators.ExecuteDeleteReservation(r.Context(), orchestrators.ReservationActionInput{ID: id, Origin: origin(r)},
		orchestrators.DeleteReservationDeps{Reservations: svc.API, Audit: auditDeps()})
	if err != nil {
		respondError(w, r, err, "Eliminar reserva")
		return
	}
	if !isHTMLRequest(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/reservas/list", http.StatusSeeOther)
}

// handleReservationReceipt confirms (GET) and sends (POST) the receipt email.
func handleReservationReceipt(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		res, ok := loadReservation(w, r, "Enviar comprobante")
		if !ok {
			return
		}
		renderTemplate(w, r, "confirm.html", map[string]any{
			"Title":       "Enviar comprobante",
			"Question":    "¿Enviar el comprobante de la " + res.Label() + " a: " + joinEmails(res) + "?",
			"Reservation": res,
			"Action":      "/reservas/" + strconv.FormatInt(res.ID, 10) + "/comprobante",
			"Submit":      "Enviar",
			"Cancel":      "/reservas/list",
		})
		return
	}

	id, ok := pathID(r)
	if !ok {
		handleNotFound(w, r)
		return
	}
	sent, err := orchestrators.ExecuteSendReceipt(r.Context(), orchestrators.ReservationActionInput{ID: id, Origin: origin(r)},
		orchestrators.SendReceiptDeps{Receipts: svc.API, Emails: svc.Metrics, Audit: auditDeps()})
	if err != nil {
		respondError(w, r, err, "Enviar comprobante")
		return
	}
	if !isHTMLRequest(r) {
		writeJSON(w, http.StatusOK, map[string]any{"enviados": sent})
		return
	}
	renderTemplate(w, r, "receipt_sent.html", map[string]any{
		"Title":         "Comprobante enviado",
		"ReservationID": id,
		"Sent":          sent,
	})
}

func joinEmails(res reservation.Reservation) string {
	emails := make([]string, 0, len(res.Customers))
	for _, c := range res.Customers {
		emails = append(emails, c.Email)
	}
	return strings.Join(emails, ", ")
}

// handleReservationSlip streams the printable slip as a PDF.
func handleReservationSlip(w http.ResponseWriter, r *http.Request) {
	res, ok := loadReservation(w, r, "Ficha de reserva")
	if !ok {
		return
	}
	pdf, err := export.ReservationSlip(res)
	if err != nil {
		internalError(w, err)
		return
	}
	orchestrators.ExecuteRecordAudit(r.Context(), orchestrators.RecordAuditInput{
		Action:      domainAudit.ActionExport,
		Resource:    domainAudit.ResourceReservation,
		ResourceID:  strconv.FormatInt(res.ID, 10),
		Description: "Ficha PDF",
		Origin:      origin(r),
	}, auditDeps())

	w.Header().Set("Content-Type", export.ContentTypePDF)
	w.Header().Set("Content-Disposition", `inline; filename="reserva-`+strconv.FormatInt(res.ID, 10)+`.pdf"`)
	_, _ = w.Write(pdf)
}
