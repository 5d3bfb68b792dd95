package web

import (
	"net/http"

	"karting/internal/application/listutil"
	"karting/internal/application/orchestrators"
	"karting/internal/application/projections"
	"karting/internal/domain/kart"
)

// handleKartList renders the kart table with an optional status filter.
func handleKartList(w http.ResponseWriter, r *http.Request) {
	params := listutil.Parse(r.URL.Query(), projections.KartSortColumns)
	result, err := projections.QueryGetKartList(r.Context(), params, projections.GetKartListDeps{Karts: svc.API})
	if err != nil {
		respondError(w, r, err, "Karts")
		return
	}
	if !isHTMLRequest(r) {
		writeJSON(w, http.StatusOK, result)
		return
	}
	renderTemplate(w, r, "kart_list.html", map[string]any{
		"Title":    "Karts",
		"List":     result,
		"Params":   params,
		"Statuses": kart.Statuses(),
	})
}

// handleKartAdd shows the create form (GET) or registers a kart (POST).
func handleKartAdd(w http.ResponseWriter, r *http.Request) {
	formData := func(k kart.Kart) map[string]any {
		return map[string]any{
			"Title":    "Nuevo kart",
			"Kart":     k,
			"Codes":    kart.Codes(),
			"Statuses": kart.Statuses(),
		}
	}
	if r.Method == http.MethodGet {
		renderTemplate(w, r, "kart_form.html", formData(kart.Kart{Status: kart.StatusAvailable}))
		return
	}

	var input orchestrators.RegisterKartInput
	if isJSONBody(r) {
		var k kart.Kart
		if err := strictDecode(r, &k); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		input.Code, input.Status = k.Code, k.Status
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.Code = r.FormValue(kart.FieldCode)
		input.Status = r.FormValue(kart.FieldStatus)
	}
	input.Origin = origin(r)

	created, err := orchestrators.ExecuteRegisterKart(r.Context(), input, orchestrators.RegisterKartDeps{Karts: svc.API, Audit: auditDeps()})
	if errs, ok := asValidation(err); ok {
		if isJSONBody(r) || !isHTMLRequest(r) {
			validationFailed(w, errs)
			return
		}
		data := formData(kart.Kart{Code: input.Code, Status: input.Status})
		data["Errors"] = errs
		renderStatus(w, r, http.StatusUnprocessableEntity, "kart_form.html", data)
		return
	}
	if err != nil {
		respondError(w, r, err, "Nuevo kart")
		return
	}
	if isJSONBody(r) || !isHTMLRequest(r) {
		writeJSON(w, http.StatusCreated, created)
		return
	}
	http.Redirect(w, r, "/karts/list", http.StatusSeeOther)
}
