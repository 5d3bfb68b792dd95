package web

import (
	"net/http"
	"strconv"
	"strings"

	"karting/internal/adapters/http/middleware"
	"karting/internal/application/listutil"
	"karting/internal/application/orchestrators"
	"karting/internal/application/projections"
	"karting/internal/domain/customer"
	"karting/internal/domain/validation"
)

// origin identifies the browser behind a write for the audit log.
func origin(r *http.Request) orchestrators.Origin {
	return orchestrators.Origin{IPAddress: middleware.ClientIP(r), UserAgent: r.UserAgent()}
}

func auditDeps() orchestrators.RecordAuditDeps {
	return orchestrators.RecordAuditDeps{AuditStore: svc.AuditStore, Now: timeNow}
}

// handleCustomerList renders the customer table.
func handleCustomerList(w http.ResponseWriter, r *http.Request) {
	params := listutil.Parse(r.URL.Query(), projections.CustomerSortColumns)
	result, err := projections.QueryGetCustomerList(r.Context(), params, projections.GetCustomerListDeps{Customers: svc.API})
	if err != nil {
		respondError(w, r, err, "Clientes")
		return
	}
	if !isHTMLRequest(r) {
		writeJSON(w, http.StatusOK, result)
		return
	}
	renderTemplate(w, r, "customer_list.html", map[string]any{
		"Title":  "Clientes",
		"List":   result,
		"Params": params,
	})
}

// customerFromRequest reads a customer from a form or a JSON body.
func customerFromRequest(r *http.Request) (customer.Customer, validation.Errors, error) {
	var c customer.Customer
	if isJSONBody(r) {
		err := strictDecode(r, &c)
		return c, nil, err
	}
	if err := r.ParseForm(); err != nil {
		return c, nil, err
	}
	c.Name = r.FormValue(customer.FieldName)
	c.Email = r.FormValue(customer.FieldEmail)
	c.BirthDate = r.FormValue(customer.FieldBirthDate)

	errs := validation.Errors{}
	if raw := strings.TrimSpace(r.FormValue(customer.FieldVisits)); raw != "" {
		visits, err := strconv.Atoi(raw)
		if err != nil {
			errs.Add(customer.FieldVisits, "El número de visitas debe ser un número entero.")
		}
		c.Visits = visits
	}
	return c, errs, nil
}

// handleCustomerAdd shows the create form (GET) or creates a customer (POST).
func handleCustomerAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		renderTemplate(w, r, "customer_form.html", map[string]any{
			"Title":    "Nuevo cliente",
			"Customer": customer.Customer{},
			"Action":   "/clientes/add",
		})
		return
	}
	saveCustomer(w, r, 0)
}

// handleCustomerEdit shows the edit form (GET) or updates a customer (POST).
func handleCustomerEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		handleNotFound(w, r)
		return
	}
	if r.Method == http.MethodGet {
		c, err := svc.API.GetCustomer(r.Context(), id)
		if err != nil {
			respondError(w, r, err, "Editar cliente")
			return
		}
		if !isHTMLRequest(r) {
			writeJSON(w, http.StatusOK, c)
			return
		}
		renderTemplate(w, r, "customer_form.html", map[string]any{
			"Title":    "Editar cliente",
			"Customer": c,
			"Action":   "/clientes/edit/" + strconv.FormatInt(id, 10),
		})
		return
	}
	saveCustomer(w, r, id)
}

// saveCustomer handles create (id == 0) and update submissions.
func saveCustomer(w http.ResponseWriter, r *http.Request, id int64) {
	c, formErrs, err := customerFromRequest(r)
	if err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	input := orchestrators.CustomerInput{ID: id, Customer: c, Origin: origin(r)}
	deps := orchestrators.CustomerDeps{Customers: svc.API, Audit: auditDeps()}
	var saved customer.Customer
	if len(formErrs) > 0 {
		err = formErrs
	} else if id == 0 {
		saved, err = orchestrators.ExecuteRegisterCustomer(r.Context(), input, deps)
	} else {
		saved, err = orchestrators.ExecuteUpdateCustomer(r.Context(), input, deps)
	}

	title, action := "Nuevo cliente", "/clientes/add"
	if id != 0 {
		title, action = "Editar cliente", "/clientes/edit/"+strconv.FormatInt(id, 10)
	}
	if errs, ok := asValidation(err); ok {
		if isJSONBody(r) || !isHTMLRequest(r) {
			validationFailed(w, errs)
			return
		}
		c.ID = id
		renderStatus(w, r, http.StatusUnprocessableEntity, "customer_form.html", map[string]any{
			"Title":    title,
			"Customer": c,
			"Action":   action,
			"Errors":   errs,
		})
		return
	}
	if err != nil {
		respondError(w, r, err, title)
		return
	}

	if isJSONBody(r) || !isHTMLRequest(r) {
		status := http.StatusOK
		if id == 0 {
			status = http.StatusCreated
		}
		writeJSON(w, status, saved)
		return
	}
	http.Redirect(w, r, "/clientes/list", http.StatusSeeOther)
}

// handleCustomerDelete confirms (GET) and deletes (POST) a customer.
func handleCustomerDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		handleNotFound(w, r)
		return
	}
	if r.Method == http.MethodGet {
		c, err := svc.API.GetCustomer(r.Context(), id)
		if err != nil {
			respondError(w, r, err, "Eliminar cliente")
			return
		}
		renderTemplate(w, r, "confirm.html", map[string]any{
			"Title":    "Eliminar cliente",
			"Question": "¿Eliminar al cliente " + c.Name + " (" + c.Email + ")?",
			"Action":   "/clientes/" + strconv.FormatInt(id, 10) + "/delete",
			"Submit":   "Eliminar",
			"Cancel":   "/clientes/list",
		})
		return
	}

	err := orchestrators.ExecuteDeleteCustomer(r.Context(), orchestrators.CustomerInput{ID: id, Origin: origin(r)},
		orchestrators.CustomerDeps{Customers: svc.API, Audit: auditDeps()})
	if err != nil {
		respondError(w, r, err, "Eliminar cliente")
		return
	}
	if !isHTMLRequest(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/clientes/list", http.StatusSeeOther)
}
