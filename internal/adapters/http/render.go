package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"

	"karting/internal/adapters/api"
	"karting/internal/application/listutil"
	"karting/internal/domain/kart"
	"karting/internal/domain/report"
	"karting/internal/domain/validation"
)

//go:embed templates/*.html
var templateFS embed.FS

// Banner is the dismissible error strip shown above a page.
type Banner struct {
	Message  string
	RetryURL string
}

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// isHTMLRequest reports whether the client prefers an HTML page.
func isHTMLRequest(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	if accept == "" {
		return true
	}
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "application/xhtml+xml")
}

// isJSONBody reports whether the request body is JSON rather than a form.
func isJSONBody(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json_encode_failed", "error", err)
	}
}

// pathID reads the numeric {id} route variable.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id, err == nil && id > 0
}

func templateFuncs(r *http.Request) template.FuncMap {
	return template.FuncMap{
		"csrfToken":   func() string { return csrf.Token(r) },
		"csrfField":   func() template.HTML { return csrf.TemplateField(r) },
		"clp":         report.FormatCLP,
		"kartStatus":  kart.StatusLabel,
		"monthLabel":  report.MonthLabel,
		"add":         func(a, b int) int { return a + b },
		"sub":         func(a, b int) int { return a - b },
		"join":        strings.Join,
		"isoDate":     func(t time.Time) string { return t.Format(time.DateOnly) },
		"shortDate":   func(t time.Time) string { return t.Format("02/01/2006") },
		"fieldError":  func(errs validation.Errors, field string) string { return errs.Get(field) },
		"hasError":    func(errs validation.Errors, field string) bool { return errs.Has(field) },
		"pageURL":     func(p listutil.ListParams, n int) template.URL { return template.URL(p.PageURL(n)) },
		"sortURL":     func(p listutil.ListParams, col string) template.URL { return template.URL(p.SortURL(col)) },
		"perPageOpts": func() []int { return listutil.PerPageOptions },
		"slotStart": func(slot string) string {
			start, _, _ := strings.Cut(slot, "-")
			return start
		},
		"sortMark": func(p listutil.ListParams, col string) string {
			if p.Sort != col {
				return ""
			}
			if p.Desc {
				return " ▼"
			}
			return " ▲"
		},
	}
}

// renderTemplate renders a page inside layout.html with status 200.
func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data map[string]any) {
	renderStatus(w, r, http.StatusOK, templateName, data)
}

// renderStatus renders a page inside layout.html with the given status. The
// breadcrumbs for the request path are added to data.
func renderStatus(w http.ResponseWriter, r *http.Request, status int, templateName string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	data["Breadcrumbs"] = Breadcrumbs(r.URL.Path)
	data["Path"] = r.URL.Path
	if _, ok := data["Errors"]; !ok {
		data["Errors"] = validation.Errors{}
	}

	tpl, err := template.New("layout.html").Funcs(templateFuncs(r)).ParseFS(templateFS, "templates/layout.html", "templates/partials.html", "templates/"+templateName)
	if err != nil {
		internalError(w, err)
		return
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Debug("response_write_failed", "error", err)
	}
}

// handleNotFound renders the not-found page.
func handleNotFound(w http.ResponseWriter, r *http.Request) {
	if !isHTMLRequest(r) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	renderStatus(w, r, http.StatusNotFound, "not_found.html", map[string]any{"Title": "Página no encontrada"})
}

// upstreamMessage returns the banner text for a collaborator failure.
func upstreamMessage(err error) string {
	var ne *api.NetworkError
	var se *api.ServerError
	switch {
	case errors.As(err, &ne):
		return "No se pudo conectar con el servidor de reservas."
	case errors.As(err, &se):
		return "El servidor de reservas respondió con un error (" + strconv.Itoa(se.Status) + ")."
	}
	return "Ocurrió un error inesperado."
}

// respondError maps an operation failure to a response. Collaborator 404s
// become the not-found page; other collaborator failures become a banner with
// a retry link (502 for JSON); anything else is an internal error.
func respondError(w http.ResponseWriter, r *http.Request, err error, title string) {
	switch {
	case api.IsNotFound(err):
		handleNotFound(w, r)
	case api.IsUpstream(err):
		slog.Warn("upstream_error", "path", r.URL.Path, "error", err)
		if !isHTMLRequest(r) {
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": upstreamMessage(err)})
			return
		}
		retry := r.URL.RequestURI()
		if r.Method != http.MethodGet {
			retry = r.Referer()
		}
		renderStatus(w, r, http.StatusBadGateway, "error.html", map[string]any{
			"Title":  title,
			"Banner": &Banner{Message: upstreamMessage(err), RetryURL: retry},
		})
	default:
		internalError(w, err)
	}
}

// validationFailed writes validation errors as JSON 422.
func validationFailed(w http.ResponseWriter, errs validation.Errors) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": errs})
}

// asValidation extracts validation errors from err.
func asValidation(err error) (validation.Errors, bool) {
	var errs validation.Errors
	if errors.As(err, &errs) {
		return errs, true
	}
	return nil, false
}
