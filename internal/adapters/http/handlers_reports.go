package web

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"karting/internal/adapters/export"
	"karting/internal/application/orchestrators"
	"karting/internal/application/projections"
	domainAudit "karting/internal/domain/audit"
	"karting/internal/domain/report"
	"karting/internal/domain/validation"
)

func reportKind(r *http.Request) (report.Kind, bool) {
	kind, err := report.ParseKind(mux.Vars(r)["kind"])
	return kind, err == nil
}

func reportData(kind report.Kind, start, end string) map[string]any {
	return map[string]any{
		"Title":      kind.Title(),
		"Kind":       kind,
		"Start":      start,
		"End":        end,
		"Recipients": strings.Join(svc.ReportRecipients, ", "),
	}
}

// handleReport renders a revenue report for ?inicio&fin. Without either
// date only the range form is shown.
func handleReport(w http.ResponseWriter, r *http.Request) {
	kind, ok := reportKind(r)
	if !ok {
		handleNotFound(w, r)
		return
	}
	q := r.URL.Query()
	start, end := q.Get(report.FieldStart), q.Get(report.FieldEnd)
	data := reportData(kind, start, end)

	if start == "" && end == "" && isHTMLRequest(r) {
		renderTemplate(w, r, "report.html", data)
		return
	}

	pivot, err := projections.QueryGetRevenueReport(r.Context(),
		projections.GetRevenueReportQuery{Kind: kind, Start: start, End: end},
		projections.GetRevenueReportDeps{Reports: svc.API})
	if errs, ok := asValidation(err); ok {
		if !isHTMLRequest(r) {
			validationFailed(w, errs)
			return
		}
		data["Errors"] = errs
		renderStatus(w, r, http.StatusUnprocessableEntity, "report.html", data)
		return
	}
	if err != nil {
		respondError(w, r, err, kind.Title())
		return
	}
	if !isHTMLRequest(r) {
		writeJSON(w, http.StatusOK, pivot)
		return
	}
	data["Pivot"] = pivot
	renderTemplate(w, r, "report.html", data)
}

// handleReportExport downloads the report as PDF or XLSX.
func handleReportExport(w http.ResponseWriter, r *http.Request) {
	kind, ok := reportKind(r)
	if !ok {
		handleNotFound(w, r)
		return
	}
	q := r.URL.Query()
	pivot, err := projections.QueryGetRevenueReport(r.Context(),
		projections.GetRevenueReportQuery{Kind: kind, Start: q.Get(report.FieldStart), End: q.Get(report.FieldEnd)},
		projections.GetRevenueReportDeps{Reports: svc.API})
	if errs, ok := asValidation(err); ok {
		validationFailed(w, errs)
		return
	}
	if err != nil {
		respondError(w, r, err, kind.Title())
		return
	}

	format := mux.Vars(r)["format"]
	var body []byte
	contentType := export.ContentTypePDF
	if format == "xlsx" {
		contentType = export.ContentTypeXLSX
		body, err = export.ReportXLSX(pivot)
	} else {
		body, err = export.ReportPDF(pivot)
	}
	if err != nil {
		internalError(w, err)
		return
	}

	filename := pivot.Filename() + "." + format
	orchestrators.ExecuteRecordAudit(r.Context(), orchestrators.RecordAuditInput{
		Action:      domainAudit.ActionExport,
		Resource:    domainAudit.ResourceReport,
		ResourceID:  pivot.Filename(),
		Description: filename,
		Origin:      origin(r),
	}, auditDeps())

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(body)
}

// handleReportEmail mails the report to the given or configured recipients.
func handleReportEmail(w http.ResponseWriter, r *http.Request) {
	kind, ok := reportKind(r)
	if !ok {
		handleNotFound(w, r)
		return
	}
	input := orchestrators.EmailRevenueReportInput{Kind: kind, Origin: origin(r)}
	if isJSONBody(r) {
		var body struct {
			Start string   `json:"inicio"`
			End   string   `json:"fin"`
			To    []string `json:"destinatarios"`
		}
		if err := strictDecode(r, &body); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		input.Start, input.End, input.To = body.Start, body.End, body.To
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.Start = r.FormValue(report.FieldStart)
		input.End = r.FormValue(report.FieldEnd)
		if to := strings.TrimSpace(r.FormValue(orchestrators.FieldRecipients)); to != "" {
			input.To = []string{to}
		}
	}

	pivot, err := orchestrators.ExecuteEmailRevenueReport(r.Context(), input, reportEmailDeps())
	data := reportData(kind, input.Start, input.End)
	if len(input.To) > 0 {
		data["Recipients"] = strings.Join(input.To, ", ")
	}
	if errs, ok := asValidation(err); ok {
		if isJSONBody(r) || !isHTMLRequest(r) {
			validationFailed(w, errs)
			return
		}
		data["Errors"] = errs
		if !errs.Has(report.FieldStart) && !errs.Has(report.FieldEnd) {
			// Keep the table on screen while the recipients are corrected.
			if pivot, err := projections.QueryGetRevenueReport(r.Context(),
				projections.GetRevenueReportQuery{Kind: kind, Start: input.Start, End: input.End},
				projections.GetRevenueReportDeps{Reports: svc.API}); err == nil {
				data["Pivot"] = pivot
			}
		}
		renderStatus(w, r, http.StatusUnprocessableEntity, "report.html", data)
		return
	}
	if err != nil {
		respondError(w, r, err, kind.Title())
		return
	}
	if isJSONBody(r) || !isHTMLRequest(r) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "enviado"})
		return
	}
	data["Pivot"] = pivot
	data["Notice"] = "Reporte enviado por correo."
	data["Errors"] = validation.Errors{}
	renderTemplate(w, r, "report.html", data)
}

// reportEmailDeps assembles the report mailing dependencies.
func reportEmailDeps() orchestrators.EmailRevenueReportDeps {
	return orchestrators.EmailRevenueReportDeps{
		Reports:    svc.API,
		Sender:     svc.Email,
		Emails:     svc.Metrics,
		From:       svc.EmailFrom,
		ReplyTo:    svc.ReplyTo,
		Recipients: svc.ReportRecipients,
		Audit:      auditDeps(),
	}
}
