package orchestrators

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	emailAdapter "karting/internal/adapters/email"
	"karting/internal/adapters/export"
	domainAudit "karting/internal/domain/audit"
	"karting/internal/domain/report"
	"karting/internal/domain/validation"
)

// FieldRecipients is the form field holding report recipients.
const FieldRecipients = "destinatarios"

// reportRenderer converts report Markdown into HTML. Raw HTML is escaped.
var reportRenderer = goldmark.New(goldmark.WithExtensions(extension.GFM))

// EmailRevenueReportInput carries the report request.
type EmailRevenueReportInput struct {
	Kind   report.Kind
	Start  string
	End    string
	To     []string // empty means the configured recipients
	Origin Origin
}

// EmailRevenueReportDeps holds dependencies for EmailRevenueReport.
type EmailRevenueReportDeps struct {
	Reports    ReportFetcher
	Sender     EmailSender
	Emails     EmailCounter
	From       string
	ReplyTo    string
	Recipients []string
	Audit      RecordAuditDeps
}

// ExecuteEmailRevenueReport fetches a report and mails it as an HTML table
// with PDF and XLSX copies attached.
// PRE: input.Kind is a known kind
// POST: Returns the pivot that was sent, validation.Errors, or a send error
// INVARIANT: Nothing is fetched when the range or the recipients are invalid
func ExecuteEmailRevenueReport(ctx context.Context, input EmailRevenueReportInput, deps EmailRevenueReportDeps) (report.Pivot, error) {
	rng, rangeErr := report.ParseRange(input.Start, input.End)
	errs := validation.Errors{}
	if verrs, ok := rangeErr.(validation.Errors); ok {
		errs = verrs
	}
	to := input.To
	if len(to) == 0 {
		to = deps.Recipients
	}
	to, problem := parseRecipients(to)
	if problem != "" {
		errs.Add(FieldRecipients, problem)
	}
	if err := errs.Err(); err != nil {
		return report.Pivot{}, err
	}

	data, err := deps.Reports.RevenueReport(ctx, input.Kind, rng)
	if err != nil {
		return report.Pivot{}, fmt.Errorf("fetch report: %w", err)
	}
	p := report.Build(input.Kind, rng, data)

	req, err := buildReportEmail(p, to, deps.From, deps.ReplyTo)
	if err != nil {
		return report.Pivot{}, err
	}
	_, err = deps.Sender.Send(ctx, req)
	if deps.Emails != nil {
		deps.Emails.CountEmail("report", err)
	}
	if err != nil {
		return report.Pivot{}, fmt.Errorf("send report: %w", err)
	}

	slog.Info("report_emailed", "kind", p.Kind, "start", rng.Start.Format("2006-01-02"), "end", rng.End.Format("2006-01-02"), "recipients", len(to))
	ExecuteRecordAudit(ctx, RecordAuditInput{
		Action:      domainAudit.ActionEmailReport,
		Resource:    domainAudit.ResourceReport,
		ResourceID:  p.Filename(),
		Description: strings.Join(to, ", "),
		Origin:      input.Origin,
	}, deps.Audit)
	return p, nil
}

// RenderReportHTML renders the pivot as an HTML document body.
func RenderReportHTML(p report.Pivot) (string, error) {
	var buf bytes.Buffer
	if err := reportRenderer.Convert([]byte(report.Markdown(p)), &buf); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return buf.String(), nil
}

func buildReportEmail(p report.Pivot, to []string, from, replyTo string) (emailAdapter.SendRequest, error) {
	html, err := RenderReportHTML(p)
	if err != nil {
		return emailAdapter.SendRequest{}, err
	}
	pdf, err := export.ReportPDF(p)
	if err != nil {
		return emailAdapter.SendRequest{}, fmt.Errorf("report pdf: %w", err)
	}
	xlsx, err := export.ReportXLSX(p)
	if err != nil {
		return emailAdapter.SendRequest{}, fmt.Errorf("report xlsx: %w", err)
	}
	return emailAdapter.SendRequest{
		To:      to,
		From:    from,
		ReplyTo: replyTo,
		Subject: fmt.Sprintf("%s (%s al %s)", p.Kind.Title(), p.Range.Start.Format("02/01/2006"), p.Range.End.Format("02/01/2006")),
		HTML:    html,
		Attachments: []emailAdapter.Attachment{
			{Filename: p.Filename() + ".pdf", ContentType: export.ContentTypePDF, Content: pdf},
			{Filename: p.Filename() + ".xlsx", ContentType: export.ContentTypeXLSX, Content: xlsx},
		},
	}, nil
}

// parseRecipients trims, validates and de-duplicates addresses. The second
// result is a user-facing message when the list is unusable.
func parseRecipients(raw []string) ([]string, string) {
	seen := map[string]bool{}
	var out []string
	for _, entry := range raw {
		for _, part := range strings.Split(entry, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			addr, err := mail.ParseAddress(part)
			if err != nil {
				return nil, "Dirección inválida: " + part
			}
			key := strings.ToLower(addr.Address)
			if !seen[key] {
				seen[key] = true
				out = append(out, addr.Address)
			}
		}
	}
	if len(out) == 0 {
		return nil, "Debe indicar al menos un destinatario"
	}
	return out, ""
}
