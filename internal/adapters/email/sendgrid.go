package email

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	netmail "net/mail"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridSender sends emails via the SendGrid v3 API.
type SendGridSender struct {
	client *sendgrid.Client
	from   string
}

// NewSendGridSender creates a sender for the given API key and default from address.
// PRE: apiKey is a valid SendGrid API key
// POST: Returns a ready-to-use sender
func NewSendGridSender(apiKey, from string) *SendGridSender {
	return &SendGridSender{
		client: sendgrid.NewSendClient(apiKey),
		from:   from,
	}
}

// Send sends a single email via SendGrid.
// PRE: req has at least one recipient and a subject
// POST: Email is accepted by SendGrid; returns the X-Message-Id header
func (s *SendGridSender) Send(ctx context.Context, req SendRequest) (SendResult, error) {
	message, err := s.buildMessage(req)
	if err != nil {
		return SendResult{}, err
	}

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		slog.Error("sendgrid_send_failed", "error", err, "to", req.To, "subject", req.Subject)
		return SendResult{}, fmt.Errorf("sendgrid send failed: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		slog.Error("sendgrid_send_rejected", "status", response.StatusCode, "body", response.Body, "to", req.To)
		return SendResult{}, fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}

	var messageID string
	if ids := response.Headers["X-Message-Id"]; len(ids) > 0 {
		messageID = ids[0]
	}
	slog.Info("sendgrid_sent", "message_id", messageID, "to", req.To, "subject", req.Subject)
	return SendResult{MessageID: messageID, SentAt: time.Now()}, nil
}

func (s *SendGridSender) buildMessage(req SendRequest) (*mail.SGMailV3, error) {
	if len(req.To) == 0 {
		return nil, ErrNoRecipients
	}
	fromRaw := req.From
	if fromRaw == "" {
		fromRaw = s.from
	}
	from, err := parseAddress(fromRaw)
	if err != nil {
		return nil, fmt.Errorf("invalid from address: %w", err)
	}

	message := mail.NewV3Mail()
	message.SetFrom(from)
	message.Subject = req.Subject
	message.AddContent(mail.NewContent("text/html", req.HTML))

	p := mail.NewPersonalization()
	for _, to := range req.To {
		addr, err := parseAddress(to)
		if err != nil {
			return nil, fmt.Errorf("invalid recipient %q: %w", to, err)
		}
		p.AddTos(addr)
	}
	message.AddPersonalizations(p)

	if req.ReplyTo != "" {
		replyTo, err := parseAddress(req.ReplyTo)
		if err != nil {
			return nil, fmt.Errorf("invalid reply-to: %w", err)
		}
		message.SetReplyTo(replyTo)
	}

	for _, a := range req.Attachments {
		att := mail.NewAttachment()
		att.SetContent(base64.StdEncoding.EncodeToString(a.Content))
		att.SetType(a.ContentType)
		att.SetFilename(a.Filename)
		att.SetDisposition("attachment")
		message.AddAttachment(att)
	}
	return message, nil
}

func parseAddress(raw string) (*mail.Email, error) {
	addr, err := netmail.ParseAddress(raw)
	if err != nil {
		return nil, err
	}
	return mail.NewEmail(addr.Name, addr.Address), nil
}
