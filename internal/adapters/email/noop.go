package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// NoopSender logs sends without delivering them. Used when no provider key is configured.
type NoopSender struct{}

// NewNoopSender creates a new NoopSender.
func NewNoopSender() *NoopSender {
	return &NoopSender{}
}

// Send logs the email but does not deliver it.
// PRE: req is a valid SendRequest
// POST: Returns a noop result without actual delivery
func (s *NoopSender) Send(_ context.Context, req SendRequest) (SendResult, error) {
	if len(req.To) == 0 {
		return SendResult{}, ErrNoRecipients
	}
	slog.Info("noop_email_send", "to", req.To, "subject", req.Subject, "attachments", len(req.Attachments))
	return SendResult{
		MessageID: fmt.Sprintf("noop-%d", time.Now().UnixNano()),
		SentAt:    time.Now(),
	}, nil
}

// NewSender picks a provider: Resend when resendKey is set, then SendGrid,
// otherwise the no-op sender.
func NewSender(resendKey, sendgridKey, from string) Sender {
	switch {
	case resendKey != "":
		return NewResendSender(resendKey, from)
	case sendgridKey != "":
		return NewSendGridSender(sendgridKey, from)
	}
	slog.Warn("email_disabled", "reason", "no provider key configured")
	return NewNoopSender()
}
