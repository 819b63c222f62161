// Package notify delivers plain-text reports to staff mailboxes.
package notify

import (
	"context"

	"fleetrent-backend/internal/config"
	"fleetrent-backend/internal/logger"
)

// Message is a plain-text email to one or more recipients.
type Message struct {
	To      []string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// NewMailer picks the provider named in cfg; an empty provider disables mail.
func NewMailer(cfg config.MailConfig) Mailer {
	switch cfg.Provider {
	case "smtp":
		return NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.From)
	case "sendgrid":
		return NewSendGridMailer(cfg.SendGridAPIKey, cfg.From, cfg.FromName)
	}
	logger.Warn("Mail provider not configured, outgoing mail is disabled")
	return noopMailer{}
}

type noopMailer struct{}

func (noopMailer) Send(ctx context.Context, msg Message) error {
	logger.DebugContext(ctx, "Dropping outgoing mail", "subject", msg.Subject, "recipients", len(msg.To))
	return nil
}
