package mailer

import (
	"fmt"

	"github.com/wanderpost/wanderpost/internal/config"
	"gopkg.in/gomail.v2"
)

// Mailer delivers rendered pages as multipart/alternative HTML mail over an
// implicit-TLS SMTP connection to a single fixed relay and sender identity.
type Mailer struct {
	dialer *gomail.Dialer
	sender string
}

// New creates a mailer from the configured relay and sender credentials
func New(cfg *config.Config) *Mailer {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SenderEmail, cfg.SenderPassword)
	dialer.SSL = true

	return &Mailer{
		dialer: dialer,
		sender: cfg.SenderEmail,
	}
}

// Send delivers one HTML message. No retries, no delivery confirmation.
func (m *Mailer) Send(recipient, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", "This message contains an HTML travel page. Please view it in an HTML-capable mail client.")
	msg.AddAlternative("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", recipient, err)
	}

	return nil
}
