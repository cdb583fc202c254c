package services

import (
	"fmt"
	"net"
	"net/smtp"

	"github.com/rs/zerolog/log"

	"github.com/aakanni/portfolio-backend/config"
)

// Mailer relays contact-form submissions over SMTP.
//
// Requires environment variables:
//   - CONTACT_EMAIL: the sending account
//   - CONTACT_EMAIL_PASSWORD: its app password
//
// Optional:
//   - SMTP_HOST / SMTP_PORT (default smtp.gmail.com:587)
//   - CONTACT_RECIPIENT (defaults to CONTACT_EMAIL)
//
// When the credentials are absent the submission is logged and acknowledged
// so a dev environment works without a mail account.
type Mailer struct {
	host      string
	port      string
	username  string
	password  string
	recipient string
}

func NewMailer(c map[string]string) Mailer {
	username := config.GetString(c, "CONTACT_EMAIL", "")
	return Mailer{
		host:      config.GetString(c, "SMTP_HOST", "smtp.gmail.com"),
		port:      config.GetString(c, "SMTP_PORT", "587"),
		username:  username,
		password:  config.GetString(c, "CONTACT_EMAIL_PASSWORD", ""),
		recipient: config.GetString(c, "CONTACT_RECIPIENT", username),
	}
}

// Configured reports whether outbound mail credentials are present.
func (m Mailer) Configured() bool {
	return m.username != "" && m.password != ""
}

// SendContactMessage relays one contact-form submission.
func (m Mailer) SendContactMessage(name, email, subject, message string) error {
	if subject == "" {
		subject = "New Contact Form Submission"
	}

	if !m.Configured() {
		log.Info().
			Str("name", name).
			Str("email", email).
			Str("subject", subject).
			Msg("contact mail not configured; submission logged only")
		return nil
	}

	body := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\nName: %s\nEmail: %s\nMessage: %s\n",
		m.username, m.recipient, subject, name, email, message)

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	addr := net.JoinHostPort(m.host, m.port)
	if err := smtp.SendMail(addr, auth, m.username, []string{m.recipient}, []byte(body)); err != nil {
		return fmt.Errorf("sending contact mail: %w", err)
	}

	log.Debug().Str("recipient", m.recipient).Msg("contact mail sent")
	return nil
}
