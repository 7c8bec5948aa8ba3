package notification

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"medibook/config"
)

// SMTPMailer sends mail through the configured SMTP relay, the same way the
// platform's transactional mail has always gone out.
type SMTPMailer struct {
	Host     string
	Port     string
	Username string
	Password string
}

// NewSMTPMailer builds a mailer from the loaded configuration.
func NewSMTPMailer() *SMTPMailer {
	return &SMTPMailer{
		Host:     config.AppConfig.SMTPHost,
		Port:     config.AppConfig.SMTPPort,
		Username: config.AppConfig.EmailUsername,
		Password: config.AppConfig.EmailPassword,
	}
}

// Send delivers one email. The context is accepted for interface symmetry;
// net/smtp dials with its own timeouts.
func (m *SMTPMailer) Send(_ context.Context, to, subject, body string) error {
	if m.Host == "" || m.Username == "" {
		return fmt.Errorf("smtp mailer is not configured")
	}

	addr := m.Host + ":" + m.Port
	auth := smtp.PlainAuth("", m.Username, m.Password, m.Host)

	msg := strings.Join([]string{
		"From: " + m.Username,
		"To: " + to,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(addr, auth, m.Username, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
