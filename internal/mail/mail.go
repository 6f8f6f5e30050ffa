// Package mail sends reminder email over SMTP or the Resend HTTP API,
// selected by configuration.
package mail

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/smtp"

	"github.com/dmoren/tasklist/internal/config"
)

// Mailer delivers a single message. Delivery is fire-and-forget: a returned
// error is logged by the caller, never retried.
type Mailer interface {
	Send(to, subject, body string) error
}

// New picks the transport: SMTP when enabled, otherwise the Resend API.
func New(cfg config.EmailConfig) Mailer {
	if cfg.SMTPEnabled {
		return &smtpMailer{cfg: cfg}
	}
	return &resendMailer{cfg: cfg}
}

type smtpMailer struct {
	cfg config.EmailConfig
}

func (m *smtpMailer) Send(to, subject, body string) error {
	addr := m.cfg.SMTPHost + ":" + m.cfg.SMTPPort

	msg := "From: " + m.cfg.FromEmail + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" +
		body

	var auth smtp.Auth
	if m.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", m.cfg.SMTPUser, m.cfg.SMTPPass, m.cfg.SMTPHost)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.FromEmail, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

type resendMailer struct {
	cfg config.EmailConfig
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

func (m *resendMailer) Send(to, subject, body string) error {
	jsonBody, err := json.Marshal(resendRequest{
		From:    m.cfg.FromEmail,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", "https://api.resend.com/emails", bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.cfg.ResendAPIKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("resend API error: status %d", resp.StatusCode)
	}
	return nil
}
