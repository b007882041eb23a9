// Package notify sends outbound mail. All customer-facing notifications
// are a courtesy: the Dispatcher fires them detached from the request and
// discards delivery errors, per the declared error-discard policy.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPMailer delivers through a plain SMTP relay.
type SMTPMailer struct {
	Addr string // host:port
	From string
}

func (m *SMTPMailer) Send(_ context.Context, to, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + m.From,
		"To: " + to,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")
	if err := smtp.SendMail(m.Addr, nil, m.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// LogMailer writes the mail to the log instead of delivering it. Default
// in development.
type LogMailer struct {
	Log *slog.Logger
}

func (m *LogMailer) Send(_ context.Context, to, subject, _ string) error {
	m.Log.Info("mail (not delivered)",
		slog.String("to", to),
		slog.String("subject", subject),
	)
	return nil
}
