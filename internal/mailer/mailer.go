// Package mailer delivers confirmation codes. Delivery is best-effort:
// callers fire it from a goroutine and sign-up never waits on it.
package mailer

import (
	"fmt"
	"log/slog"

	gomail "github.com/wneessen/go-mail"

	"reviewhub/internal/config"
)

type Mailer interface {
	SendConfirmationCode(to, code string) error
}

type smtpMailer struct {
	client  *gomail.Client
	from    string
	subject string
	log     *slog.Logger
}

// NewSMTPMailer builds a Mailer over the configured SMTP relay.
func NewSMTPMailer(cfg *config.Config, log *slog.Logger) (Mailer, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.SMTPPort),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.SMTPUsername),
		gomail.WithPassword(cfg.SMTPPassword),
	}

	client, err := gomail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}

	return &smtpMailer{
		client:  client,
		from:    cfg.MailFrom,
		subject: cfg.MailSubject,
		log:     log,
	}, nil
}

func (m *smtpMailer) SendConfirmationCode(to, code string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(m.subject)
	msg.SetBodyString(gomail.TypeTextPlain, code)

	if err := m.client.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	m.log.Info("confirmation code sent", "to", to)
	return nil
}

// LogMailer is used in development when no SMTP relay is configured.
type LogMailer struct {
	Log *slog.Logger
}

func (m *LogMailer) SendConfirmationCode(to, code string) error {
	m.Log.Info("mail disabled, confirmation code not sent", "to", to, "code", code)
	return nil
}
