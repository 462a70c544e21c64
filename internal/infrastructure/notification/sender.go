package notification

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/retailorders/backend/internal/infrastructure/config"
)

// EmailSender delivers a plain-text email to one or more recipients
type EmailSender interface {
	Send(ctx context.Context, to []string, subject, body string) error
}

// SMTPSender implements EmailSender over SMTP with plain auth
type SMTPSender struct {
	addr string
	auth smtp.Auth
	from string
}

// NewSMTPSender creates a new SMTPSender from SMTP settings
func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return &SMTPSender{
		addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		auth: auth,
		from: cfg.From,
	}
}

// Send delivers the message. Blocking; callers run it from event handlers
// off the request path.
func (s *SMTPSender) Send(_ context.Context, to []string, subject, body string) error {
	if len(to) == 0 {
		return nil
	}

	msg := strings.Join([]string{
		"From: " + s.from,
		"To: " + strings.Join(to, ", "),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="utf-8"`,
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(s.addr, s.auth, s.from, to, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// LogSender writes emails to the log instead of delivering them. Used in
// development when no SMTP host is configured.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender creates a new LogSender
func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send logs the message
func (s *LogSender) Send(_ context.Context, to []string, subject, body string) error {
	s.logger.Info("email (log delivery)",
		zap.Strings("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}

// NewSenderFromConfig returns an SMTP sender when a host is configured and
// a log-backed sender otherwise
func NewSenderFromConfig(cfg config.SMTPConfig, logger *zap.Logger) EmailSender {
	if cfg.Host == "" {
		return NewLogSender(logger)
	}
	return NewSMTPSender(cfg)
}

// Ensure implementations satisfy EmailSender
var (
	_ EmailSender = (*SMTPSender)(nil)
	_ EmailSender = (*LogSender)(nil)
)
