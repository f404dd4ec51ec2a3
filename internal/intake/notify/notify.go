// Package notify delivers finalized submissions to the owner by email.
// Delivery is best-effort: every failure resolves to an error the workflow
// only logs, never one that blocks the user-visible flow.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/Malar-R/friendly-octo-memory/internal/intake/models"
	"github.com/Malar-R/friendly-octo-memory/internal/sentinel"
)

// ErrDisabled is returned when mail credentials are absent. Callers treat it
// like any other delivery failure.
var ErrDisabled = fmt.Errorf("mail credentials not configured: %w", sentinel.ErrUnavailable)

// Config carries the SMTP transport settings for the mailer.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	To       string
	Timeout  time.Duration
}

// Mailer sends one plain-text message per finalized submission.
type Mailer struct {
	cfg    Config
	logger *slog.Logger
}

func NewMailer(cfg Config, logger *slog.Logger) *Mailer {
	return &Mailer{cfg: cfg, logger: logger}
}

// Enabled reports whether sender credentials are present.
func (m *Mailer) Enabled() bool {
	return m.cfg.Username != "" && m.cfg.Password != ""
}

// Send delivers the submission notification. The transport carries its own
// timeout so a hung SMTP server resolves to an error instead of blocking the
// request indefinitely.
func (m *Mailer) Send(ctx context.Context, rec *models.Submission, at time.Time) error {
	if !m.Enabled() {
		m.logger.WarnContext(ctx, "mail credentials not set; skipping notification")
		return ErrDisabled
	}

	msg := mail.NewMsg()
	if err := msg.From(m.cfg.Username); err != nil {
		return fmt.Errorf("set mail sender: %w", err)
	}
	if err := msg.To(m.cfg.To); err != nil {
		return fmt.Errorf("set mail recipient: %w", err)
	}
	msg.Subject(subject(rec))
	msg.SetBodyString(mail.TypeTextPlain, body(rec, at))

	client, err := mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTimeout(m.cfg.Timeout),
	)
	if err != nil {
		return fmt.Errorf("build mail client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	return nil
}

func subject(rec *models.Submission) string {
	return fmt.Sprintf("New Student Submission • %s (%s)", rec.Name, rec.Department)
}

func body(rec *models.Submission, at time.Time) string {
	lines := []string{
		"A new student detail submission has been received:",
		"",
		"Name: " + rec.Name,
		"Department: " + rec.Department,
		"Email: " + rec.Email,
		"Phone: " + rec.Phone,
		"Area of Interest: " + rec.Interest,
		"Short-Term Goal: " + rec.ShortGoal,
		"Long-Term Goal: " + rec.LongGoal,
		"",
		"Submitted at: " + at.Format("2006-01-02 15:04:05"),
	}
	return strings.Join(lines, "\n")
}
