package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config captures all process configuration. It is parsed once at startup
// and passed by reference; business logic never reads the environment.
type Config struct {
	Addr string `env:"ADDR" envDefault:":8080"`

	// SessionSecret signs the session cookie. The default exists for local
	// development and must be overridden in production.
	SessionSecret string        `env:"SESSION_SECRET" envDefault:"dev-secret-key-change-in-production"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"30m"`

	// Notification transport. Leaving MailUser/MailPass unset disables
	// outbound mail; submissions still succeed.
	SMTPHost    string        `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort    int           `env:"SMTP_PORT" envDefault:"587"`
	MailUser    string        `env:"MAIL_USER"`
	MailPass    string        `env:"MAIL_PASS"`
	MailTimeout time.Duration `env:"MAIL_TIMEOUT" envDefault:"20s"`
	OwnerEmail  string        `env:"OWNER_EMAIL" envDefault:"suryasingam49@gmail.com"`

	SubmissionsCSV string `env:"SUBMISSIONS_CSV" envDefault:"submissions.csv"`
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// MailConfigured reports whether outbound notifications can be attempted.
func (c Config) MailConfigured() bool {
	return c.MailUser != "" && c.MailPass != ""
}
