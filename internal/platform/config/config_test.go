package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		cfg, err := FromEnv()
		require.NoError(t, err)

		assert.Equal(t, ":8080", cfg.Addr)
		assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
		assert.Equal(t, "smtp.gmail.com", cfg.SMTPHost)
		assert.Equal(t, 587, cfg.SMTPPort)
		assert.Equal(t, "submissions.csv", cfg.SubmissionsCSV)
		assert.False(t, cfg.MailConfigured())
	})

	t.Run("reads overrides from environment", func(t *testing.T) {
		t.Setenv("ADDR", ":9090")
		t.Setenv("SESSION_TTL", "5m")
		t.Setenv("MAIL_USER", "sender@example.com")
		t.Setenv("MAIL_PASS", "app-password")
		t.Setenv("SUBMISSIONS_CSV", "/tmp/rows.csv")

		cfg, err := FromEnv()
		require.NoError(t, err)

		assert.Equal(t, ":9090", cfg.Addr)
		assert.Equal(t, 5*time.Minute, cfg.SessionTTL)
		assert.Equal(t, "/tmp/rows.csv", cfg.SubmissionsCSV)
		assert.True(t, cfg.MailConfigured())
	})

	t.Run("mail requires both user and pass", func(t *testing.T) {
		t.Setenv("MAIL_USER", "sender@example.com")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.False(t, cfg.MailConfigured())
	})

	t.Run("rejects malformed durations", func(t *testing.T) {
		t.Setenv("SESSION_TTL", "not-a-duration")

		_, err := FromEnv()
		assert.Error(t, err)
	})
}
