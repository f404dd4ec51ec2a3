package notify

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Malar-R/friendly-octo-memory/internal/intake/models"
	"github.com/Malar-R/friendly-octo-memory/internal/sentinel"
)

func testRecord() *models.Submission {
	return &models.Submission{
		Name:       "Ann O'Brien-Lee",
		Department: "CSE",
		Email:      "ann@example.com",
		Phone:      "1234567890",
		Interest:   "Web Development",
		ShortGoal:  "Ship a side project",
		LongGoal:   "Lead a platform team",
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSendDisabledWithoutCredentials(t *testing.T) {
	m := NewMailer(Config{Host: "smtp.example.com", Port: 587, To: "owner@example.com"}, discardLogger())

	assert.False(t, m.Enabled())

	err := m.Send(context.Background(), testRecord(), time.Now())
	assert.ErrorIs(t, err, ErrDisabled)
	assert.ErrorIs(t, err, sentinel.ErrUnavailable)
}

func TestEnabledRequiresBothCredentials(t *testing.T) {
	m := NewMailer(Config{Username: "sender@example.com"}, discardLogger())
	assert.False(t, m.Enabled())

	m = NewMailer(Config{Username: "sender@example.com", Password: "app-password"}, discardLogger())
	assert.True(t, m.Enabled())
}

func TestSubject(t *testing.T) {
	assert.Equal(t,
		"New Student Submission • Ann O'Brien-Lee (CSE)",
		subject(testRecord()),
	)
}

func TestBodyListsAllFields(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 30, 0, 0, time.Local)
	got := body(testRecord(), at)

	assert.Contains(t, got, "Name: Ann O'Brien-Lee")
	assert.Contains(t, got, "Department: CSE")
	assert.Contains(t, got, "Email: ann@example.com")
	assert.Contains(t, got, "Phone: 1234567890")
	assert.Contains(t, got, "Area of Interest: Web Development")
	assert.Contains(t, got, "Short-Term Goal: Ship a side project")
	assert.Contains(t, got, "Long-Term Goal: Lead a platform team")
	assert.Contains(t, got, "Submitted at: 2026-03-01 10:30:00")
}
