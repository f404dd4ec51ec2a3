// Package service orchestrates the collect → preview → finalize workflow.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Malar-R/friendly-octo-memory/internal/intake/models"
	"github.com/Malar-R/friendly-octo-memory/internal/intake/validate"
	"github.com/Malar-R/friendly-octo-memory/internal/platform/metrics"
	dErrors "github.com/Malar-R/friendly-octo-memory/pkg/domain-errors"
	"github.com/Malar-R/friendly-octo-memory/pkg/secrets"
)

// User-facing messages for recoverable session failures. Token mismatch and
// missing session deliberately share one message so the response does not
// reveal which occurred.
const (
	MsgInvalidSession = "Invalid session. Please try again."
	MsgSessionExpired = "Session expired. Please re-enter your details."
)

// SessionStore is the per-browser-session state store.
type SessionStore interface {
	Create(ctx context.Context, state *models.SessionState) error
	Find(ctx context.Context, id uuid.UUID) (*models.SessionState, error)
	Save(ctx context.Context, state *models.SessionState) error
}

// Archiver appends finalized submissions durably. A failure here is fatal to
// the request.
type Archiver interface {
	Append(ctx context.Context, rec *models.Submission, at time.Time) error
}

// Notifier delivers the submission to the owner. Failures are tolerated.
type Notifier interface {
	Send(ctx context.Context, rec *models.Submission, at time.Time) error
}

// Service is the workflow controller. All state transitions require the
// caller to present the csrf token currently held by the session; every
// render mints a fresh one, making tokens single-use.
type Service struct {
	sessions   SessionStore
	archive    Archiver
	notifier   Notifier
	metrics    *metrics.Metrics
	logger     *slog.Logger
	tracer     trace.Tracer
	sessionTTL time.Duration
	now        func() time.Time
}

func New(sessions SessionStore, archive Archiver, notifier Notifier, m *metrics.Metrics, logger *slog.Logger, sessionTTL time.Duration) *Service {
	return &Service{
		sessions:   sessions,
		archive:    archive,
		notifier:   notifier,
		metrics:    m,
		logger:     logger,
		tracer:     otel.Tracer("intake"),
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
}

// Draft returns the session state for rendering the collection form,
// creating a fresh session when sid is unknown or expired. A new csrf token
// is minted for the upcoming render.
func (s *Service) Draft(ctx context.Context, sid uuid.UUID) (*models.SessionState, error) {
	if sid != uuid.Nil {
		state, err := s.sessions.Find(ctx, sid)
		if err == nil {
			if err := s.remint(ctx, state); err != nil {
				return nil, err
			}
			return state, nil
		}
	}

	now := s.now()
	token, err := secrets.Generate()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not mint csrf token")
	}
	state := &models.SessionState{
		ID:        uuid.New(),
		CSRFToken: token,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, state); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not create session")
	}
	return state, nil
}

// Preview validates raw fields against the session's csrf token. On
// acceptance the normalized record is parked in the session for
// confirmation; on rejection the raw fields are parked for re-editing and
// the first violated rule is returned. Either way the presented token is
// consumed.
func (s *Service) Preview(ctx context.Context, sid uuid.UUID, token string, raw models.RawFields, honeypot string) (*models.SessionState, error) {
	ctx, span := s.tracer.Start(ctx, "intake.preview")
	var outcome error
	defer func() { endSpan(span, outcome) }()

	state, err := s.checkSession(ctx, sid, token)
	if err != nil {
		outcome = err
		return nil, err
	}

	sub, err := validate.Payload(raw, honeypot)
	if err != nil {
		var verr *validate.Error
		if errors.As(err, &verr) {
			s.metrics.ValidationFailures.WithLabelValues(verr.Field).Inc()
			span.SetAttributes(attribute.String("intake.rejected_field", verr.Field))
		}
		state.Echo = &raw
		if remintErr := s.remint(ctx, state); remintErr != nil {
			outcome = remintErr
			return nil, remintErr
		}
		outcome = dErrors.Wrap(err, dErrors.CodeValidation, err.Error())
		return nil, outcome
	}

	state.Pending = sub
	state.Echo = nil
	if err := s.remint(ctx, state); err != nil {
		outcome = err
		return nil, err
	}
	return state, nil
}

// Confirm finalizes the pending record: append to the archive first, then
// notify. A failed append aborts with an internal error; a failed
// notification is logged and counted but never surfaced. The pending record
// is cleared only after a successful append.
func (s *Service) Confirm(ctx context.Context, sid uuid.UUID, token string) (*models.Submission, error) {
	ctx, span := s.tracer.Start(ctx, "intake.confirm")
	var outcome error
	defer func() { endSpan(span, outcome) }()

	state, err := s.checkSession(ctx, sid, token)
	if err != nil {
		outcome = err
		return nil, err
	}

	if state.Pending == nil {
		s.metrics.SessionRejections.Inc()
		outcome = dErrors.New(dErrors.CodeSessionExpired, MsgSessionExpired)
		return nil, outcome
	}
	rec := state.Pending

	at := s.now()
	if err := s.archive.Append(ctx, rec, at); err != nil {
		outcome = dErrors.Wrap(err, dErrors.CodeInternal, "could not record submission")
		return nil, outcome
	}

	if err := s.notifier.Send(ctx, rec, at); err != nil {
		s.metrics.NotificationFailures.Inc()
		s.logger.WarnContext(ctx, "notification delivery failed", "error", err)
	} else {
		s.metrics.NotificationsSent.Inc()
	}

	state.Pending = nil
	state.Echo = nil
	if err := s.remint(ctx, state); err != nil {
		outcome = err
		return nil, err
	}

	s.metrics.SubmissionsCompleted.Inc()
	s.logger.InfoContext(ctx, "submission finalized",
		"department", rec.Department,
	)
	return rec, nil
}

// Edit returns the user to the collection form. The pending record is kept
// so the form can re-display it; only the token is consumed.
func (s *Service) Edit(ctx context.Context, sid uuid.UUID, token string) error {
	state, err := s.checkSession(ctx, sid, token)
	if err != nil {
		return err
	}
	return s.remint(ctx, state)
}

// checkSession resolves the session and enforces the exact-match csrf rule.
// Both a missing session and a stale token map to the same recoverable
// invalid-session error.
func (s *Service) checkSession(ctx context.Context, sid uuid.UUID, token string) (*models.SessionState, error) {
	if sid == uuid.Nil {
		s.metrics.SessionRejections.Inc()
		return nil, dErrors.New(dErrors.CodeInvalidSession, MsgInvalidSession)
	}
	state, err := s.sessions.Find(ctx, sid)
	if err != nil {
		s.metrics.SessionRejections.Inc()
		return nil, dErrors.New(dErrors.CodeInvalidSession, MsgInvalidSession)
	}
	if token == "" || state.CSRFToken != token {
		s.metrics.SessionRejections.Inc()
		return nil, dErrors.New(dErrors.CodeInvalidSession, MsgInvalidSession)
	}
	return state, nil
}

// remint replaces the session's csrf token before the next render.
func (s *Service) remint(ctx context.Context, state *models.SessionState) error {
	token, err := secrets.Generate()
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "could not mint csrf token")
	}
	state.CSRFToken = token
	if err := s.sessions.Save(ctx, state); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "could not save session")
	}
	return nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
