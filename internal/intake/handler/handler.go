package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Malar-R/friendly-octo-memory/internal/intake/device"
	"github.com/Malar-R/friendly-octo-memory/internal/intake/models"
	"github.com/Malar-R/friendly-octo-memory/internal/intake/sessiontoken"
	"github.com/Malar-R/friendly-octo-memory/internal/intake/validate"
	"github.com/Malar-R/friendly-octo-memory/internal/intake/web"
	"github.com/Malar-R/friendly-octo-memory/internal/platform/middleware"
	"github.com/Malar-R/friendly-octo-memory/internal/platform/web/flash"
	"github.com/Malar-R/friendly-octo-memory/internal/platform/web/sessioncookie"
	dErrors "github.com/Malar-R/friendly-octo-memory/pkg/domain-errors"
)

// Service defines the workflow operations behind the intake endpoints.
type Service interface {
	Draft(ctx context.Context, sid uuid.UUID) (*models.SessionState, error)
	Preview(ctx context.Context, sid uuid.UUID, token string, raw models.RawFields, honeypot string) (*models.SessionState, error)
	Confirm(ctx context.Context, sid uuid.UUID, token string) (*models.Submission, error)
	Edit(ctx context.Context, sid uuid.UUID, token string) error
}

// Handler is the thin HTTP layer over the intake workflow. It owns cookies,
// redirects, and rendering; every state decision lives in the service.
type Handler struct {
	intake   Service
	tokens   *sessiontoken.Service
	renderer *web.Renderer
	devices  *device.Service
	logger   *slog.Logger
}

// New creates the intake Handler with the given service and collaborators.
func New(intake Service, tokens *sessiontoken.Service, renderer *web.Renderer, devices *device.Service, logger *slog.Logger) *Handler {
	return &Handler{
		intake:   intake,
		tokens:   tokens,
		renderer: renderer,
		devices:  devices,
		logger:   logger,
	}
}

// Register registers the intake routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.HandleIndex)
	r.Post("/preview", h.HandlePreview)
	r.Post("/submit", h.HandleSubmit)
}

// HandleIndex renders the collection form with a freshly minted csrf token,
// seeding it with any draft the session still holds.
func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sid := h.sessionID(r)
	state, err := h.intake.Draft(ctx, sid)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	if state.ID != sid {
		signed, err := h.tokens.Issue(state.ID)
		if err != nil {
			h.serverError(w, r, err)
			return
		}
		sessioncookie.Write(w, r, signed)
	}

	msg, _ := flash.ReadAndClear(w, r)
	page := web.FormPage{
		Title:       "Eco Student Form",
		Heading:     "Student Details Collection",
		Flash:       msg,
		CSRFToken:   state.CSRFToken,
		Data:        formData(state),
		Departments: models.Departments(),
	}
	if err := h.renderer.Form(w, page); err != nil {
		h.logger.ErrorContext(ctx, "failed to render form",
			"error", err,
			"request_id", middleware.GetRequestID(ctx),
		)
	}
}

// HandlePreview validates the posted fields and renders the read-only
// confirmation view. Rejections and session failures redirect back to the
// form with a flash message.
func (h *Handler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	raw := models.RawFields{
		Name:       r.PostFormValue("name"),
		Department: r.PostFormValue("department"),
		Email:      r.PostFormValue("email"),
		Phone:      r.PostFormValue("phone"),
		Interest:   r.PostFormValue("interest"),
		ShortGoal:  r.PostFormValue("short_goal"),
		LongGoal:   r.PostFormValue("long_goal"),
	}

	sid := h.sessionID(r)
	state, err := h.intake.Preview(ctx, sid, r.PostFormValue("csrf_token"), raw, r.PostFormValue(validate.HoneypotField))
	if err != nil {
		var verr *validate.Error
		if errors.As(err, &verr) && verr.Field == validate.HoneypotField {
			h.logger.WarnContext(ctx, "honeypot tripped",
				"fingerprint", h.devices.ComputeFingerprint(r.UserAgent()),
				"request_id", middleware.GetRequestID(ctx),
			)
		}
		h.recoverable(w, r, err)
		return
	}

	page := web.PreviewPage{
		Title:     "Preview Details",
		Heading:   "Please confirm your details",
		CSRFToken: state.CSRFToken,
		Data:      *state.Pending,
	}
	if err := h.renderer.Preview(w, page); err != nil {
		h.logger.ErrorContext(ctx, "failed to render preview",
			"error", err,
			"request_id", middleware.GetRequestID(ctx),
		)
	}
}

// HandleSubmit finalizes or abandons the previewed record depending on the
// action button pressed.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	sid := h.sessionID(r)
	token := r.PostFormValue("csrf_token")

	if r.PostFormValue("action") == "edit" {
		if err := h.intake.Edit(ctx, sid, token); err != nil {
			h.recoverable(w, r, err)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	rec, err := h.intake.Confirm(ctx, sid, token)
	if err != nil {
		h.recoverable(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "submission confirmed",
		"department", rec.Department,
		"fingerprint", h.devices.ComputeFingerprint(r.UserAgent()),
		"request_id", middleware.GetRequestID(ctx),
	)

	page := web.SuccessPage{
		Title:   "Submission Success",
		Heading: "All set!",
	}
	if err := h.renderer.Success(w, page); err != nil {
		h.logger.ErrorContext(ctx, "failed to render success",
			"error", err,
			"request_id", middleware.GetRequestID(ctx),
		)
	}
}

// sessionID resolves the signed session cookie to a session ID. Any invalid
// cookie is treated the same as no cookie at all.
func (h *Handler) sessionID(r *http.Request) uuid.UUID {
	raw, ok := sessioncookie.Read(r)
	if !ok {
		return uuid.Nil
	}
	sid, err := h.tokens.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return sid
}

// recoverable translates domain errors into user-facing flow: validation and
// session failures become a flash message and a redirect back to the form;
// anything else is a server error.
func (h *Handler) recoverable(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case dErrors.HasCode(err, dErrors.CodeValidation),
		dErrors.HasCode(err, dErrors.CodeInvalidSession),
		dErrors.HasCode(err, dErrors.CodeSessionExpired):
		flash.Write(w, r, err.Error())
		http.Redirect(w, r, "/", http.StatusSeeOther)
	default:
		h.serverError(w, r, err)
	}
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.ErrorContext(r.Context(), "request failed",
		"error", err,
		"path", r.URL.Path,
		"request_id", middleware.GetRequestID(r.Context()),
	)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// formData picks what the form should re-display: rejected raw input first,
// then any validated draft awaiting confirmation.
func formData(state *models.SessionState) models.RawFields {
	if state.Echo != nil {
		return *state.Echo
	}
	if state.Pending != nil {
		return state.Pending.Raw()
	}
	return models.RawFields{}
}
