package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/Malar-R/friendly-octo-memory/internal/intake/archive"
	"github.com/Malar-R/friendly-octo-memory/internal/intake/device"
	"github.com/Malar-R/friendly-octo-memory/internal/intake/handler"
	"github.com/Malar-R/friendly-octo-memory/internal/intake/notify"
	"github.com/Malar-R/friendly-octo-memory/internal/intake/service"
	"github.com/Malar-R/friendly-octo-memory/internal/intake/sessiontoken"
	"github.com/Malar-R/friendly-octo-memory/internal/intake/store/session"
	"github.com/Malar-R/friendly-octo-memory/internal/intake/web"
	"github.com/Malar-R/friendly-octo-memory/internal/platform/config"
	"github.com/Malar-R/friendly-octo-memory/internal/platform/logger"
	"github.com/Malar-R/friendly-octo-memory/internal/platform/metrics"
	"github.com/Malar-R/friendly-octo-memory/internal/platform/middleware"
)

const (
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
	sweepInterval   = 10 * time.Minute
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Workflow logic lives in internal/intake packages.
func main() {
	cfg, err := config.FromEnv()
	log := logger.New()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	log.Info("initializing student intake",
		"addr", cfg.Addr,
		"csv_path", cfg.SubmissionsCSV,
		"mail_configured", cfg.MailConfigured(),
	)

	m := metrics.New(prometheus.DefaultRegisterer)
	sessions := session.NewInMemoryStore()
	tokens := sessiontoken.New(cfg.SessionSecret, cfg.SessionTTL)

	mailer := notify.NewMailer(notify.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.MailUser,
		Password: cfg.MailPass,
		To:       cfg.OwnerEmail,
		Timeout:  cfg.MailTimeout,
	}, log)
	if !mailer.Enabled() {
		log.Warn("mail credentials missing, notifications disabled")
	}

	svc := service.New(
		sessions,
		archive.NewCSV(cfg.SubmissionsCSV),
		mailer,
		m,
		log,
		cfg.SessionTTL,
	)
	h := handler.New(svc, tokens, web.NewRenderer(), device.NewService(true), log)

	router := chi.NewRouter()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(log))
	router.Use(middleware.Timeout(requestTimeout))
	router.Use(middleware.Latency(m))

	h.Register(router)
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if n := sessions.Sweep(ctx); n > 0 {
					log.Info("swept expired sessions", "count", n)
				}
			}
		}
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down server gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
