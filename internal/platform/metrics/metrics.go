package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	SubmissionsCompleted prometheus.Counter
	ValidationFailures   *prometheus.CounterVec
	SessionRejections    prometheus.Counter
	NotificationsSent    prometheus.Counter
	NotificationFailures prometheus.Counter
	EndpointLatency      *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics against the given
// registerer. Tests pass a fresh registry to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SubmissionsCompleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "intake_submissions_completed_total",
			Help: "Total number of finalized student submissions",
		}),
		ValidationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "intake_validation_failures_total",
			Help: "Total number of rejected submissions, labeled by failing field",
		}, []string{"field"}),
		SessionRejections: factory.NewCounter(prometheus.CounterOpts{
			Name: "intake_session_rejections_total",
			Help: "Total number of requests rejected for a missing session or stale token",
		}),
		NotificationsSent: factory.NewCounter(prometheus.CounterOpts{
			Name: "intake_notifications_sent_total",
			Help: "Total number of notification emails delivered",
		}),
		NotificationFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "intake_notification_failures_total",
			Help: "Total number of notification emails that could not be delivered",
		}),
		EndpointLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "intake_endpoint_latency_seconds",
			Help:    "Latency of endpoints in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
}
