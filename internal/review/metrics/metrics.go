package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts review workflow activity.
type Metrics struct {
	Transitions          *prometheus.CounterVec
	NotificationFailures prometheus.Counter
}

// New creates and registers the review metrics.
func New() *Metrics {
	return &Metrics{
		Transitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "balangay_review_transitions_total",
			Help: "Completed status transitions by action.",
		}, []string{"action"}),
		NotificationFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "balangay_review_notification_failures_total",
			Help: "Notification sends that failed after a committed transition.",
		}),
	}
}

// IncTransition records one committed transition.
func (m *Metrics) IncTransition(action string) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(action).Inc()
}

// IncNotificationFailure records one failed best-effort notification.
func (m *Metrics) IncNotificationFailure() {
	if m == nil {
		return
	}
	m.NotificationFailures.Inc()
}
