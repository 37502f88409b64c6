// Package metrics exposes prometheus counters for the profile vertical.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Submissions    prometheus.Counter
	ParseFallbacks *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		Submissions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "balangay_profile_submissions_total",
			Help: "Profile submissions and resubmissions accepted.",
		}),
		ParseFallbacks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "balangay_profile_parse_fallbacks_total",
			Help: "Stored profile sections that failed to parse and were degraded to fallbacks.",
		}, []string{"section"}),
	}
}

// IncSubmission is nil-safe so tests can run without a registry.
func (m *Metrics) IncSubmission() {
	if m == nil {
		return
	}
	m.Submissions.Inc()
}

func (m *Metrics) IncParseFallback(section string) {
	if m == nil {
		return
	}
	m.ParseFallbacks.WithLabelValues(section).Inc()
}
