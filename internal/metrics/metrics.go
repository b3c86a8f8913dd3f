// Package metrics exposes Prometheus collectors for probes, transitions and
// notification deliveries.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	promProbes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uptimealert_probes_total",
			Help: "Total probes by classified result",
		},
		[]string{"result"},
	)
	promProbeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "uptimealert_probe_duration_seconds",
			Help:    "Latency of probe requests",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		},
	)
	promTargetUp = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "uptimealert_target_up",
			Help: "1 when the target is believed to be up, 0 otherwise",
		},
	)
	promTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uptimealert_transitions_total",
			Help: "Total availability transitions by new state",
		},
		[]string{"to"},
	)
	promNotifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uptimealert_notifications_total",
			Help: "Total notification sends by channel and result",
		},
		[]string{"channel", "result"},
	)
)

func init() {
	prometheus.MustRegister(
		promProbes,
		promProbeDuration,
		promTargetUp,
		promTransitions,
		promNotifications,
	)
	// optimistic start
	promTargetUp.Set(1)
}

// ObserveProbe records a probe classified as up or down.
func ObserveProbe(up bool, latency time.Duration) {
	promProbes.WithLabelValues(result(up, "up", "down")).Inc()
	promProbeDuration.Observe(latency.Seconds())
}

// SetTargetUp mirrors the monitor's current belief.
func SetTargetUp(up bool) {
	if up {
		promTargetUp.Set(1)
		return
	}
	promTargetUp.Set(0)
}

// IncTransition counts a transition into the given state name.
func IncTransition(to string) {
	promTransitions.WithLabelValues(to).Inc()
}

// IncNotification counts one channel send attempt.
func IncNotification(channel string, ok bool) {
	promNotifications.WithLabelValues(channel, result(ok, "success", "failure")).Inc()
}

// PromHandler serves the default registry.
func PromHandler() http.Handler {
	return promhttp.Handler()
}

func result(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}
