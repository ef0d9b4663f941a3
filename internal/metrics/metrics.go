package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const (
	// OutcomeSuccess labels subscriptions analyzed without error.
	OutcomeSuccess = "success"
	// OutcomeError labels subscriptions whose analysis failed.
	OutcomeError = "error"
)

var (
	subscriptionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "az_alert_analysis",
			Name:      "subscriptions_total",
			Help:      "Total number of subscription directories analyzed, partitioned by outcome.",
		},
		[]string{"outcome"},
	)

	recordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "az_alert_analysis",
			Name:      "records_total",
			Help:      "Total number of alert records normalized, partitioned by source.",
		},
		[]string{"source"},
	)

	detectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "az_alert_analysis",
			Name:      "detections_total",
			Help:      "Total detections emitted, partitioned by kind (storm, correlation, tuning).",
		},
		[]string{"kind"},
	)

	analysisDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "az_alert_analysis",
			Name:      "analysis_seconds",
			Help:      "Per-subscription analysis latency in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 10},
		},
	)
)

// Register attaches the analyzer collectors to the supplied Prometheus registerer.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		subscriptionsTotal,
		recordsTotal,
		detectionsTotal,
		analysisDurationSeconds,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

// ObserveSubscription records a subscription analysis duration and outcome label.
func ObserveSubscription(duration time.Duration, outcome string) {
	label := outcome
	if label != OutcomeError {
		label = OutcomeSuccess
	}
	subscriptionsTotal.WithLabelValues(label).Inc()
	if duration < 0 {
		duration = 0
	}
	analysisDurationSeconds.Observe(duration.Seconds())
}

// CountRecords adds normalized record counts for one source.
func CountRecords(source string, n int) {
	if n > 0 {
		recordsTotal.WithLabelValues(source).Add(float64(n))
	}
}

// CountDetections adds detection counts for one detector kind.
func CountDetections(kind string, n int) {
	if n > 0 {
		detectionsTotal.WithLabelValues(kind).Add(float64(n))
	}
}

// Push sends the gathered metrics to a Pushgateway after a batch run. A blank
// URL disables the push.
func Push(url, job string, gatherer prometheus.Gatherer) error {
	if url == "" {
		return nil
	}
	return push.New(url, job).Gatherer(gatherer).Push()
}
