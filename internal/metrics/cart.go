package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

var (
	cartSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_submissions_total",
			Help: "Checkout submissions by workflow and outcome.",
		},
		[]string{"workflow", "result"},
	)

	cartSubmissionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cart_submission_duration_seconds",
			Help:    "Time spent running a checkout submission.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"workflow"},
	)

	cartPersistenceOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_persistence_operations_total",
			Help: "Cart storage operations by kind and outcome.",
		},
		[]string{"op", "result"},
	)

	cartActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cart_active_sessions",
			Help: "Number of cart sessions held in memory.",
		},
	)
)

// ObserveSubmission records one checkout attempt. result is the submission
// error type, or ResultSuccess.
func ObserveSubmission(workflow, result string, elapsed time.Duration) {
	cartSubmissionsTotal.WithLabelValues(workflow, result).Inc()
	cartSubmissionDuration.WithLabelValues(workflow).Observe(elapsed.Seconds())
}

func ObservePersistence(op, result string) {
	cartPersistenceOperations.WithLabelValues(op, result).Inc()
}

func SessionOpened() {
	cartActiveSessions.Inc()
}

func SessionClosed() {
	cartActiveSessions.Dec()
}
