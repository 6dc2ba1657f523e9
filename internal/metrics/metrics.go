// Package metrics exposes Prometheus instruments for risk figure generation.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "riskreport"

var (
	keyFigureValuesPersisted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generator",
			Name:      "key_figure_values_persisted_total",
			Help:      "Key figure values written to the store",
		},
		[]string{"key_figure", "write_mode"},
	)

	reportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "report",
			Name:      "runs_total",
			Help:      "Risk report runs by outcome",
		},
		[]string{"outcome"},
	)

	reportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "report",
			Name:      "duration_seconds",
			Help:      "Duration of risk report runs",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
		},
		[]string{"outcome"},
	)
)

// Outcome labels for report metrics.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// KeyFigurePersisted counts one stored key figure value.
func KeyFigurePersisted(keyFigure, writeMode string) {
	keyFigureValuesPersisted.WithLabelValues(keyFigure, writeMode).Inc()
}

// ReportFinished records the outcome and duration of a report run.
func ReportFinished(err error, elapsed time.Duration) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	reportsTotal.WithLabelValues(outcome).Inc()
	reportDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}
