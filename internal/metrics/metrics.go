// Package metrics provides Prometheus metrics for the sizing service
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "airduct_calculations_total",
			Help: "Total number of sizing calculations by tool and outcome",
		},
		[]string{"tool", "status"},
	)

	CalculationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "airduct_calculation_duration_seconds",
			Help:    "Time spent in a sizing calculation",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
		},
		[]string{"tool"},
	)

	NonStandardSizes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "airduct_nonstandard_sizes_total",
			Help: "Round results that fell back past the largest catalog diameter",
		},
	)

	RectEmptyResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "airduct_rect_empty_results_total",
			Help: "Rectangular searches with no candidate inside the tolerance band",
		},
		[]string{"policy"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "airduct_http_requests_total",
			Help: "HTTP requests by route template and status code",
		},
		[]string{"route", "code"},
	)

	RateLimitHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "airduct_rate_limit_hits_total",
			Help: "Requests rejected by the per-IP rate limiter",
		},
	)
)

// ObserveCalculation records the outcome and duration of one calculation.
func ObserveCalculation(tool string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	CalculationsTotal.WithLabelValues(tool, status).Inc()
	CalculationDuration.WithLabelValues(tool).Observe(time.Since(start).Seconds())
}
