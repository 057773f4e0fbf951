// Package metrics provides Prometheus metrics collection for the
// prescriptions API:
//   - http_request_total: Counter with method, path, and status labels
//   - http_request_duration_seconds: Histogram with method and path labels
//   - http_request_in_flight: Gauge for concurrent requests
//   - rate_limiter_buckets_total: Gauge of active per-IP buckets
//   - ocr_extraction_total: Counter with engine and outcome labels
//   - analysis_total: Counter with outcome label
//
// All metrics are automatically registered with the Prometheus default
// registry during package initialization.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	RateLimiterBucketsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limiter_buckets_total",
			Help: "Active per-IP rate limiter buckets",
		},
	)

	OCRExtractionTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ocr_extraction_total",
			Help: "OCR extraction attempts by engine and outcome",
		},
		[]string{"engine", "outcome"},
	)

	AnalysisTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_total",
			Help: "Prescription analyses by outcome (analyzed, no_text, no_matches)",
		},
		[]string{"outcome"},
	)
)

// RecordOCRExtraction counts one extraction attempt for an engine.
func RecordOCRExtraction(engine, outcome string) {
	OCRExtractionTotals.WithLabelValues(engine, outcome).Inc()
}

// RecordAnalysis counts one /analyze request by outcome.
func RecordAnalysis(outcome string) {
	AnalysisTotals.WithLabelValues(outcome).Inc()
}

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(RateLimiterBucketsTotal)
	prometheus.MustRegister(OCRExtractionTotals)
	prometheus.MustRegister(AnalysisTotals)
}
