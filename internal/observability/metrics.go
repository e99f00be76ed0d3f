package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce            sync.Once
	httpRequestsTotal       *prometheus.CounterVec
	httpLatencySeconds      *prometheus.HistogramVec
	httpErrorsTotal         *prometheus.CounterVec
	evaluationsTotal        *prometheus.CounterVec
	evaluationLatency       *prometheus.HistogramVec
	batchSubmissionsTotal   *prometheus.CounterVec
	notificationsPublished  *prometheus.CounterVec
	transcriptionDurationMs prometheus.Histogram
)

// RegisterMetrics initialises the Prometheus collectors for the grading API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rubrica",
			Name:      "requests_total",
			Help:      "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "rubrica",
			Name:      "latency_seconds",
			Help:      "Latency distribution for API requests.",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		httpErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rubrica",
			Name:      "errors_total",
			Help:      "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		evaluationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rubrica",
			Name:      "evaluations_total",
			Help:      "Rubric evaluations completed, labelled by variant and ceiling band.",
		}, []string{"variant", "ceiling"})

		evaluationLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "rubrica",
			Name:      "evaluation_duration_seconds",
			Help:      "Time spent extracting and scoring a single response.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}, []string{"variant"})

		batchSubmissionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rubrica",
			Name:      "batch_submissions_total",
			Help:      "Submissions processed by batch grading runs, labelled by outcome.",
		}, []string{"outcome"})

		notificationsPublished = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rubrica",
			Name:      "notifications_published_total",
			Help:      "Grading notifications fanned out, labelled by channel.",
		}, []string{"channel"})

		transcriptionDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "rubrica",
			Name:      "transcription_duration_seconds",
			Help:      "Time spent transcribing handwritten submissions.",
			Buckets:   []float64{0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpLatencySeconds,
			httpErrorsTotal,
			evaluationsTotal,
			evaluationLatency,
			batchSubmissionsTotal,
			notificationsPublished,
			transcriptionDurationMs,
		)
	})
}

// Requests exposes the counter for API requests.
func Requests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// Latency exposes the latency histogram for API requests.
func Latency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// Errors exposes the counter for API error responses.
func Errors() *prometheus.CounterVec {
	RegisterMetrics()
	return httpErrorsTotal
}

// Evaluations exposes the counter for completed rubric evaluations.
func Evaluations() *prometheus.CounterVec {
	RegisterMetrics()
	return evaluationsTotal
}

// EvaluationDuration exposes the histogram for single-response grading time.
func EvaluationDuration() *prometheus.HistogramVec {
	RegisterMetrics()
	return evaluationLatency
}

// BatchSubmissions exposes the counter for batch grading outcomes.
func BatchSubmissions() *prometheus.CounterVec {
	RegisterMetrics()
	return batchSubmissionsTotal
}

// NotificationsPublished exposes the counter for fanned-out notifications.
func NotificationsPublished() *prometheus.CounterVec {
	RegisterMetrics()
	return notificationsPublished
}

// TranscriptionDuration exposes the histogram for image transcription time.
func TranscriptionDuration() prometheus.Histogram {
	RegisterMetrics()
	return transcriptionDurationMs
}
