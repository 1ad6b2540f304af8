// Package metrics exports dispatcher and HTTP metrics to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"hotel-concierge/internal/domain/intent"
	"hotel-concierge/internal/pkg/errs"
	"hotel-concierge/internal/usecase/dispatch"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "concierge"

// Metrics implements dispatch.Recorder.
type Metrics struct {
	registry *prometheus.Registry

	ClassificationAttempts *prometheus.CounterVec
	IntentsTotal           *prometheus.CounterVec
	IntentDuration         *prometheus.HistogramVec
	TurnsTotal             *prometheus.CounterVec
	TurnDuration           prometheus.Histogram
	HTTPRequests           *prometheus.CounterVec
	HTTPDuration           *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		ClassificationAttempts: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "classification_attempts_total",
				Help:      "Classifier calls by attempt number and result code",
			},
			[]string{"attempt", "result"},
		),

		IntentsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "intents_total",
				Help:      "Delegated intents by kind and status",
			},
			[]string{"kind", "status"},
		),

		IntentDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "intent_duration_seconds",
				Help:      "Time spent in a specialist",
				Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"kind"},
		),

		TurnsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "turns_total",
				Help:      "Turns by final state",
			},
			[]string{"state"},
		),

		TurnDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "turn_duration_seconds",
				Help:      "End to end turn latency including classification and rendering",
				Buckets:   []float64{.05, .1, .5, 1, 2, 5, 10, 30},
			},
		),

		HTTPRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by route, method and status",
			},
			[]string{"route", "method", "status"},
		),

		HTTPDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by route",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
	}
}

func (m *Metrics) ObserveClassification(attempt int, err error) {
	result := "ok"
	if err != nil {
		result = errs.Code(err)
	}
	m.ClassificationAttempts.WithLabelValues(strconv.Itoa(attempt), result).Inc()
}

func (m *Metrics) ObserveIntent(kind intent.Kind, status dispatch.PartStatus, elapsed time.Duration) {
	m.IntentsTotal.WithLabelValues(kind.String(), string(status)).Inc()
	m.IntentDuration.WithLabelValues(kind.String()).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveTurn(state dispatch.State, elapsed time.Duration) {
	m.TurnsTotal.WithLabelValues(string(state)).Inc()
	m.TurnDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
