// Package metrics exposes Prometheus collectors for the HTTP API, the
// inference backend and the session registry.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tripplanner/internal/domain"
)

const namespace = "tripplanner"

// Metrics groups the collectors registered on one registry.
type Metrics struct {
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	InferenceCalls   *prometheus.CounterVec
	InferenceLatency *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New registers the collectors on reg. sessions, when non-nil, backs the live
// session gauge.
func New(reg *prometheus.Registry, sessions func() int) *Metrics {
	factory := promauto.With(reg)
	m := &Metrics{
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Count of API requests by route, method and status.",
		}, []string{"route", "method", "status"}),

		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of API requests by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),

		InferenceCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inference_calls_total",
			Help:      "Count of text-generation calls by backend and outcome.",
		}, []string{"backend", "outcome"}),

		InferenceLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "inference_duration_seconds",
			Help:      "Latency of text-generation calls.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 60},
		}, []string{"backend"}),

		gatherer: reg,
	}
	if sessions != nil {
		factory.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_live",
			Help:      "Number of sessions held in memory.",
		}, func() float64 { return float64(sessions()) })
	}
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// ObserveRequest records one finished API request.
func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	m.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// Instrument wraps gen so every call is counted and timed under backend.
func (m *Metrics) Instrument(gen domain.TextGenerator, backend string) domain.TextGenerator {
	return &instrumented{next: gen, backend: backend, m: m}
}

type instrumented struct {
	next    domain.TextGenerator
	backend string
	m       *Metrics
}

func (g *instrumented) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	start := time.Now()
	text, err := g.next.Generate(ctx, req)
	g.m.InferenceLatency.WithLabelValues(g.backend).Observe(time.Since(start).Seconds())
	g.m.InferenceCalls.WithLabelValues(g.backend, outcome(err)).Inc()
	return text, err
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "error"
	}
}
