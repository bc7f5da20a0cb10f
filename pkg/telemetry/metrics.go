package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics provides Prometheus metrics for kubeact invocations.
type Metrics struct {
	config MetricsConfig

	invocations        *prometheus.CounterVec
	invocationDuration *prometheus.HistogramVec
	spawnErrors        prometheus.Counter
	factsExtracted     *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewMetrics creates a metrics collector. A disabled configuration
// yields a no-op instance whose record methods are safe to call.
func NewMetrics(cfg MetricsConfig) *Metrics {
	if !cfg.Enabled {
		return &Metrics{config: cfg}
	}

	registry := prometheus.NewRegistry()

	m := &Metrics{
		config:   cfg,
		registry: registry,

		invocations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "invocations_total",
				Help:      "Total number of kubectl invocations by verb and verdict",
			},
			[]string{"verb", "verdict"},
		),
		invocationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "invocation_duration_seconds",
				Help:      "Duration of kubectl invocations in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"verb"},
		),
		spawnErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "spawn_errors_total",
				Help:      "Total number of failures to launch the kubectl binary",
			},
		),
		factsExtracted: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "facts_extracted",
				Help:      "Number of facts extracted from stdout per invocation",
				Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
			},
			[]string{"verb"},
		),
	}

	registry.MustRegister(
		m.invocations,
		m.invocationDuration,
		m.spawnErrors,
		m.factsExtracted,
	)

	return m
}

// RecordInvocation records one completed invocation.
func (m *Metrics) RecordInvocation(verb, verdict string, duration time.Duration, facts int) {
	if m.invocations == nil {
		return
	}
	m.invocations.WithLabelValues(verb, verdict).Inc()
	m.invocationDuration.WithLabelValues(verb).Observe(duration.Seconds())
	m.factsExtracted.WithLabelValues(verb).Observe(float64(facts))
}

// RecordSpawnError records a failure to launch the binary.
func (m *Metrics) RecordSpawnError() {
	if m.spawnErrors == nil {
		return
	}
	m.spawnErrors.Inc()
}

// Handler returns an HTTP handler for the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m.registry == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// StartMetricsServer starts an HTTP server exposing the metrics
// endpoint and shuts it down when ctx is cancelled. It is a no-op when
// metrics are disabled.
func (m *Metrics) StartMetricsServer(ctx context.Context, errLog func(error)) {
	if !m.config.Enabled {
		return
	}

	mux := http.NewServeMux()
	mux.Handle(m.config.Path, m.Handler())

	server := &http.Server{
		Addr:              m.config.ListenAddress,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if errLog != nil {
				errLog(err)
			}
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			if errLog != nil {
				errLog(err)
			}
		}
	}()
}
