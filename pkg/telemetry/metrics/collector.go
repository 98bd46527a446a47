// Package metrics exposes Prometheus metrics for pipeline runs.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config contains configuration for the metrics collector.
type Config struct {
	// Enabled turns metric recording on. When false, all record calls
	// are no-ops.
	Enabled bool

	// Namespace is the metric name prefix.
	Namespace string
}

// Collector registers and records all pipeline metrics.
type Collector struct {
	config   Config
	registry *prometheus.Registry

	generations   *prometheus.CounterVec
	providerErrs  *prometheus.CounterVec
	retries       *prometheus.CounterVec
	requestTokens prometheus.Histogram
	stageDuration *prometheus.HistogramVec
	draftsPending prometheus.Gauge
}

// NewCollector creates a metrics collector with its own registry.
func NewCollector(cfg Config) *Collector {
	if cfg.Namespace == "" {
		cfg.Namespace = "lexicon"
	}

	registry := prometheus.NewRegistry()

	c := &Collector{
		config:   cfg,
		registry: registry,

		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "generations_total",
			Help:      "Generation requests by stage, provider and outcome.",
		}, []string{"stage", "provider", "status"}),

		providerErrs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "provider_errors_total",
			Help:      "Provider failures by provider and error kind.",
		}, []string{"provider", "kind"}),

		retries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "provider_retries_total",
			Help:      "Retry attempts by provider.",
		}, []string{"provider"}),

		requestTokens: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "request_estimated_tokens",
			Help:      "Estimated token load of outbound requests.",
			Buckets:   []float64{100, 500, 1000, 2000, 5000, 10000, 50000, 100000},
		}),

		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "stage_duration_seconds",
			Help:      "Wall-clock duration of pipeline stages.",
			Buckets:   []float64{1, 5, 15, 60, 300, 900, 3600},
		}, []string{"stage"}),

		draftsPending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "drafts_pending",
			Help:      "Drafts staged and awaiting polish.",
		}),
	}

	registry.MustRegister(
		c.generations,
		c.providerErrs,
		c.retries,
		c.requestTokens,
		c.stageDuration,
		c.draftsPending,
	)

	return c
}

// RecordGeneration records the outcome of one generation request.
func (c *Collector) RecordGeneration(stage, provider, status string) {
	if !c.config.Enabled {
		return
	}
	c.generations.WithLabelValues(stage, provider, status).Inc()
}

// RecordProviderError records a provider failure by error kind
// (auth, rate_limit, timeout, parse, other).
func (c *Collector) RecordProviderError(provider, kind string) {
	if !c.config.Enabled {
		return
	}
	c.providerErrs.WithLabelValues(provider, kind).Inc()
}

// RecordRetries records retry attempts performed for a provider.
func (c *Collector) RecordRetries(provider string, count int64) {
	if !c.config.Enabled || count <= 0 {
		return
	}
	c.retries.WithLabelValues(provider).Add(float64(count))
}

// RecordRequestTokens records the estimated token load of a request.
func (c *Collector) RecordRequestTokens(tokens int) {
	if !c.config.Enabled {
		return
	}
	c.requestTokens.Observe(float64(tokens))
}

// RecordStageDuration records the duration of a pipeline stage.
func (c *Collector) RecordStageDuration(stage string, d time.Duration) {
	if !c.config.Enabled {
		return
	}
	c.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// SetDraftsPending records the current number of unpolished drafts.
func (c *Collector) SetDraftsPending(n int) {
	if !c.config.Enabled {
		return
	}
	c.draftsPending.Set(float64(n))
}

// Handler returns the HTTP handler serving the metrics endpoint.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
