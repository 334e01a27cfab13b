package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/sergeii/toolbelt/internal/core/entities/probe"
)

type Collector struct {
	registry *prometheus.Registry

	ProbeRuns         *prometheus.CounterVec
	ProbeErrors       *prometheus.CounterVec
	ProbeDurations    *prometheus.HistogramVec
	ProbeRequests     *prometheus.CounterVec
	RateLimitOutcomes *prometheus.CounterVec
	LatencySamples    prometheus.Histogram

	APIRequests  *prometheus.CounterVec
	APIDurations *prometheus.HistogramVec

	ConsoleCommands *prometheus.CounterVec
}

func New() *Collector {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewGoCollector())

	c := &Collector{
		registry: registry,

		ProbeRuns: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "probe_runs_total",
			Help: "The total number of probe invocations",
		}, []string{"kind"}),
		ProbeErrors: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "probe_errors_total",
			Help: "The total number of probe invocations that ended with an error",
		}, []string{"kind", "error"}),
		ProbeDurations: promauto.With(registry).NewHistogramVec(prometheus.HistogramOpts{
			Name: "probe_duration_seconds",
			Help: "Duration of probe invocations",
		}, []string{"kind"}),
		ProbeRequests: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "probe_requests_total",
			Help: "The total number of network requests issued by probes",
		}, []string{"kind"}),
		RateLimitOutcomes: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "ratelimit_outcomes_total",
			Help: "The total number of classified rate limit probe requests",
		}, []string{"outcome"}),
		LatencySamples: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "latency_sample_seconds",
			Help:    "Round trip time of individual latency probe requests",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
		}),
		APIRequests: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "The total number of handled API requests",
		}, []string{"route", "status"}),
		APIDurations: promauto.With(registry).NewHistogramVec(prometheus.HistogramOpts{
			Name: "api_request_duration_seconds",
			Help: "Duration of API requests",
		}, []string{"route"}),
		ConsoleCommands: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "console_commands_total",
			Help: "The total number of commands entered in the console",
		}, []string{"command"}),
	}
	return c
}

func (c *Collector) GetRegistry() *prometheus.Registry {
	return c.registry
}

// ObserveProbe records a finished probe invocation.
func (c *Collector) ObserveProbe(kind probe.Kind, elapsed time.Duration, err error) {
	label := kind.String()
	c.ProbeRuns.WithLabelValues(label).Inc()
	c.ProbeDurations.WithLabelValues(label).Observe(elapsed.Seconds())
	if err != nil {
		c.ProbeErrors.WithLabelValues(label, probe.KindOf(err).String()).Inc()
	}
}
