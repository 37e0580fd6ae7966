// Package metrics exposes login-flow outcomes as Prometheus counters.
package metrics

import (
	"net/http"

	"loginflow/config"
	"loginflow/internal/domain/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

const namespace = "loginflow"

// Collector implements service.LoginMetrics with Prometheus counters.
type Collector struct {
	verify *prometheus.CounterVec
	reset  *prometheus.CounterVec
	issued prometheus.Counter
}

// NewCollector creates a Collector and registers its counters with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		verify: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verify_login_total",
			Help:      "verify-login calls by outcome",
		}, []string{"outcome"}),
		reset: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "password_reset_total",
			Help:      "complete-password-reset calls by outcome",
		}, []string{"outcome"}),
		issued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "temporary_password_issued_total",
			Help:      "temporary passwords issued",
		}),
	}

	reg.MustRegister(c.verify, c.reset, c.issued)

	return c
}

func (c *Collector) ObserveVerify(outcome service.VerifyOutcome) {
	c.verify.WithLabelValues(string(outcome)).Inc()
}

func (c *Collector) ObserveReset(outcome service.ResetOutcome) {
	c.reset.WithLabelValues(string(outcome)).Inc()
}

func (c *Collector) ObserveIssued() {
	c.issued.Inc()
}

// NewRegistry returns a registry with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return reg
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// NewLoginMetrics returns the Prometheus collector, or nil when metrics are disabled.
func NewLoginMetrics(cfg *config.Config, reg prometheus.Registerer) service.LoginMetrics {
	if cfg.Metrics == nil || !cfg.Metrics.Enabled {
		return nil
	}

	return NewCollector(reg)
}

// Module provides the metrics FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(
		NewRegistry,
		func(reg *prometheus.Registry) prometheus.Registerer { return reg },
		func(reg *prometheus.Registry) prometheus.Gatherer { return reg },
		NewLoginMetrics,
	),
)
