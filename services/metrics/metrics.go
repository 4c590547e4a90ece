package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"sjsage522/pricewatcher/logger"
)

// JobName groups pushed series on the Pushgateway
const JobName = "pricewatcher"

// RunResult is what one run reports to the metrics registry
type RunResult struct {
	Extracted      int
	Failed         int
	MessagesSent   int
	MessagesFailed int
	Duration       time.Duration
	FinishedAt     time.Time
}

// Metrics holds the run counters on a private registry
type Metrics struct {
	registry *prometheus.Registry

	ProductsTotal  *prometheus.CounterVec
	MessagesTotal  *prometheus.CounterVec
	RunDuration    prometheus.Gauge
	LastRunSeconds prometheus.Gauge
}

// New creates and registers the run metrics
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ProductsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricewatcher_products_total",
				Help: "Product pages processed, by outcome",
			},
			[]string{"outcome"},
		),
		MessagesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricewatcher_messages_total",
				Help: "Digest messages delivered, by outcome",
			},
			[]string{"outcome"},
		),
		RunDuration: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "pricewatcher_run_duration_seconds",
				Help: "Wall time of the last run",
			},
		),
		LastRunSeconds: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "pricewatcher_last_run_timestamp_seconds",
				Help: "Unix time the last run finished",
			},
		),
	}

	m.registry.MustRegister(m.ProductsTotal, m.MessagesTotal, m.RunDuration, m.LastRunSeconds)
	return m
}

// Observe records the outcome of a run
func (m *Metrics) Observe(r RunResult) {
	m.ProductsTotal.WithLabelValues("extracted").Add(float64(r.Extracted))
	m.ProductsTotal.WithLabelValues("failed").Add(float64(r.Failed))
	m.MessagesTotal.WithLabelValues("sent").Add(float64(r.MessagesSent))
	m.MessagesTotal.WithLabelValues("failed").Add(float64(r.MessagesFailed))
	m.RunDuration.Set(r.Duration.Seconds())
	if !r.FinishedAt.IsZero() {
		m.LastRunSeconds.Set(float64(r.FinishedAt.Unix()))
	}
}

// Push sends every registered series to the Pushgateway at url
func (m *Metrics) Push(ctx context.Context, url string) error {
	if err := push.New(url, JobName).Gatherer(m.registry).PushContext(ctx); err != nil {
		return err
	}
	logger.ForMetrics().Info().Str("url", url).Msg("Metrics pushed")
	return nil
}
