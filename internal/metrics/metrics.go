// Package metrics exposes Prometheus collectors for pipeline activity.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "social_agent"

// Collector groups the pipeline's counters and histograms.
type Collector struct {
	stageCalls      *prometheus.CounterVec
	stageDuration   *prometheus.HistogramVec
	gateRefusals    *prometheus.CounterVec
	postsScheduled  *prometheus.CounterVec
	inconsistencies prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		stageCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stage_calls_total",
				Help:      "Total number of stage and sink invocations by outcome",
			},
			[]string{"stage", "outcome"},
		),
		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "stage_duration_seconds",
				Help:      "Duration of stage and sink invocations in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
		gateRefusals: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "gate_refusals_total",
				Help:      "Operations refused because their preconditions did not hold",
			},
			[]string{"operation"},
		),
		postsScheduled: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "posts_scheduled_total",
				Help:      "Posts handed to the scheduling sink and logged",
			},
			[]string{"platform", "action"},
		),
		inconsistencies: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "history_inconsistencies_total",
				Help:      "Posts scheduled whose history entry could not be written",
			},
		),
	}

	reg.MustRegister(c.stageCalls, c.stageDuration, c.gateRefusals, c.postsScheduled, c.inconsistencies)

	return c
}

func (c *Collector) ObserveStage(stage string, d time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	c.stageCalls.WithLabelValues(stage, outcome).Inc()
	c.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (c *Collector) GateRefused(operation string) {
	c.gateRefusals.WithLabelValues(operation).Inc()
}

func (c *Collector) PostScheduled(platform, action string) {
	c.postsScheduled.WithLabelValues(platform, action).Inc()
}

func (c *Collector) Inconsistency() {
	c.inconsistencies.Inc()
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
