package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "retailpulse"

const (
	TriggerPreload    = "preload"
	TriggerLookup     = "lookup"
	TriggerRegenerate = "regenerate"

	SnapshotHit   = "hit"
	SnapshotMiss  = "miss"
	SnapshotError = "error"
)

// Metrics owns its registry so tests and multiple servers in one process do
// not collide on the global default registerer. A nil *Metrics is a no-op.
type Metrics struct {
	registry          *prometheus.Registry
	generations       *prometheus.CounterVec
	generationSeconds *prometheus.HistogramVec
	snapshotLookups   *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_generations_total",
			Help:      "Store data generations by store and trigger.",
		}, []string{"store", "trigger"}),
		generationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "store_generation_seconds",
			Help:      "Time spent generating one store record.",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
		}, []string{"store"}),
		snapshotLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_cache_lookups_total",
			Help:      "Shared snapshot cache lookups by result.",
		}, []string{"result"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.generations,
		m.generationSeconds,
		m.snapshotLookups,
	)
	return m
}

func (m *Metrics) ObserveGeneration(store string, trigger string, took time.Duration) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(store, trigger).Inc()
	m.generationSeconds.WithLabelValues(store).Observe(took.Seconds())
}

func (m *Metrics) ObserveSnapshot(result string) {
	if m == nil {
		return
	}
	m.snapshotLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
