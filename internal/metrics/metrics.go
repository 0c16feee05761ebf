// Package metrics exposes search metrics to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector records search metrics. It satisfies relay.Observer.
type Collector struct {
	searches  *prometheus.CounterVec
	duration  prometheus.Histogram
	popped    prometheus.Histogram
	cacheHits prometheus.Counter
}

// New creates a Collector and registers it with reg.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "digipath_searches_total",
				Help: "Completed path searches by outcome.",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "digipath_search_duration_seconds",
			Help:    "Wall time of a path search.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
		}),
		popped: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "digipath_search_states_popped",
			Help:    "Frontier entries popped per search.",
			Buckets: prometheus.ExponentialBuckets(1, 8, 9),
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "digipath_cache_hits_total",
			Help: "Search requests answered from the result cache.",
		}),
	}
	reg.MustRegister(c.searches, c.duration, c.popped, c.cacheHits)

	return c
}

// SearchDone records one finished search.
func (c *Collector) SearchDone(outcome string, elapsed time.Duration, popped int) {
	c.searches.WithLabelValues(outcome).Inc()
	c.duration.Observe(elapsed.Seconds())
	c.popped.Observe(float64(popped))
}

// CacheHit records a cached answer.
func (c *Collector) CacheHit() {
	c.cacheHits.Inc()
}
