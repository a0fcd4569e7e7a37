package cache

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts cache activity.
type Metrics struct {
	Hits        prometheus.Counter
	Misses      prometheus.Counter
	Fetches     prometheus.Counter
	Joins       prometheus.Counter
	Invalidated prometheus.Counter
	Entries     prometheus.Gauge
}

// NewMetrics creates the cache metrics and registers them with reg when it is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "masomo", Subsystem: "cache", Name: "hits_total",
			Help: "Subscriptions served from a fresh entry.",
		}),
		Misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "masomo", Subsystem: "cache", Name: "misses_total",
			Help: "Subscriptions that found no fresh entry.",
		}),
		Fetches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "masomo", Subsystem: "cache", Name: "fetches_total",
			Help: "Requests issued to the API.",
		}),
		Joins: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "masomo", Subsystem: "cache", Name: "joined_fetches_total",
			Help: "Fetches that shared an identical in-flight request.",
		}),
		Invalidated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "masomo", Subsystem: "cache", Name: "invalidated_entries_total",
			Help: "Entries refetched or dropped by a tag invalidation.",
		}),
		Entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "masomo", Subsystem: "cache", Name: "entries",
			Help: "Entries currently cached.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Hits, m.Misses, m.Fetches, m.Joins, m.Invalidated, m.Entries)
	}
	return m
}
