package metrics

import "github.com/prometheus/client_golang/prometheus"

// SyncMetrics exposes counters/histograms for collection sync operations.
type SyncMetrics struct {
	fetchTotal    *prometheus.CounterVec
	mutationTotal *prometheus.CounterVec
	fetchLatency  *prometheus.HistogramVec
}

func NewSyncMetrics(reg prometheus.Registerer) *SyncMetrics {
	m := &SyncMetrics{
		fetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dental",
			Subsystem: "sync",
			Name:      "fetch_total",
			Help:      "Total collection fetches against the upstream API",
		}, []string{"collection", "status"}),
		mutationTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dental",
			Subsystem: "sync",
			Name:      "mutation_total",
			Help:      "Total create/update mutations against the upstream API",
		}, []string{"collection", "op", "status"}),
		fetchLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dental",
			Subsystem: "sync",
			Name:      "fetch_latency_seconds",
			Help:      "Latency of upstream collection fetches",
			Buckets:   prometheus.DefBuckets,
		}, []string{"collection"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.fetchTotal, m.mutationTotal, m.fetchLatency)
	return m
}

func (m *SyncMetrics) ObserveFetch(collection, status string) {
	if m == nil {
		return
	}
	m.fetchTotal.WithLabelValues(collection, status).Inc()
}

func (m *SyncMetrics) ObserveMutation(collection, op, status string) {
	if m == nil {
		return
	}
	m.mutationTotal.WithLabelValues(collection, op, status).Inc()
}

func (m *SyncMetrics) ObserveFetchLatency(collection string, seconds float64) {
	if m == nil {
		return
	}
	m.fetchLatency.WithLabelValues(collection).Observe(seconds)
}
