package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestSyncMetricsObserve(t *testing.T) {
	m := NewSyncMetrics(prometheus.NewRegistry())
	m.ObserveFetch("patients", "ok")
	m.ObserveMutation("patients", "create", "error")
	m.ObserveFetchLatency("patients", 0.25)
}

func TestSyncMetricsNilSafe(t *testing.T) {
	var m *SyncMetrics
	m.ObserveFetch("patients", "ok")
	m.ObserveMutation("patients", "update", "ok")
	m.ObserveFetchLatency("patients", 0.1)
}

func TestSyncMetricsRegistersAndCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSyncMetrics(reg)
	m.ObserveFetch("appointments", "ok")
	m.ObserveFetch("appointments", "ok")

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	var fetch *dto.MetricFamily
	for _, f := range families {
		if f.GetName() == "dental_sync_fetch_total" {
			fetch = f
		}
	}
	if fetch == nil {
		t.Fatal("dental_sync_fetch_total not registered")
	}
	if got := fetch.GetMetric()[0].GetCounter().GetValue(); got != 2 {
		t.Fatalf("fetch counter = %v, want 2", got)
	}
}
