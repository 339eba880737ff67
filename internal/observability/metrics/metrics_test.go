package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestFilterAttributesDropsForbiddenLabels(t *testing.T) {
	attrs := FilterAttributes(
		attribute.String("report", "cash_flow"),
		attribute.String("user_id", "456"),
		attribute.String("result", "hit"),
	)
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(attrs))
	}
	for _, attr := range attrs {
		if attr.Key == "user_id" {
			t.Fatalf("expected user_id to be dropped")
		}
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.RecordGeneration(context.Background(), "dashboard", "success", time.Second)
	m.RecordSnapshotLookup(context.Background(), "dashboard", "hit")
	m.RecordSnapshotWrite(context.Background(), "database", "failed")

	var r *ReportMetrics
	r.ObserveGeneration(time.Second, nil)
	r.IncSnapshotCache("hit")
	r.IncWriteFailure("redis")
}

func TestNewWithNoopProvider(t *testing.T) {
	m, err := New(Config{}, noop.NewMeterProvider())
	if err != nil {
		t.Fatalf("new metrics: %v", err)
	}
	m.RecordSnapshotLookup(context.Background(), "receivables", "miss")
}

func TestReportMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewReportMetrics(reg, Config{ServiceName: "eventdesk-test", Environment: "test"})

	m.IncSnapshotCache("hit")
	m.IncSnapshotCache("hit")
	m.IncSnapshotCache("miss")
	m.IncWriteFailure("database")
	m.ObserveGeneration(120*time.Millisecond, errors.New("boom"))

	if got := testutil.ToFloat64(m.snapshotCache.WithLabelValues("hit")); got != 2 {
		t.Fatalf("expected 2 hits, got %v", got)
	}
	if got := testutil.ToFloat64(m.snapshotCache.WithLabelValues("miss")); got != 1 {
		t.Fatalf("expected 1 miss, got %v", got)
	}
	if got := testutil.ToFloat64(m.writeFailures.WithLabelValues("database")); got != 1 {
		t.Fatalf("expected 1 write failure, got %v", got)
	}
	if n := testutil.CollectAndCount(m.generationDuration); n != 1 {
		t.Fatalf("expected one generation series, got %d", n)
	}
}
