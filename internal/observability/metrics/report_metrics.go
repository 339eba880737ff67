package metrics

import (
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ReportMetrics are the Prometheus collectors scraped from /metrics.
type ReportMetrics struct {
	generationDuration *prometheus.HistogramVec
	snapshotCache      *prometheus.CounterVec
	writeFailures      *prometheus.CounterVec
}

var (
	reportMetricsOnce sync.Once
	reportMetrics     *ReportMetrics
)

func Report() *ReportMetrics {
	return ReportWithConfig(Config{})
}

func ReportWithConfig(cfg Config) *ReportMetrics {
	reportMetricsOnce.Do(func() {
		reportMetrics = NewReportMetrics(prometheus.DefaultRegisterer, cfg)
	})
	return reportMetrics
}

// NewReportMetrics registers a fresh set of collectors on registerer.
func NewReportMetrics(registerer prometheus.Registerer, cfg Config) *ReportMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "eventdesk"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}
	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	generationDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "eventdesk_report_generation_duration_seconds",
			Help: "Time spent loading the dataset and generating reports for one tenant.",
			Buckets: []float64{
				0.01,
				0.05,
				0.1,
				0.25,
				0.5,
				1,
				2.5,
				5,
				10,
			},
			ConstLabels: constLabels,
		},
		[]string{"result"}, // success | failed
	)

	snapshotCache := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "eventdesk_snapshot_cache_total",
			Help:        "Snapshot cache lookups by outcome.",
			ConstLabels: constLabels,
		},
		[]string{"result"}, // hit | miss | stale | error | bypass
	)

	writeFailures := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "eventdesk_snapshot_write_failures_total",
			Help:        "Snapshot writes that failed and were dropped.",
			ConstLabels: constLabels,
		},
		[]string{"store"},
	)

	registerer.MustRegister(generationDuration, snapshotCache, writeFailures)

	return &ReportMetrics{
		generationDuration: generationDuration,
		snapshotCache:      snapshotCache,
		writeFailures:      writeFailures,
	}
}

func (m *ReportMetrics) ObserveGeneration(elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failed"
	}
	m.generationDuration.WithLabelValues(result).Observe(elapsed.Seconds())
}

func (m *ReportMetrics) IncSnapshotCache(result string) {
	if m == nil {
		return
	}
	m.snapshotCache.WithLabelValues(result).Inc()
}

func (m *ReportMetrics) IncWriteFailure(store string) {
	if m == nil {
		return
	}
	m.writeFailures.WithLabelValues(store).Inc()
}
