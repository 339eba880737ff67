package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes report-engine instruments.
type Metrics struct {
	reportGenerations metric.Int64Counter
	reportDuration    metric.Float64Histogram
	snapshotLookups   metric.Int64Counter
	snapshotWrites    metric.Int64Counter
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				return provider.Shutdown(ctx)
			},
		})
	}

	if log != nil {
		log.Info("metrics initialized",
			zap.String("endpoint", cfg.ExporterEndpoint),
			zap.String("protocol", cfg.ExporterProtocol),
		)
	}

	return provider, nil
}

// New configures the report instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "eventdesk"
	}
	meter := provider.Meter(name)

	reportGenerations, err := meter.Int64Counter("eventdesk_report_generations_total")
	if err != nil {
		return nil, err
	}
	reportDuration, err := meter.Float64Histogram("eventdesk_report_generation_duration_ms")
	if err != nil {
		return nil, err
	}
	snapshotLookups, err := meter.Int64Counter("eventdesk_snapshot_lookups_total")
	if err != nil {
		return nil, err
	}
	snapshotWrites, err := meter.Int64Counter("eventdesk_snapshot_writes_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		reportGenerations: reportGenerations,
		reportDuration:    reportDuration,
		snapshotLookups:   snapshotLookups,
		snapshotWrites:    snapshotWrites,
	}, nil
}

// RecordGeneration counts one generation run and its duration.
func (m *Metrics) RecordGeneration(ctx context.Context, report, result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(
		attribute.String("report", strings.TrimSpace(report)),
		attribute.String("result", strings.TrimSpace(result)),
	)
	m.reportGenerations.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.reportDuration.Record(ctx, float64(elapsed.Milliseconds()), metric.WithAttributes(attrs...))
}

// RecordSnapshotLookup counts a cache lookup by outcome (hit, miss, stale, error, bypass).
func (m *Metrics) RecordSnapshotLookup(ctx context.Context, report, result string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(
		attribute.String("report", strings.TrimSpace(report)),
		attribute.String("result", strings.TrimSpace(result)),
	)
	m.snapshotLookups.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordSnapshotWrite counts a snapshot persistence attempt.
func (m *Metrics) RecordSnapshotWrite(ctx context.Context, store, result string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(
		attribute.String("store", strings.TrimSpace(store)),
		attribute.String("result", strings.TrimSpace(result)),
	)
	m.snapshotWrites.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	protocol = strings.ToLower(strings.TrimSpace(protocol))
	switch protocol {
	case "http", "http/protobuf":
		opts := []otlpmetrichttp.Option{otlpmetrichttp.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(context.Background(), opts...)
	case "grpc", "grpc/protobuf", "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(context.Background(), opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", protocol)
	}
}

// user_id stays out: tenants are unbounded.
var allowedLabelKeys = map[attribute.Key]struct{}{
	"endpoint":    {},
	"status_code": {},
	"report":      {},
	"result":      {},
	"store":       {},
}

// FilterAttributes strips disallowed labels to keep metrics low-cardinality.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedLabelKeys[attr.Key]; !ok {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}
