package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/smallbiznis/eventdesk/internal/clock"
	"github.com/smallbiznis/eventdesk/internal/config"
	entitydomain "github.com/smallbiznis/eventdesk/internal/entity/domain"
	obscontext "github.com/smallbiznis/eventdesk/internal/observability/context"
	"github.com/smallbiznis/eventdesk/internal/observability/logger"
	"github.com/smallbiznis/eventdesk/internal/observability/metrics"
	"github.com/smallbiznis/eventdesk/internal/observability/tracing"
	"github.com/smallbiznis/eventdesk/internal/report/dataset"
	"github.com/smallbiznis/eventdesk/internal/report/domain"
	"github.com/smallbiznis/eventdesk/internal/report/generator"
	snapshotdomain "github.com/smallbiznis/eventdesk/internal/snapshot/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	lookupHit       = "hit"
	lookupMiss      = "miss"
	lookupStale     = "stale"
	lookupReadError = "error"
	lookupBypass    = "bypass"

	// targetReports names the run that renders every batch report at once.
	targetReports = "reports"
)

type Params struct {
	fx.In

	Reader   entitydomain.Reader
	Store    snapshotdomain.Store
	Settings *config.ReportConfigHolder
	Clock    clock.Clock
	Log      *zap.Logger

	Metrics       *metrics.Metrics       `optional:"true"`
	ReportMetrics *metrics.ReportMetrics `optional:"true"`
}

type Service struct {
	loader   *dataset.Loader
	store    snapshotdomain.Store
	settings *config.ReportConfigHolder
	clock    clock.Clock
	log      *zap.Logger

	metrics       *metrics.Metrics
	reportMetrics *metrics.ReportMetrics

	runs singleflight.Group
}

func NewService(p Params) domain.Service {
	return &Service{
		loader:        dataset.NewLoader(p.Reader),
		store:         p.Store,
		settings:      p.Settings,
		clock:         p.Clock,
		log:           p.Log.Named("report.service"),
		metrics:       p.Metrics,
		reportMetrics: p.ReportMetrics,
	}
}

func (s *Service) GetDashboard(ctx context.Context, userID string, opts domain.Options) (domain.ReportResult, error) {
	return s.get(ctx, userID, domain.Dashboard, []domain.Name{domain.Dashboard}, string(domain.Dashboard), opts)
}

// GetReport serves name from today's snapshot. A miss renders and stores
// all batch reports in one run, since they share the dataset.
func (s *Service) GetReport(ctx context.Context, userID string, name domain.Name, opts domain.Options) (domain.ReportResult, error) {
	parsed, err := domain.ParseName(string(name))
	if err != nil {
		return domain.ReportResult{}, err
	}
	return s.get(ctx, userID, parsed, domain.Reports(), targetReports, opts)
}

// GenerateAllReports makes sure every batch report for today is cached.
// Without ForceRefresh it does nothing when all of them are already fresh.
func (s *Service) GenerateAllReports(ctx context.Context, userID string, opts domain.Options) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.ErrUserRequired
	}

	now := s.clock.Now()
	settings := s.currentSettings()
	dayKey := snapshotdomain.DayKey(now, settings.Loc())

	if !opts.ForceRefresh {
		snap := s.lookup(ctx, userID, dayKey)
		if allFresh(snap, domain.Reports(), now, settings.Loc()) {
			s.recordLookup(ctx, targetReports, lookupHit)
			return nil
		}
	}

	_, err := s.generate(ctx, userID, dayKey, targetReports, domain.Reports(), settings, now)
	return err
}

func (s *Service) get(ctx context.Context, userID string, name domain.Name, batch []domain.Name, target string, opts domain.Options) (domain.ReportResult, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.ReportResult{}, domain.ErrUserRequired
	}

	now := s.clock.Now()
	settings := s.currentSettings()
	loc := settings.Loc()
	dayKey := snapshotdomain.DayKey(now, loc)

	if opts.ForceRefresh {
		s.recordLookup(ctx, string(name), lookupBypass)
	} else {
		snap := s.lookup(ctx, userID, dayKey)
		entry, ok := snap.Entry(string(name))
		switch {
		case ok && isFresh(entry, now, loc):
			s.recordLookup(ctx, string(name), lookupHit)
			return toResult(name, entry, true), nil
		case ok:
			s.recordLookup(ctx, string(name), lookupStale)
		default:
			s.recordLookup(ctx, string(name), lookupMiss)
		}
	}

	entries, err := s.generate(ctx, userID, dayKey, target, batch, settings, now)
	if err != nil {
		return domain.ReportResult{}, err
	}
	return toResult(name, entries[name], false), nil
}

// lookup reads today's snapshot. Read failures degrade to a miss.
func (s *Service) lookup(ctx context.Context, userID, dayKey string) *snapshotdomain.Snapshot {
	snap, err := s.store.GetByDay(ctx, userID, dayKey)
	if err != nil {
		logger.WithContext(ctx, s.log).Warn("snapshot read failed, regenerating",
			zap.String("backend", s.store.Backend()),
			zap.String("day_key", dayKey),
			zap.Error(err),
		)
		s.recordLookup(ctx, "snapshot", lookupReadError)
		return nil
	}
	return snap
}

// generate shares one run between concurrent callers asking for the same
// user, day and target. The run is detached from the first caller's
// cancellation so the others still get a result; each caller can stop
// waiting on its own context.
func (s *Service) generate(ctx context.Context, userID, dayKey, target string, names []domain.Name, settings domain.Settings, now time.Time) (map[domain.Name]snapshotdomain.Entry, error) {
	key := userID + "|" + dayKey + "|" + target
	runCtx := context.WithoutCancel(ctx)

	ch := s.runs.DoChan(key, func() (any, error) {
		return s.run(runCtx, userID, dayKey, target, names, settings, now)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(map[domain.Name]snapshotdomain.Entry), nil
	}
}

func (s *Service) run(ctx context.Context, userID, dayKey, target string, names []domain.Name, settings domain.Settings, now time.Time) (entries map[domain.Name]snapshotdomain.Entry, err error) {
	ctx, span := tracing.Tracer("report").Start(ctx, "report.generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("report.target", target),
		attribute.Int("report.count", len(names)),
		attribute.String("snapshot.day_key", dayKey),
	)

	ctx = obscontext.WithUserID(ctx, userID)
	log := logger.WithContext(ctx, s.log)
	started := time.Now()
	defer func() {
		elapsed := time.Since(started)
		result := "success"
		if err != nil {
			result = "failed"
			span.RecordError(tracing.SafeError(err))
			span.SetStatus(codes.Error, "report generation failed")
		}
		s.metrics.RecordGeneration(ctx, target, result, elapsed)
		s.reportMetrics.ObserveGeneration(elapsed, err)
	}()

	ds, err := s.loader.Load(ctx, userID)
	if err != nil {
		log.Error("dataset load failed", zap.String("target", target), zap.Error(err))
		return nil, err
	}

	generatedAt := now.UTC().Truncate(time.Microsecond)
	counts := ds.Counts()

	payloads := make([]json.RawMessage, len(names))
	g, _ := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			payload, err := generator.Generate(name, ds, settings, now)
			if err != nil {
				return err
			}
			payloads[i] = payload
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("report generation failed", zap.String("target", target), zap.Error(err))
		return nil, err
	}

	entries = make(map[domain.Name]snapshotdomain.Entry, len(names))
	fields := make(map[string]snapshotdomain.Entry, len(names))
	for i, name := range names {
		entry := snapshotdomain.Entry{
			Payload:      payloads[i],
			GeneratedAt:  generatedAt,
			SourceCounts: counts,
		}
		entries[name] = entry
		fields[string(name)] = entry
	}

	s.persist(ctx, log, userID, dayKey, fields)

	log.Info("reports generated",
		zap.String("target", target),
		zap.String("day_key", dayKey),
		zap.Int("reports", len(names)),
		zap.Int("events", counts["events"]),
		zap.Int("payments", counts["payments"]),
		zap.Duration("elapsed", time.Since(started)),
	)
	return entries, nil
}

// persist stores fields and swallows failures: the caller already has
// fresh payloads and the next request simply regenerates.
func (s *Service) persist(ctx context.Context, log *zap.Logger, userID, dayKey string, fields map[string]snapshotdomain.Entry) {
	var err error
	if len(fields) == 1 {
		for field, entry := range fields {
			err = s.store.UpsertField(ctx, userID, dayKey, field, entry)
		}
	} else {
		err = s.store.UpsertFields(ctx, userID, dayKey, fields)
	}

	backend := s.store.Backend()
	if err != nil {
		log.Warn("snapshot write failed",
			zap.String("backend", backend),
			zap.String("day_key", dayKey),
			zap.Error(err),
		)
		s.metrics.RecordSnapshotWrite(ctx, backend, "failed")
		s.reportMetrics.IncWriteFailure(backend)
		return
	}
	s.metrics.RecordSnapshotWrite(ctx, backend, "success")
}

func (s *Service) recordLookup(ctx context.Context, report, result string) {
	s.metrics.RecordSnapshotLookup(ctx, report, result)
	s.reportMetrics.IncSnapshotCache(result)
}

func (s *Service) currentSettings() domain.Settings {
	cfg := s.settings.Get()
	return domain.Settings{
		Location:         cfg.Location(),
		RevenueMonths:    cfg.RevenueMonths,
		CashFlowMonths:   cfg.CashFlowMonths,
		DashboardMonths:  cfg.DashboardMonths,
		PrintUsageMonths: cfg.PrintUsageMonths,
		EventMonths:      cfg.EventMonths,
		LookAheadDays:    cfg.LookAheadDays,
	}
}

// isFresh reports whether entry was generated on now's calendar day in loc.
func isFresh(entry snapshotdomain.Entry, now time.Time, loc *time.Location) bool {
	if len(entry.Payload) == 0 || entry.GeneratedAt.IsZero() {
		return false
	}
	return snapshotdomain.DayKey(entry.GeneratedAt, loc) == snapshotdomain.DayKey(now, loc)
}

func allFresh(snap *snapshotdomain.Snapshot, names []domain.Name, now time.Time, loc *time.Location) bool {
	if snap == nil {
		return false
	}
	for _, name := range names {
		entry, ok := snap.Entry(string(name))
		if !ok || !isFresh(entry, now, loc) {
			return false
		}
	}
	return true
}

func toResult(name domain.Name, entry snapshotdomain.Entry, cached bool) domain.ReportResult {
	counts := entry.SourceCounts
	if counts == nil {
		counts = map[string]int{}
	}
	return domain.ReportResult{
		Name:         name,
		GeneratedAt:  entry.GeneratedAt,
		Cached:       cached,
		SourceCounts: counts,
		Payload:      entry.Payload,
	}
}
