package dataset

import (
	"context"
	"fmt"

	entitydomain "github.com/smallbiznis/eventdesk/internal/entity/domain"
	"github.com/smallbiznis/eventdesk/internal/observability/tracing"
	"github.com/smallbiznis/eventdesk/internal/report/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
)

// Loader fetches every collection a generation run needs.
type Loader struct {
	reader entitydomain.Reader
}

func NewLoader(reader entitydomain.Reader) *Loader {
	return &Loader{reader: reader}
}

// Load reads all collections in parallel and returns only once every read
// has succeeded. The first failure cancels the remaining reads and the
// partial dataset is discarded.
func (l *Loader) Load(ctx context.Context, userID string) (domain.Dataset, error) {
	ctx, span := tracing.Tracer("report").Start(ctx, "dataset.load")
	defer span.End()

	var ds domain.Dataset
	g, gctx := errgroup.WithContext(ctx)

	fetch(gctx, g, "events", &ds.Events, userID, l.reader.ListEvents)
	fetch(gctx, g, "payments", &ds.Payments, userID, l.reader.ListPayments)
	fetch(gctx, g, "costs", &ds.Costs, userID, l.reader.ListCosts)
	fetch(gctx, g, "services", &ds.Services, userID, l.reader.ListServices)
	fetch(gctx, g, "clients", &ds.Clients, userID, l.reader.ListClients)
	fetch(gctx, g, "channels", &ds.Channels, userID, l.reader.ListChannels)
	fetch(gctx, g, "service_types", &ds.ServiceTypes, userID, l.reader.ListServiceTypes)
	fetch(gctx, g, "cost_types", &ds.CostTypes, userID, l.reader.ListCostTypes)

	if err := g.Wait(); err != nil {
		span.RecordError(tracing.SafeError(err))
		span.SetStatus(codes.Error, "dataset load failed")
		return domain.Dataset{}, err
	}

	span.SetAttributes(
		attribute.Int("dataset.events", len(ds.Events)),
		attribute.Int("dataset.payments", len(ds.Payments)),
		attribute.Int("dataset.costs", len(ds.Costs)),
	)
	return ds, nil
}

// fetch schedules one read. Each goroutine writes only its own dst, and
// g.Wait orders those writes before the dataset is used.
func fetch[T any](ctx context.Context, g *errgroup.Group, collection string, dst *[]T, userID string, list func(context.Context, string) ([]T, error)) {
	g.Go(func() error {
		rows, err := list(ctx, userID)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", domain.ErrDatasetUnavailable, collection, err)
		}
		if rows == nil {
			rows = []T{}
		}
		*dst = rows
		return nil
	})
}
