package generator

import (
	"time"

	"github.com/shopspring/decimal"
	entitydomain "github.com/smallbiznis/eventdesk/internal/entity/domain"
	"github.com/smallbiznis/eventdesk/internal/finance"
	"github.com/smallbiznis/eventdesk/internal/report/domain"
)

// PrintUsage reports photo prints delivered per month and per event type.
func PrintUsage(ds domain.Dataset, settings domain.Settings, now time.Time) domain.PrintUsage {
	v := newView(ds, settings, now)

	printed := make([]entitydomain.Event, 0, len(v.valid))
	for _, e := range v.valid {
		if prints(e) > 0 {
			printed = append(printed, e)
		}
	}

	byType := finance.Tally{}
	summary := domain.PrintUsageSummary{EventsWithPrints: len(printed)}
	for _, e := range printed {
		n := prints(e)
		byType.Add(eventTypeLabel(e), decimal.NewFromInt(int64(n)))
		summary.TotalPrints += int64(n)
		if n > summary.MaxPrints {
			summary.MaxPrints = n
		}
	}
	summary.AveragePerEvent = finance.Average(decimal.NewFromInt(summary.TotalPrints), len(printed))

	buckets := finance.BucketByMonth(printed, v.window(settings.PrintUsageMonths), eventDate, func(e entitydomain.Event) decimal.Decimal {
		return decimal.NewFromInt(int64(prints(e)))
	})
	months := make([]domain.PrintMonth, 0, len(buckets))
	for _, b := range buckets {
		months = append(months, domain.PrintMonth{
			Key:        b.Key,
			Label:      b.Label,
			Prints:     b.Sum.IntPart(),
			EventCount: b.Count,
		})
	}

	return domain.PrintUsage{
		Months:  months,
		ByType:  finance.Distribution(byType),
		Summary: summary,
	}
}

func prints(e entitydomain.Event) int {
	if e.PrintCount == nil {
		return 0
	}
	return *e.PrintCount
}
