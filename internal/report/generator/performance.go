package generator

import (
	"time"

	"github.com/shopspring/decimal"
	entitydomain "github.com/smallbiznis/eventdesk/internal/entity/domain"
	"github.com/smallbiznis/eventdesk/internal/finance"
	"github.com/smallbiznis/eventdesk/internal/report/domain"
)

// EventPerformance describes the event book: mix by type and status, the
// monthly event count and how much of the booked value was collected.
func EventPerformance(ds domain.Dataset, settings domain.Settings, now time.Time) domain.EventPerformance {
	v := newView(ds, settings, now)

	byType := finance.Tally{}
	byStatus := finance.Tally{}
	valueByType := finance.Tally{}
	summary := domain.EventPerformanceSummary{
		TotalEvents:    len(v.allEvents),
		ValidEvents:    len(v.valid),
		TotalBooked:    decimal.Zero,
		TotalCollected: decimal.Zero,
	}

	for _, e := range v.allEvents {
		if e.Status == entitydomain.EventStatusCancelled {
			summary.CancelledEvents++
		}
		if e.Archived != nil && *e.Archived {
			summary.ArchivedEvents++
		}
	}

	billable := 0
	for _, e := range v.valid {
		label := eventTypeLabel(e)
		byType.Inc(label)
		byStatus.Inc(string(e.Status))
		valueByType.Add(label, e.TotalValue)
		if e.Status == entitydomain.EventStatusCompleted {
			summary.CompletedEvents++
		}
		if !finance.Billable(e) {
			continue
		}
		billable++
		res := finance.ResolveEvent(e, v.payments, v.now)
		summary.TotalBooked = summary.TotalBooked.Add(e.TotalValue)
		summary.TotalCollected = summary.TotalCollected.Add(res.Paid)
	}

	summary.CompletionRate = finance.Percentage(decimal.NewFromInt(int64(summary.CompletedEvents)), decimal.NewFromInt(int64(summary.ValidEvents)))
	summary.AverageTicket = finance.Average(summary.TotalBooked, billable)
	summary.CollectionRate = finance.Percentage(summary.TotalCollected, summary.TotalBooked)

	buckets := finance.BucketByMonth(v.valid, v.window(settings.EventMonths), eventDate, eventValue)
	months := make([]domain.EventMonth, 0, len(buckets))
	for _, b := range buckets {
		months = append(months, domain.EventMonth{
			Key:         b.Key,
			Label:       b.Label,
			EventCount:  b.Count,
			BookedValue: b.Sum,
		})
	}

	return domain.EventPerformance{
		ByType:      finance.Distribution(byType),
		ByStatus:    finance.Distribution(byStatus),
		ValueByType: finance.Distribution(valueByType),
		Months:      months,
		Summary:     summary,
	}
}
