package generator

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/eventdesk/internal/finance"
	"github.com/smallbiznis/eventdesk/internal/report/domain"
)

// Services breaks down the services attached to valid events by type.
func Services(ds domain.Dataset, settings domain.Settings, now time.Time) domain.Services {
	v := newView(ds, settings, now)

	byType := finance.Tally{}
	events := make(map[string]struct{})
	total := 0
	for _, s := range v.allServices {
		if s.Removed {
			continue
		}
		if _, ok := v.validByID[s.EventID]; !ok {
			continue
		}
		byType.Inc(v.serviceTypeLabel(s.ServiceTypeID))
		events[s.EventID] = struct{}{}
		total++
	}

	return domain.Services{
		ByType: finance.Distribution(byType),
		Summary: domain.ServicesSummary{
			TotalServices:      total,
			EventsWithServices: len(events),
			AveragePerEvent:    finance.Average(decimal.NewFromInt(int64(total)), len(events)),
			DistinctTypes:      len(byType),
		},
	}
}
