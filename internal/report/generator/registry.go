package generator

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/smallbiznis/eventdesk/internal/report/domain"
)

// Func renders one named payload from a dataset.
type Func func(ds domain.Dataset, settings domain.Settings, now time.Time) any

var registry = map[domain.Name]Func{
	domain.ReportReceivables:      func(ds domain.Dataset, s domain.Settings, now time.Time) any { return Receivables(ds, s, now) },
	domain.ReportMonthlyRevenue:   func(ds domain.Dataset, s domain.Settings, now time.Time) any { return MonthlyRevenue(ds, s, now) },
	domain.ReportEventPerformance: func(ds domain.Dataset, s domain.Settings, now time.Time) any { return EventPerformance(ds, s, now) },
	domain.ReportCashFlow:         func(ds domain.Dataset, s domain.Settings, now time.Time) any { return CashFlow(ds, s, now) },
	domain.ReportServices:         func(ds domain.Dataset, s domain.Settings, now time.Time) any { return Services(ds, s, now) },
	domain.ReportChannels:         func(ds domain.Dataset, s domain.Settings, now time.Time) any { return Channels(ds, s, now) },
	domain.ReportPrintUsage:       func(ds domain.Dataset, s domain.Settings, now time.Time) any { return PrintUsage(ds, s, now) },
	domain.Dashboard:              func(ds domain.Dataset, s domain.Settings, now time.Time) any { return Dashboard(ds, s, now) },
}

// Generate renders name and encodes it as JSON.
func Generate(name domain.Name, ds domain.Dataset, settings domain.Settings, now time.Time) (json.RawMessage, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, domain.ErrUnknownReport
	}
	payload, err := json.Marshal(fn(ds, settings, now))
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", name, err)
	}
	return payload, nil
}
