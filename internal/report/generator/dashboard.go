package generator

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	entitydomain "github.com/smallbiznis/eventdesk/internal/entity/domain"
	"github.com/smallbiznis/eventdesk/internal/finance"
	"github.com/smallbiznis/eventdesk/internal/report/domain"
)

// Dashboard builds the home screen KPIs.
func Dashboard(ds domain.Dataset, settings domain.Settings, now time.Time) domain.DashboardPayload {
	v := newView(ds, settings, now)

	today := startOfDay(v.now)
	tomorrow := today.AddDate(0, 0, 1)
	days := settings.LookAheadDays
	if days < 0 {
		days = 0
	}
	horizon := tomorrow.AddDate(0, 0, days)

	payload := domain.DashboardPayload{
		Today: []domain.DashboardEvent{},
		Upcoming: domain.DashboardUpcoming{
			Days:        days,
			From:        tomorrow,
			To:          horizon,
			BookedValue: decimal.Zero,
			Events:      []domain.DashboardEvent{},
		},
	}

	for _, e := range v.valid {
		at := e.EventDate.In(v.loc)
		switch {
		case !at.Before(today) && at.Before(tomorrow):
			payload.Today = append(payload.Today, v.dashboardEvent(e))
		case !at.Before(tomorrow) && at.Before(horizon):
			payload.Upcoming.Events = append(payload.Upcoming.Events, v.dashboardEvent(e))
			payload.Upcoming.EventCount++
			payload.Upcoming.BookedValue = payload.Upcoming.BookedValue.Add(e.TotalValue)
		}
	}
	sortDashboardEvents(payload.Today)
	sortDashboardEvents(payload.Upcoming.Events)

	recv := v.receivables().Summary
	payload.Receivables = domain.DashboardReceivables{
		TotalPending:      recv.TotalPending,
		TotalOverdue:      recv.TotalOverdue,
		TotalReceivable:   recv.TotalReceivable,
		OverdueEventCount: recv.OverdueEventCount,
	}

	w := v.window(settings.DashboardMonths)
	revenue := finance.BucketByMonth(v.settledPayments(), w, paymentDate, paymentValue)
	costs := finance.BucketByMonth(v.activeCosts(), w, costDate, costValue)
	events := finance.BucketByMonth(v.valid, w, eventDate, eventValue)

	nets := make([]decimal.Decimal, len(revenue))
	for i := range revenue {
		nets[i] = revenue[i].Sum.Sub(costs[i].Sum)
	}
	running := finance.Cumulative(nets)

	payload.Months = make([]domain.DashboardMonth, 0, len(revenue))
	for i, b := range revenue {
		payload.Months = append(payload.Months, domain.DashboardMonth{
			Key:          b.Key,
			Label:        b.Label,
			Revenue:      b.Sum,
			PaymentCount: b.Count,
			Costs:        costs[i].Sum,
			Net:          nets[i],
			Cumulative:   running[i],
			EventCount:   events[i].Count,
		})
	}

	payload.CurrentMonth = v.currentMonth()

	for _, c := range v.allClients {
		if !c.Archived {
			payload.ActiveClients++
		}
	}
	return payload
}

// currentMonth is computed on its own so it is present even when the
// rollup window is configured to zero months.
func (v *view) currentMonth() domain.DashboardMonth {
	w := v.window(1)
	revenue := finance.BucketByMonth(v.settledPayments(), w, paymentDate, paymentValue)[0]
	costs := finance.BucketByMonth(v.activeCosts(), w, costDate, costValue)[0]
	events := finance.BucketByMonth(v.valid, w, eventDate, eventValue)[0]
	net := revenue.Sum.Sub(costs.Sum)
	return domain.DashboardMonth{
		Key:          revenue.Key,
		Label:        revenue.Label,
		Revenue:      revenue.Sum,
		PaymentCount: revenue.Count,
		Costs:        costs.Sum,
		Net:          net,
		Cumulative:   net,
		EventCount:   events.Count,
	}
}

func (v *view) dashboardEvent(e entitydomain.Event) domain.DashboardEvent {
	out := domain.DashboardEvent{
		EventID:    e.ID,
		ClientID:   e.ClientID,
		ClientName: v.clientName(e.ClientID),
		Type:       eventTypeLabel(e),
		Status:     string(e.Status),
		EventDate:  e.EventDate,
		TotalValue: e.TotalValue,
		Pending:    decimal.Zero,
		Overdue:    decimal.Zero,
	}
	if finance.Billable(e) {
		res := finance.ResolveEvent(e, v.payments, v.now)
		out.Pending = decimal.Max(res.Pending, decimal.Zero)
		out.Overdue = res.Overdue
	}
	return out
}

func sortDashboardEvents(events []domain.DashboardEvent) {
	sort.Slice(events, func(i, j int) bool {
		if !events[i].EventDate.Equal(events[j].EventDate) {
			return events[i].EventDate.Before(events[j].EventDate)
		}
		return events[i].EventID < events[j].EventID
	})
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
