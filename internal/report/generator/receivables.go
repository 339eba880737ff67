package generator

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/eventdesk/internal/finance"
	"github.com/smallbiznis/eventdesk/internal/report/domain"
)

// Receivables lists what each client still owes. It is a to-do list: only
// events with money pending or overdue appear, and a client with none of
// those is left out entirely.
func Receivables(ds domain.Dataset, settings domain.Settings, now time.Time) domain.Receivables {
	return newView(ds, settings, now).receivables()
}

func (v *view) receivables() domain.Receivables {
	byClient := make(map[string]*domain.ReceivableClient)
	summary := domain.ReceivablesSummary{
		TotalPending:    decimal.Zero,
		TotalOverdue:    decimal.Zero,
		TotalReceivable: decimal.Zero,
	}

	for _, e := range v.valid {
		if !finance.Billable(e) {
			continue
		}
		res := finance.ResolveEvent(e, v.payments, v.now)
		if !res.Outstanding() {
			continue
		}

		client, ok := byClient[e.ClientID]
		if !ok {
			client = &domain.ReceivableClient{
				ClientID:        e.ClientID,
				ClientName:      v.clientName(e.ClientID),
				TotalPending:    decimal.Zero,
				TotalOverdue:    decimal.Zero,
				TotalReceivable: decimal.Zero,
				Events:          []domain.ReceivableEvent{},
			}
			byClient[e.ClientID] = client
		}

		pending := decimal.Max(res.Pending, decimal.Zero)
		client.Events = append(client.Events, domain.ReceivableEvent{
			EventID:      e.ID,
			Type:         eventTypeLabel(e),
			EventDate:    e.EventDate,
			DueDate:      e.PaymentDueDate,
			TotalValue:   e.TotalValue,
			Paid:         res.Paid,
			Pending:      pending,
			Overdue:      res.Overdue,
			PaymentCount: res.PaymentCount,
			IsOverdue:    res.IsOverdue,
		})
		client.TotalPending = client.TotalPending.Add(pending)
		client.TotalOverdue = client.TotalOverdue.Add(res.Overdue)
		client.TotalReceivable = client.TotalReceivable.Add(res.Receivable())

		summary.EventCount++
		if res.IsOverdue {
			summary.OverdueEventCount++
		}
	}

	clients := make([]domain.ReceivableClient, 0, len(byClient))
	for _, c := range byClient {
		sort.Slice(c.Events, func(i, j int) bool {
			a, b := c.Events[i], c.Events[j]
			if !a.EventDate.Equal(b.EventDate) {
				return a.EventDate.Before(b.EventDate)
			}
			return a.EventID < b.EventID
		})
		clients = append(clients, *c)
		summary.TotalPending = summary.TotalPending.Add(c.TotalPending)
		summary.TotalOverdue = summary.TotalOverdue.Add(c.TotalOverdue)
		summary.TotalReceivable = summary.TotalReceivable.Add(c.TotalReceivable)
	}
	sort.Slice(clients, func(i, j int) bool {
		a, b := clients[i], clients[j]
		if !a.TotalReceivable.Equal(b.TotalReceivable) {
			return a.TotalReceivable.GreaterThan(b.TotalReceivable)
		}
		if a.ClientName != b.ClientName {
			return a.ClientName < b.ClientName
		}
		return a.ClientID < b.ClientID
	})
	summary.ClientCount = len(clients)

	return domain.Receivables{Clients: clients, Summary: summary}
}
