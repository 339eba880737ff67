package generator

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/eventdesk/internal/finance"
	"github.com/smallbiznis/eventdesk/internal/report/domain"
)

// Channels attributes clients, events and received revenue to the
// acquisition channel of the client. Every known channel appears even
// with nothing attributed to it.
func Channels(ds domain.Dataset, settings domain.Settings, now time.Time) domain.Channels {
	v := newView(ds, settings, now)

	clients := finance.Tally{}
	events := finance.Tally{}
	revenue := finance.Tally{}
	for _, name := range v.channels {
		if name == "" {
			continue
		}
		clients.Touch(name)
		events.Touch(name)
		revenue.Touch(name)
	}

	summary := domain.ChannelsSummary{}
	for _, c := range v.allClients {
		if c.Archived {
			continue
		}
		label := v.channelLabel(c)
		clients.Inc(label)
		summary.TotalClients++
		if label != labelUnassigned {
			summary.AttributedClients++
		}
	}

	labelFor := func(eventID string) string {
		e := v.validByID[eventID]
		client, ok := v.clients[e.ClientID]
		if !ok {
			return labelUnassigned
		}
		return v.channelLabel(client)
	}
	for _, e := range v.valid {
		events.Inc(labelFor(e.ID))
	}
	for _, p := range v.settledPayments() {
		revenue.Add(labelFor(p.EventID), p.Value)
	}

	summary.AttributedPercentage = finance.Percentage(
		decimal.NewFromInt(int64(summary.AttributedClients)),
		decimal.NewFromInt(int64(summary.TotalClients)),
	)

	revenueSlices := finance.Distribution(revenue)
	for _, s := range revenueSlices {
		if s.Label != labelUnassigned && s.Value.IsPositive() {
			summary.TopChannel = s.Label
			break
		}
	}

	return domain.Channels{
		Clients: finance.Distribution(clients),
		Events:  finance.Distribution(events),
		Revenue: revenueSlices,
		Summary: summary,
	}
}
