package generator

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	entitydomain "github.com/smallbiznis/eventdesk/internal/entity/domain"
	"github.com/smallbiznis/eventdesk/internal/finance"
	"github.com/smallbiznis/eventdesk/internal/report/domain"
)

const (
	labelUnspecified   = "unspecified"
	labelUncategorized = "uncategorized"
	labelUnassigned    = "unassigned"
)

// view indexes a dataset for one generator call. It only reads from the
// dataset; every map and slice here is freshly allocated.
type view struct {
	now      time.Time
	loc      *time.Location
	settings domain.Settings

	valid      []entitydomain.Event
	validByID  map[string]entitydomain.Event
	payments   finance.PaymentIndex
	clients    map[string]entitydomain.Client
	channels   map[string]string
	costTypes  map[string]string
	srvTypes   map[string]string
	allEvents  []entitydomain.Event
	allPayments []entitydomain.Payment
	allCosts   []entitydomain.Cost
	allServices     []entitydomain.Service
	allClients []entitydomain.Client
}

func newView(ds domain.Dataset, settings domain.Settings, now time.Time) *view {
	loc := settings.Loc()
	v := &view{
		now:        now.In(loc),
		loc:        loc,
		settings:   settings,
		valid:      finance.FilterValid(ds.Events),
		payments:   finance.IndexPayments(ds.Payments),
		clients:    make(map[string]entitydomain.Client, len(ds.Clients)),
		channels:   make(map[string]string, len(ds.Channels)),
		costTypes:  make(map[string]string, len(ds.CostTypes)),
		srvTypes:   make(map[string]string, len(ds.ServiceTypes)),
		allEvents:  ds.Events,
		allPayments: ds.Payments,
		allCosts:   ds.Costs,
		allServices:     ds.Services,
		allClients: ds.Clients,
	}
	v.validByID = make(map[string]entitydomain.Event, len(v.valid))
	for _, e := range v.valid {
		v.validByID[e.ID] = e
	}
	for _, c := range ds.Clients {
		v.clients[c.ID] = c
	}
	for _, c := range ds.Channels {
		v.channels[c.ID] = c.Name
	}
	for _, c := range ds.CostTypes {
		v.costTypes[c.ID] = c.Name
	}
	for _, s := range ds.ServiceTypes {
		v.srvTypes[s.ID] = s.Name
	}
	return v
}

func (v *view) window(months int) finance.Window {
	return finance.Window{Months: months, Anchor: v.now}
}

// settledPayments are received payments attached to a valid event.
func (v *view) settledPayments() []entitydomain.Payment {
	out := make([]entitydomain.Payment, 0, len(v.allPayments))
	for _, p := range v.allPayments {
		if !finance.IsSettled(p) {
			continue
		}
		if _, ok := v.validByID[p.EventID]; !ok {
			continue
		}
		out = append(out, p)
	}
	return out
}

// activeCosts are non-removed costs attached to a valid event.
func (v *view) activeCosts() []entitydomain.Cost {
	out := make([]entitydomain.Cost, 0, len(v.allCosts))
	for _, c := range v.allCosts {
		if c.Removed {
			continue
		}
		if _, ok := v.validByID[c.EventID]; !ok {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (v *view) clientName(id string) string {
	return v.clients[id].Name
}

func (v *view) channelLabel(client entitydomain.Client) string {
	if client.ChannelID == nil {
		return labelUnassigned
	}
	name, ok := v.channels[strings.TrimSpace(*client.ChannelID)]
	if !ok || strings.TrimSpace(name) == "" {
		return labelUnassigned
	}
	return name
}

func (v *view) costTypeLabel(id string) string {
	if name := strings.TrimSpace(v.costTypes[id]); name != "" {
		return name
	}
	return labelUncategorized
}

func (v *view) serviceTypeLabel(id string) string {
	if name := strings.TrimSpace(v.srvTypes[id]); name != "" {
		return name
	}
	return labelUncategorized
}

func eventTypeLabel(e entitydomain.Event) string {
	if t := strings.TrimSpace(e.Type); t != "" {
		return t
	}
	return labelUnspecified
}

func paymentDate(p entitydomain.Payment) (time.Time, bool) { return p.PaymentDate, !p.PaymentDate.IsZero() }
func paymentValue(p entitydomain.Payment) decimal.Decimal  { return p.Value }
func costDate(c entitydomain.Cost) (time.Time, bool)       { return c.CreatedDate, !c.CreatedDate.IsZero() }
func costValue(c entitydomain.Cost) decimal.Decimal        { return c.Effective() }
func eventDate(e entitydomain.Event) (time.Time, bool)     { return e.EventDate, !e.EventDate.IsZero() }
func eventValue(e entitydomain.Event) decimal.Decimal      { return e.TotalValue }
