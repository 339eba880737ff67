package generator

import (
	"time"

	"github.com/shopspring/decimal"
	entitydomain "github.com/smallbiznis/eventdesk/internal/entity/domain"
	"github.com/smallbiznis/eventdesk/internal/report/domain"
)

var fixtureNow = time.Date(2026, 5, 20, 10, 0, 0, 0, time.UTC)

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func ptr[T any](v T) *T { return &v }

func testSettings() domain.Settings {
	return domain.Settings{
		Location:         time.UTC,
		RevenueMonths:    12,
		CashFlowMonths:   6,
		DashboardMonths:  6,
		PrintUsageMonths: 12,
		EventMonths:      12,
		LookAheadDays:    7,
	}
}

func day(month time.Month, d int) time.Time {
	return time.Date(2026, month, d, 12, 0, 0, 0, time.UTC)
}

// fixtureDataset models a small studio: two clients, a cancelled and an
// archived event that must never count, and one free event.
func fixtureDataset() domain.Dataset {
	return domain.Dataset{
		Clients: []entitydomain.Client{
			{ID: "c1", Name: "Ana", ChannelID: ptr("ch1")},
			{ID: "c2", Name: "Bruno"},
			{ID: "c3", Name: "Old client", Archived: true, ChannelID: ptr("ch2")},
		},
		Channels: []entitydomain.Channel{
			{ID: "ch1", Name: "Instagram"},
			{ID: "ch2", Name: "Referral"},
		},
		ServiceTypes: []entitydomain.ServiceType{{ID: "st1", Name: "Photo booth"}, {ID: "st2", Name: "DJ"}},
		CostTypes:    []entitydomain.CostType{{ID: "ct1", Name: "Staff"}, {ID: "ct2", Name: "Supplies"}},
		Events: []entitydomain.Event{
			{ID: "e1", ClientID: "c1", Type: "wedding", EventDate: day(time.March, 14), TotalValue: dec("1000"), Status: entitydomain.EventStatusCompleted, PrintCount: ptr(120)},
			{ID: "e2", ClientID: "c1", Type: "birthday", EventDate: day(time.May, 20), TotalValue: dec("500"), Status: entitydomain.EventStatusConfirmed, PaymentDueDate: ptr(day(time.May, 10)), PrintCount: ptr(30)},
			{ID: "e3", ClientID: "c2", Type: "corporate", EventDate: day(time.May, 24), TotalValue: dec("800"), Status: entitydomain.EventStatusScheduled},
			{ID: "e4", ClientID: "c2", Type: "wedding", EventDate: day(time.April, 2), TotalValue: dec("900"), Status: entitydomain.EventStatusCancelled, PrintCount: ptr(999)},
			{ID: "e5", ClientID: "c3", Type: "wedding", EventDate: day(time.February, 2), TotalValue: dec("700"), Status: entitydomain.EventStatusCompleted, Archived: ptr(true)},
			{ID: "e6", ClientID: "c2", Type: "", EventDate: day(time.July, 1), TotalValue: decimal.Zero, Status: entitydomain.EventStatusScheduled},
		},
		Payments: []entitydomain.Payment{
			{ID: "p1", EventID: "e1", Value: dec("1000"), PaymentDate: day(time.March, 1), Status: entitydomain.PaymentStatusPaid},
			{ID: "p2", EventID: "e2", Value: dec("200"), PaymentDate: day(time.April, 5), Status: entitydomain.PaymentStatusPaid},
			{ID: "p3", EventID: "e2", Value: dec("300"), PaymentDate: day(time.May, 1), Status: entitydomain.PaymentStatusPaid, Cancelled: true},
			{ID: "p4", EventID: "e3", Value: dec("100"), PaymentDate: day(time.May, 2), Status: entitydomain.PaymentStatusPaid},
			{ID: "p5", EventID: "e4", Value: dec("900"), PaymentDate: day(time.April, 1), Status: entitydomain.PaymentStatusPaid},
			{ID: "p6", EventID: "e3", Value: dec("50"), PaymentDate: day(time.May, 3), Status: entitydomain.PaymentStatusPending},
		},
		Costs: []entitydomain.Cost{
			{ID: "k1", EventID: "e1", CostTypeID: "ct1", UnitValue: dec("150"), Quantity: 2, CreatedDate: day(time.March, 14)},
			{ID: "k2", EventID: "e2", CostTypeID: "ct2", UnitValue: dec("40"), Quantity: 0, CreatedDate: day(time.May, 5)},
			{ID: "k3", EventID: "e2", CostTypeID: "ct2", UnitValue: dec("999"), Quantity: 1, CreatedDate: day(time.May, 5), Removed: true},
			{ID: "k4", EventID: "e4", CostTypeID: "ct1", UnitValue: dec("500"), Quantity: 1, CreatedDate: day(time.April, 2)},
		},
		Services: []entitydomain.Service{
			{ID: "s1", EventID: "e1", ServiceTypeID: "st1"},
			{ID: "s2", EventID: "e1", ServiceTypeID: "st2"},
			{ID: "s3", EventID: "e2", ServiceTypeID: "st1"},
			{ID: "s4", EventID: "e3", ServiceTypeID: "st1", Removed: true},
			{ID: "s5", EventID: "e4", ServiceTypeID: "st2"},
		},
	}
}
