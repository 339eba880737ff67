package generator

import (
	"bytes"
	"encoding/json"
	"reflect"
	"testing"
	"time"

	entitydomain "github.com/smallbiznis/eventdesk/internal/entity/domain"
	"github.com/smallbiznis/eventdesk/internal/finance"
	"github.com/smallbiznis/eventdesk/internal/report/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sliceValue(t *testing.T, slices []finance.Slice, label string) string {
	t.Helper()
	for _, s := range slices {
		if s.Label == label {
			return s.Value.String()
		}
	}
	t.Fatalf("label %q not found in %+v", label, slices)
	return ""
}

func TestReceivablesOmitsSettledEvents(t *testing.T) {
	ds := domain.Dataset{
		Clients: []entitydomain.Client{{ID: "c1", Name: "Ana"}},
		Events: []entitydomain.Event{
			{ID: "paid", ClientID: "c1", EventDate: day(time.April, 1), TotalValue: dec("300"), Status: entitydomain.EventStatusCompleted},
			{ID: "open", ClientID: "c1", EventDate: day(time.April, 8), TotalValue: dec("500"), Status: entitydomain.EventStatusConfirmed},
		},
		Payments: []entitydomain.Payment{
			{ID: "p1", EventID: "paid", Value: dec("300"), Status: entitydomain.PaymentStatusPaid},
			{ID: "p2", EventID: "open", Value: dec("300"), Status: entitydomain.PaymentStatusPaid},
		},
	}
	got := Receivables(ds, testSettings(), fixtureNow)

	require.Len(t, got.Clients, 1)
	client := got.Clients[0]
	assert.Equal(t, "c1", client.ClientID)
	assert.True(t, client.TotalPending.Equal(dec("200")), client.TotalPending.String())
	assert.True(t, client.TotalOverdue.IsZero())
	require.Len(t, client.Events, 1)
	assert.Equal(t, "open", client.Events[0].EventID)
	assert.Equal(t, 1, got.Summary.EventCount)
	assert.Equal(t, 1, got.Summary.ClientCount)
}

func TestReceivablesOverFixture(t *testing.T) {
	got := Receivables(fixtureDataset(), testSettings(), fixtureNow)

	// c1: e2 is past due with 300 open. c2: e3 has 700 pending, no due date.
	require.Len(t, got.Clients, 2)
	assert.Equal(t, "c2", got.Clients[0].ClientID)
	assert.True(t, got.Clients[0].TotalReceivable.Equal(dec("700")))
	assert.Equal(t, "c1", got.Clients[1].ClientID)
	assert.True(t, got.Clients[1].TotalOverdue.Equal(dec("300")))
	assert.True(t, got.Clients[1].Events[0].IsOverdue)

	assert.True(t, got.Summary.TotalPending.Equal(dec("700")))
	assert.True(t, got.Summary.TotalOverdue.Equal(dec("300")))
	assert.True(t, got.Summary.TotalReceivable.Equal(dec("1000")))
	assert.Equal(t, 1, got.Summary.OverdueEventCount)
}

func TestReceivablesSkipsCredits(t *testing.T) {
	ds := domain.Dataset{
		Events:   []entitydomain.Event{{ID: "e", ClientID: "c", TotalValue: dec("100"), Status: entitydomain.EventStatusCompleted}},
		Payments: []entitydomain.Payment{{ID: "p", EventID: "e", Value: dec("150"), Status: entitydomain.PaymentStatusPaid}},
	}
	got := Receivables(ds, testSettings(), fixtureNow)
	assert.Empty(t, got.Clients)
	assert.NotNil(t, got.Clients)
}

func TestMonthlyRevenue(t *testing.T) {
	got := MonthlyRevenue(fixtureDataset(), testSettings(), fixtureNow)

	require.Len(t, got.Months, 12)
	assert.Equal(t, "2025-06", got.Months[0].Key)
	assert.Equal(t, "2026-05", got.Months[11].Key)

	march, april, may := got.Months[9], got.Months[10], got.Months[11]
	assert.True(t, march.Revenue.Equal(dec("1000")))
	assert.True(t, april.Revenue.Equal(dec("200")), "cancelled event payment excluded")
	assert.True(t, may.Revenue.Equal(dec("100")), "cancelled and pending payments excluded")
	assert.Equal(t, 1, may.PaymentCount)
	assert.True(t, may.BookedValue.Equal(dec("1300")))
	assert.Equal(t, 2, may.EventCount)

	assert.True(t, got.Summary.TotalRevenue.Equal(dec("1300")))
	assert.Equal(t, "2026-03", got.Summary.BestMonth)
	assert.True(t, got.Summary.GrowthPercentage.Equal(dec("-50")), got.Summary.GrowthPercentage.String())
	assert.True(t, got.Summary.MonthlyAverage.Equal(dec("108.33")), got.Summary.MonthlyAverage.String())
}

func TestEventPerformance(t *testing.T) {
	got := EventPerformance(fixtureDataset(), testSettings(), fixtureNow)

	s := got.Summary
	assert.Equal(t, 6, s.TotalEvents)
	assert.Equal(t, 4, s.ValidEvents)
	assert.Equal(t, 1, s.CancelledEvents)
	assert.Equal(t, 1, s.ArchivedEvents)
	assert.Equal(t, 1, s.CompletedEvents)
	assert.True(t, s.CompletionRate.Equal(dec("25")))
	assert.True(t, s.TotalBooked.Equal(dec("2300")))
	assert.True(t, s.TotalCollected.Equal(dec("1300")))
	assert.True(t, s.AverageTicket.Equal(dec("766.67")), s.AverageTicket.String())
	assert.True(t, s.CollectionRate.Equal(dec("56.52")), s.CollectionRate.String())

	assert.Equal(t, "1", sliceValue(t, got.ByType, "wedding"))
	assert.Equal(t, "1", sliceValue(t, got.ByType, "unspecified"))
	assert.Equal(t, "800", sliceValue(t, got.ValueByType, "corporate"))
	assert.Len(t, got.Months, 12)
}

func TestCashFlowRunningBalance(t *testing.T) {
	got := CashFlow(fixtureDataset(), testSettings(), fixtureNow)

	require.Len(t, got.Months, 6)
	assert.Equal(t, "2025-12", got.Months[0].Key)
	march, april, may := got.Months[3], got.Months[4], got.Months[5]

	assert.True(t, march.Inflow.Equal(dec("1000")))
	assert.True(t, march.Outflow.Equal(dec("300")))
	assert.True(t, march.Cumulative.Equal(dec("700")))
	assert.True(t, april.Outflow.IsZero(), "costs of cancelled events excluded")
	assert.True(t, april.Cumulative.Equal(dec("900")))
	assert.True(t, may.Outflow.Equal(dec("40")), "removed cost excluded and zero quantity counted once")
	assert.True(t, may.Cumulative.Equal(dec("960")))

	for i := 1; i < len(got.Months); i++ {
		want := got.Months[i-1].Cumulative.Add(got.Months[i].Net)
		assert.True(t, got.Months[i].Cumulative.Equal(want), "month %d", i)
	}

	assert.True(t, got.Summary.Net.Equal(dec("960")))
	assert.True(t, got.Summary.MarginPercentage.Equal(dec("73.85")), got.Summary.MarginPercentage.String())
	assert.Equal(t, "300", sliceValue(t, got.CostBreakdown, "Staff"))
	assert.Equal(t, "40", sliceValue(t, got.CostBreakdown, "Supplies"))
}

func TestServices(t *testing.T) {
	got := Services(fixtureDataset(), testSettings(), fixtureNow)
	assert.Equal(t, 3, got.Summary.TotalServices)
	assert.Equal(t, 2, got.Summary.EventsWithServices)
	assert.Equal(t, 2, got.Summary.DistinctTypes)
	assert.True(t, got.Summary.AveragePerEvent.Equal(dec("1.5")))
	require.Len(t, got.ByType, 2)
	assert.Equal(t, "Photo booth", got.ByType[0].Label)
	assert.True(t, got.ByType[0].Percentage.Equal(dec("66.67")))
}

func TestChannels(t *testing.T) {
	got := Channels(fixtureDataset(), testSettings(), fixtureNow)

	assert.Equal(t, 2, got.Summary.TotalClients)
	assert.Equal(t, 1, got.Summary.AttributedClients)
	assert.True(t, got.Summary.AttributedPercentage.Equal(dec("50")))
	assert.Equal(t, "Instagram", got.Summary.TopChannel)

	assert.Equal(t, "1", sliceValue(t, got.Clients, "Instagram"))
	assert.Equal(t, "0", sliceValue(t, got.Clients, "Referral"))
	assert.Equal(t, "2", sliceValue(t, got.Events, "unassigned"))
	assert.Equal(t, "1200", sliceValue(t, got.Revenue, "Instagram"))
	assert.Equal(t, "100", sliceValue(t, got.Revenue, "unassigned"))
}

func TestPrintUsage(t *testing.T) {
	got := PrintUsage(fixtureDataset(), testSettings(), fixtureNow)
	assert.Equal(t, int64(150), got.Summary.TotalPrints)
	assert.Equal(t, 2, got.Summary.EventsWithPrints)
	assert.Equal(t, 120, got.Summary.MaxPrints)
	assert.True(t, got.Summary.AveragePerEvent.Equal(dec("75")))
	require.Len(t, got.Months, 12)
	assert.Equal(t, int64(120), got.Months[9].Prints)
	assert.Equal(t, int64(30), got.Months[11].Prints)
	assert.Equal(t, "120", sliceValue(t, got.ByType, "wedding"))
}

func TestDashboard(t *testing.T) {
	got := Dashboard(fixtureDataset(), testSettings(), fixtureNow)

	require.Len(t, got.Today, 1)
	assert.Equal(t, "e2", got.Today[0].EventID)
	assert.True(t, got.Today[0].Overdue.Equal(dec("300")))

	assert.Equal(t, 7, got.Upcoming.Days)
	assert.Equal(t, 1, got.Upcoming.EventCount)
	assert.Equal(t, "e3", got.Upcoming.Events[0].EventID)
	assert.True(t, got.Upcoming.BookedValue.Equal(dec("800")))

	assert.Equal(t, "2026-05", got.CurrentMonth.Key)
	assert.True(t, got.CurrentMonth.Revenue.Equal(dec("100")))
	assert.True(t, got.CurrentMonth.Costs.Equal(dec("40")))
	assert.True(t, got.CurrentMonth.Net.Equal(dec("60")))
	assert.Equal(t, 2, got.CurrentMonth.EventCount)

	assert.True(t, got.Receivables.TotalReceivable.Equal(dec("1000")))
	require.Len(t, got.Months, 6)
	assert.True(t, got.Months[5].Cumulative.Equal(dec("960")))
	assert.Equal(t, 2, got.ActiveClients)
}

func TestDashboardUsesConfiguredTimezone(t *testing.T) {
	settings := testSettings()
	settings.Location = time.FixedZone("UTC-12", -12*3600)
	// At UTC-12 it is still May 19th, so e2 moves from today to upcoming.
	got := Dashboard(fixtureDataset(), settings, fixtureNow)
	assert.Empty(t, got.Today)
	assert.Equal(t, 2, got.Upcoming.EventCount)
}

func TestGeneratorsDoNotMutateDataset(t *testing.T) {
	ds := fixtureDataset()
	before := fixtureDataset()
	for _, name := range append(domain.Reports(), domain.Dashboard) {
		_, err := Generate(name, ds, testSettings(), fixtureNow)
		require.NoError(t, err)
	}
	assert.True(t, reflect.DeepEqual(before, ds), "dataset mutated")
}

func TestGenerateIsDeterministic(t *testing.T) {
	for _, name := range append(domain.Reports(), domain.Dashboard) {
		first, err := Generate(name, fixtureDataset(), testSettings(), fixtureNow)
		require.NoError(t, err)
		second, err := Generate(name, fixtureDataset(), testSettings(), fixtureNow)
		require.NoError(t, err)
		assert.True(t, bytes.Equal(first, second), "%s not deterministic", name)
		assert.True(t, json.Valid(first))
	}
}

func TestGenerateEmptyDatasetProducesArrays(t *testing.T) {
	payload, err := Generate(domain.ReportReceivables, domain.Dataset{}, testSettings(), fixtureNow)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"clients":[]`)

	_, err = Generate("nope", domain.Dataset{}, testSettings(), fixtureNow)
	assert.ErrorIs(t, err, domain.ErrUnknownReport)
}
