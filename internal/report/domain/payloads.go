package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/eventdesk/internal/finance"
)

// Money fields marshal as decimal strings and every slice is non-nil, so a
// payload re-encodes to the same bytes.

type Receivables struct {
	Clients []ReceivableClient `json:"clients"`
	Summary ReceivablesSummary `json:"summary"`
}

type ReceivableClient struct {
	ClientID        string            `json:"client_id"`
	ClientName      string            `json:"client_name"`
	TotalPending    decimal.Decimal   `json:"total_pending"`
	TotalOverdue    decimal.Decimal   `json:"total_overdue"`
	TotalReceivable decimal.Decimal   `json:"total_receivable"`
	Events          []ReceivableEvent `json:"events"`
}

type ReceivableEvent struct {
	EventID      string          `json:"event_id"`
	Type         string          `json:"type"`
	EventDate    time.Time       `json:"event_date"`
	DueDate      *time.Time      `json:"due_date,omitempty"`
	TotalValue   decimal.Decimal `json:"total_value"`
	Paid         decimal.Decimal `json:"paid"`
	Pending      decimal.Decimal `json:"pending"`
	Overdue      decimal.Decimal `json:"overdue"`
	PaymentCount int             `json:"payment_count"`
	IsOverdue    bool            `json:"is_overdue"`
}

type ReceivablesSummary struct {
	TotalPending      decimal.Decimal `json:"total_pending"`
	TotalOverdue      decimal.Decimal `json:"total_overdue"`
	TotalReceivable   decimal.Decimal `json:"total_receivable"`
	ClientCount       int             `json:"client_count"`
	EventCount        int             `json:"event_count"`
	OverdueEventCount int             `json:"overdue_event_count"`
}

type MonthlyRevenue struct {
	Months  []RevenueMonth `json:"months"`
	Summary RevenueSummary `json:"summary"`
}

type RevenueMonth struct {
	Key            string          `json:"key"`
	Label          string          `json:"label"`
	Revenue        decimal.Decimal `json:"revenue"`
	PaymentCount   int             `json:"payment_count"`
	AveragePayment decimal.Decimal `json:"average_payment"`
	MinPayment     decimal.Decimal `json:"min_payment"`
	MaxPayment     decimal.Decimal `json:"max_payment"`
	BookedValue    decimal.Decimal `json:"booked_value"`
	EventCount     int             `json:"event_count"`
}

type RevenueSummary struct {
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TotalBooked      decimal.Decimal `json:"total_booked"`
	MonthlyAverage   decimal.Decimal `json:"monthly_average"`
	BestMonth        string          `json:"best_month"`
	BestMonthRevenue decimal.Decimal `json:"best_month_revenue"`
	GrowthPercentage decimal.Decimal `json:"growth_percentage"`
	PaymentCount     int             `json:"payment_count"`
}

type EventPerformance struct {
	ByType      []finance.Slice         `json:"by_type"`
	ByStatus    []finance.Slice         `json:"by_status"`
	ValueByType []finance.Slice         `json:"value_by_type"`
	Months      []EventMonth            `json:"months"`
	Summary     EventPerformanceSummary `json:"summary"`
}

type EventMonth struct {
	Key         string          `json:"key"`
	Label       string          `json:"label"`
	EventCount  int             `json:"event_count"`
	BookedValue decimal.Decimal `json:"booked_value"`
}

type EventPerformanceSummary struct {
	TotalEvents     int             `json:"total_events"`
	ValidEvents     int             `json:"valid_events"`
	CancelledEvents int             `json:"cancelled_events"`
	ArchivedEvents  int             `json:"archived_events"`
	CompletedEvents int             `json:"completed_events"`
	CompletionRate  decimal.Decimal `json:"completion_rate"`
	AverageTicket   decimal.Decimal `json:"average_ticket"`
	TotalBooked     decimal.Decimal `json:"total_booked"`
	TotalCollected  decimal.Decimal `json:"total_collected"`
	CollectionRate  decimal.Decimal `json:"collection_rate"`
}

type CashFlow struct {
	Months        []CashFlowMonth `json:"months"`
	CostBreakdown []finance.Slice `json:"cost_breakdown"`
	Summary       CashFlowSummary `json:"summary"`
}

type CashFlowMonth struct {
	Key          string          `json:"key"`
	Label        string          `json:"label"`
	Inflow       decimal.Decimal `json:"inflow"`
	Outflow      decimal.Decimal `json:"outflow"`
	Net          decimal.Decimal `json:"net"`
	Cumulative   decimal.Decimal `json:"cumulative"`
	PaymentCount int             `json:"payment_count"`
	CostCount    int             `json:"cost_count"`
}

type CashFlowSummary struct {
	TotalInflow      decimal.Decimal `json:"total_inflow"`
	TotalOutflow     decimal.Decimal `json:"total_outflow"`
	Net              decimal.Decimal `json:"net"`
	MarginPercentage decimal.Decimal `json:"margin_percentage"`
	AverageNet       decimal.Decimal `json:"average_net"`
}

type Services struct {
	ByType  []finance.Slice `json:"by_type"`
	Summary ServicesSummary `json:"summary"`
}

type ServicesSummary struct {
	TotalServices      int             `json:"total_services"`
	EventsWithServices int             `json:"events_with_services"`
	AveragePerEvent    decimal.Decimal `json:"average_per_event"`
	DistinctTypes      int             `json:"distinct_types"`
}

type Channels struct {
	Clients []finance.Slice `json:"clients"`
	Events  []finance.Slice `json:"events"`
	Revenue []finance.Slice `json:"revenue"`
	Summary ChannelsSummary `json:"summary"`
}

type ChannelsSummary struct {
	TotalClients         int             `json:"total_clients"`
	AttributedClients    int             `json:"attributed_clients"`
	AttributedPercentage decimal.Decimal `json:"attributed_percentage"`
	TopChannel           string          `json:"top_channel"`
}

type PrintUsage struct {
	Months  []PrintMonth      `json:"months"`
	ByType  []finance.Slice   `json:"by_type"`
	Summary PrintUsageSummary `json:"summary"`
}

type PrintMonth struct {
	Key        string `json:"key"`
	Label      string `json:"label"`
	Prints     int64  `json:"prints"`
	EventCount int    `json:"event_count"`
}

type PrintUsageSummary struct {
	TotalPrints      int64           `json:"total_prints"`
	EventsWithPrints int             `json:"events_with_prints"`
	AveragePerEvent  decimal.Decimal `json:"average_per_event"`
	MaxPrints        int             `json:"max_prints"`
}

type DashboardPayload struct {
	Today         []DashboardEvent     `json:"today"`
	CurrentMonth  DashboardMonth       `json:"current_month"`
	Upcoming      DashboardUpcoming    `json:"upcoming"`
	Receivables   DashboardReceivables `json:"receivables"`
	Months        []DashboardMonth     `json:"months"`
	ActiveClients int                  `json:"active_clients"`
}

type DashboardEvent struct {
	EventID    string          `json:"event_id"`
	ClientID   string          `json:"client_id"`
	ClientName string          `json:"client_name"`
	Type       string          `json:"type"`
	Status     string          `json:"status"`
	EventDate  time.Time       `json:"event_date"`
	TotalValue decimal.Decimal `json:"total_value"`
	Pending    decimal.Decimal `json:"pending"`
	Overdue    decimal.Decimal `json:"overdue"`
}

type DashboardMonth struct {
	Key          string          `json:"key"`
	Label        string          `json:"label"`
	Revenue      decimal.Decimal `json:"revenue"`
	PaymentCount int             `json:"payment_count"`
	Costs        decimal.Decimal `json:"costs"`
	Net          decimal.Decimal `json:"net"`
	Cumulative   decimal.Decimal `json:"cumulative"`
	EventCount   int             `json:"event_count"`
}

type DashboardUpcoming struct {
	Days        int              `json:"days"`
	From        time.Time        `json:"from"`
	To          time.Time        `json:"to"`
	EventCount  int              `json:"event_count"`
	BookedValue decimal.Decimal  `json:"booked_value"`
	Events      []DashboardEvent `json:"events"`
}

type DashboardReceivables struct {
	TotalPending      decimal.Decimal `json:"total_pending"`
	TotalOverdue      decimal.Decimal `json:"total_overdue"`
	TotalReceivable   decimal.Decimal `json:"total_receivable"`
	OverdueEventCount int             `json:"overdue_event_count"`
}
