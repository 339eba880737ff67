package domain

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	entitydomain "github.com/smallbiznis/eventdesk/internal/entity/domain"
)

type Name string

const (
	ReportReceivables      Name = "receivables"
	ReportMonthlyRevenue   Name = "monthly_revenue"
	ReportEventPerformance Name = "event_performance"
	ReportCashFlow         Name = "cash_flow"
	ReportServices         Name = "services"
	ReportChannels         Name = "channels"
	ReportPrintUsage       Name = "print_usage"

	// Dashboard is stored next to the reports but is served by GetDashboard.
	Dashboard Name = "dashboard"
)

var reportNames = []Name{
	ReportReceivables,
	ReportMonthlyRevenue,
	ReportEventPerformance,
	ReportCashFlow,
	ReportServices,
	ReportChannels,
	ReportPrintUsage,
}

// Reports lists the batch reports in catalogue order.
func Reports() []Name {
	return append([]Name(nil), reportNames...)
}

// ParseName resolves a report name. The dashboard is not a report name.
func ParseName(raw string) (Name, error) {
	name := Name(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range reportNames {
		if known == name {
			return name, nil
		}
	}
	return "", ErrUnknownReport
}

// Dataset is the full tenant dataset a generation run works on. Generators
// treat it as read-only.
type Dataset struct {
	Events       []entitydomain.Event
	Payments     []entitydomain.Payment
	Costs        []entitydomain.Cost
	Services     []entitydomain.Service
	Clients      []entitydomain.Client
	Channels     []entitydomain.Channel
	ServiceTypes []entitydomain.ServiceType
	CostTypes    []entitydomain.CostType
}

// Counts reports how many source records each collection held.
func (d Dataset) Counts() map[string]int {
	return map[string]int{
		"events":        len(d.Events),
		"payments":      len(d.Payments),
		"costs":         len(d.Costs),
		"services":      len(d.Services),
		"clients":       len(d.Clients),
		"channels":      len(d.Channels),
		"service_types": len(d.ServiceTypes),
		"cost_types":    len(d.CostTypes),
	}
}

// Settings are the tuning knobs a generation run reads.
type Settings struct {
	Location         *time.Location
	RevenueMonths    int
	CashFlowMonths   int
	DashboardMonths  int
	PrintUsageMonths int
	EventMonths      int
	LookAheadDays    int
}

// Loc returns the configured location or UTC.
func (s Settings) Loc() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

type Options struct {
	ForceRefresh bool
}

// ReportResult carries a serialized payload with its cache metadata. The
// payload bytes are the exact bytes persisted in the snapshot.
type ReportResult struct {
	Name         Name            `json:"name"`
	GeneratedAt  time.Time       `json:"generated_at"`
	Cached       bool            `json:"cached"`
	SourceCounts map[string]int  `json:"source_counts"`
	Payload      json.RawMessage `json:"payload"`
}

type Service interface {
	GetDashboard(ctx context.Context, userID string, opts Options) (ReportResult, error)
	GetReport(ctx context.Context, userID string, name Name, opts Options) (ReportResult, error)
	GenerateAllReports(ctx context.Context, userID string, opts Options) error
}

var (
	ErrUserRequired       = errors.New("user_required")
	ErrUnknownReport      = errors.New("unknown_report")
	ErrDatasetUnavailable = errors.New("dataset_unavailable")
)
