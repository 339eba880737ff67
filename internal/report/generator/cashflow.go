package generator

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/eventdesk/internal/finance"
	"github.com/smallbiznis/eventdesk/internal/report/domain"
)

// CashFlow compares money in against event costs month by month and
// carries a running balance across the window.
func CashFlow(ds domain.Dataset, settings domain.Settings, now time.Time) domain.CashFlow {
	v := newView(ds, settings, now)
	w := v.window(settings.CashFlowMonths)

	costs := v.activeCosts()
	inflow := finance.BucketByMonth(v.settledPayments(), w, paymentDate, paymentValue)
	outflow := finance.BucketByMonth(costs, w, costDate, costValue)

	nets := make([]decimal.Decimal, len(inflow))
	for i := range inflow {
		nets[i] = inflow[i].Sum.Sub(outflow[i].Sum)
	}
	running := finance.Cumulative(nets)

	months := make([]domain.CashFlowMonth, 0, len(inflow))
	summary := domain.CashFlowSummary{
		TotalInflow:  decimal.Zero,
		TotalOutflow: decimal.Zero,
		Net:          decimal.Zero,
	}
	for i, b := range inflow {
		months = append(months, domain.CashFlowMonth{
			Key:          b.Key,
			Label:        b.Label,
			Inflow:       b.Sum,
			Outflow:      outflow[i].Sum,
			Net:          nets[i],
			Cumulative:   running[i],
			PaymentCount: b.Count,
			CostCount:    outflow[i].Count,
		})
		summary.TotalInflow = summary.TotalInflow.Add(b.Sum)
		summary.TotalOutflow = summary.TotalOutflow.Add(outflow[i].Sum)
	}
	summary.Net = summary.TotalInflow.Sub(summary.TotalOutflow)
	summary.MarginPercentage = finance.Percentage(summary.Net, summary.TotalInflow)
	summary.AverageNet = finance.Average(summary.Net, len(inflow))

	breakdown := finance.Tally{}
	if len(inflow) > 0 {
		first, last := inflow[0].Start, inflow[len(inflow)-1].End
		for _, c := range costs {
			if c.CreatedDate.Before(first) || !c.CreatedDate.Before(last) {
				continue
			}
			breakdown.Add(v.costTypeLabel(c.CostTypeID), c.Effective())
		}
	}

	return domain.CashFlow{
		Months:        months,
		CostBreakdown: finance.Distribution(breakdown),
		Summary:       summary,
	}
}
