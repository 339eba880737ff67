package generator

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/eventdesk/internal/finance"
	"github.com/smallbiznis/eventdesk/internal/report/domain"
)

// MonthlyRevenue buckets received payments by payment date and booked
// event value by event date over the revenue window.
func MonthlyRevenue(ds domain.Dataset, settings domain.Settings, now time.Time) domain.MonthlyRevenue {
	v := newView(ds, settings, now)
	w := v.window(settings.RevenueMonths)

	received := finance.BucketByMonth(v.settledPayments(), w, paymentDate, paymentValue)
	booked := finance.BucketByMonth(v.valid, w, eventDate, eventValue)

	months := make([]domain.RevenueMonth, 0, len(received))
	summary := domain.RevenueSummary{
		TotalRevenue:     decimal.Zero,
		TotalBooked:      decimal.Zero,
		BestMonthRevenue: decimal.Zero,
	}
	for i, b := range received {
		months = append(months, domain.RevenueMonth{
			Key:            b.Key,
			Label:          b.Label,
			Revenue:        b.Sum,
			PaymentCount:   b.Count,
			AveragePayment: b.Average(),
			MinPayment:     b.Min,
			MaxPayment:     b.Max,
			BookedValue:    booked[i].Sum,
			EventCount:     booked[i].Count,
		})
		summary.TotalRevenue = summary.TotalRevenue.Add(b.Sum)
		summary.TotalBooked = summary.TotalBooked.Add(booked[i].Sum)
		summary.PaymentCount += b.Count
		if b.Sum.GreaterThan(summary.BestMonthRevenue) {
			summary.BestMonth = b.Key
			summary.BestMonthRevenue = b.Sum
		}
	}
	summary.MonthlyAverage = finance.Average(summary.TotalRevenue, len(received))
	summary.GrowthPercentage = growth(received)

	return domain.MonthlyRevenue{Months: months, Summary: summary}
}

// growth compares the anchor month with the month before it.
func growth(buckets []finance.Bucket) decimal.Decimal {
	if len(buckets) < 2 {
		return decimal.Zero
	}
	last := buckets[len(buckets)-1].Sum
	prev := buckets[len(buckets)-2].Sum
	return finance.Percentage(last.Sub(prev), prev)
}
