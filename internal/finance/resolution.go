package finance

import (
	"time"

	"github.com/shopspring/decimal"
	entitydomain "github.com/smallbiznis/eventdesk/internal/entity/domain"
)

// Resolution is the money breakdown of one event.
type Resolution struct {
	Paid         decimal.Decimal `json:"paid"`
	Pending      decimal.Decimal `json:"pending"`
	Overdue      decimal.Decimal `json:"overdue"`
	PaymentCount int             `json:"payment_count"`
	IsOverdue    bool            `json:"is_overdue"`
}

// Receivable is what the client still owes. Credits are not receivable.
func (r Resolution) Receivable() decimal.Decimal {
	return decimal.Max(r.Pending, decimal.Zero).Add(r.Overdue)
}

// Outstanding reports whether anything is still owed.
func (r Resolution) Outstanding() bool {
	return r.Pending.IsPositive() || r.Overdue.IsPositive()
}

// IsSettled reports whether a payment counts as money received.
func IsSettled(p entitydomain.Payment) bool {
	return !p.Cancelled && p.Status == entitydomain.PaymentStatusPaid
}

// Resolve computes the paid/pending/overdue split of an event from its
// payments. Payments for other events and cancelled payments are ignored.
// An overpaid event keeps its negative pending amount as a credit.
func Resolve(eventID string, total decimal.Decimal, payments []entitydomain.Payment, due *time.Time, now time.Time) Resolution {
	res := Resolution{
		Paid:    decimal.Zero,
		Pending: decimal.Zero,
		Overdue: decimal.Zero,
	}
	for _, p := range payments {
		if p.EventID != eventID || p.Cancelled {
			continue
		}
		res.PaymentCount++
		if p.Status == entitydomain.PaymentStatusPaid {
			res.Paid = res.Paid.Add(p.Value)
		}
	}

	rawPending := total.Sub(res.Paid)
	if due == nil {
		res.Pending = rawPending
		return res
	}

	res.IsOverdue = now.After(*due) && rawPending.IsPositive()
	if res.IsOverdue {
		res.Overdue = rawPending
		return res
	}
	res.Pending = rawPending
	return res
}

// PaymentIndex groups payments by event id.
type PaymentIndex map[string][]entitydomain.Payment

// IndexPayments builds a PaymentIndex so resolving many events stays linear.
func IndexPayments(payments []entitydomain.Payment) PaymentIndex {
	idx := make(PaymentIndex, len(payments))
	for _, p := range payments {
		idx[p.EventID] = append(idx[p.EventID], p)
	}
	return idx
}

// ResolveEvent resolves e against its indexed payments.
func ResolveEvent(e entitydomain.Event, idx PaymentIndex, now time.Time) Resolution {
	return Resolve(e.ID, e.TotalValue, idx[e.ID], e.PaymentDueDate, now)
}
