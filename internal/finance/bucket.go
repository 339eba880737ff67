package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Window is a trailing run of calendar months ending with the anchor's
// month. Month boundaries follow the anchor's location.
type Window struct {
	Months int
	Anchor time.Time
}

// Bucket aggregates the records of one calendar month. Min and Max only
// consider positive values and stay zero when there are none.
type Bucket struct {
	Key   string          `json:"key"`
	Label string          `json:"label"`
	Start time.Time       `json:"start"`
	End   time.Time       `json:"end"`
	Sum   decimal.Decimal `json:"sum"`
	Count int             `json:"count"`
	Min   decimal.Decimal `json:"min"`
	Max   decimal.Decimal `json:"max"`
}

// Average is Sum/Count rounded to cents.
func (b Bucket) Average() decimal.Decimal {
	return Average(b.Sum, b.Count)
}

// Contains reports whether t falls inside [Start, End).
func (b Bucket) Contains(t time.Time) bool {
	return !t.Before(b.Start) && t.Before(b.End)
}

// MonthStart truncates t to the first instant of its month in loc.
func MonthStart(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
}

// Months lays out the empty buckets of w in chronological order.
func Months(w Window) []Bucket {
	if w.Months <= 0 {
		return []Bucket{}
	}
	loc := w.Anchor.Location()
	first := MonthStart(w.Anchor, loc).AddDate(0, -(w.Months - 1), 0)

	buckets := make([]Bucket, 0, w.Months)
	for i := 0; i < w.Months; i++ {
		start := first.AddDate(0, i, 0)
		buckets = append(buckets, Bucket{
			Key:   start.Format("2006-01"),
			Label: start.Format("Jan 2006"),
			Start: start,
			End:   start.AddDate(0, 1, 0),
			Sum:   decimal.Zero,
			Min:   decimal.Zero,
			Max:   decimal.Zero,
		})
	}
	return buckets
}

// BucketByMonth distributes records over the months of w. Every month of
// the window is present even when no record falls into it. Records whose
// date selector reports false, or whose date lies outside the window, are
// skipped.
func BucketByMonth[T any](records []T, w Window, date func(T) (time.Time, bool), value func(T) decimal.Decimal) []Bucket {
	buckets := Months(w)
	if len(buckets) == 0 {
		return buckets
	}
	loc := w.Anchor.Location()
	first := buckets[0].Start

	for _, rec := range records {
		at, ok := date(rec)
		if !ok {
			continue
		}
		start := MonthStart(at, loc)
		i := monthsBetween(first, start)
		if i < 0 || i >= len(buckets) {
			continue
		}

		v := value(rec)
		b := &buckets[i]
		b.Sum = b.Sum.Add(v)
		b.Count++
		if v.IsPositive() {
			if b.Min.IsZero() || v.LessThan(b.Min) {
				b.Min = v
			}
			if v.GreaterThan(b.Max) {
				b.Max = v
			}
		}
	}
	return buckets
}

func monthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}
