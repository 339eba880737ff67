package finance

import (
	"sort"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Fold reduces items left to right and returns every intermediate state,
// so states[i] already includes items[0..i].
func Fold[A, S any](items []A, seed S, step func(S, A) S) []S {
	states := make([]S, 0, len(items))
	acc := seed
	for _, item := range items {
		acc = step(acc, item)
		states = append(states, acc)
	}
	return states
}

// Cumulative is the running balance of values in order.
func Cumulative(values []decimal.Decimal) []decimal.Decimal {
	return Fold(values, decimal.Zero, func(acc, v decimal.Decimal) decimal.Decimal {
		return acc.Add(v)
	})
}

// Percentage is part/whole*100 rounded to two places, and zero when whole is zero.
func Percentage(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(2)
}

// Average is sum/count rounded to two places, and zero for an empty set.
func Average(sum decimal.Decimal, count int) decimal.Decimal {
	if count <= 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(count))).Round(2)
}

// Slice is one labeled share of a distribution.
type Slice struct {
	Label      string          `json:"label"`
	Value      decimal.Decimal `json:"value"`
	Percentage decimal.Decimal `json:"percentage"`
}

// Tally accumulates values per label.
type Tally map[string]decimal.Decimal

// Add adds v to label.
func (t Tally) Add(label string, v decimal.Decimal) {
	t[label] = t[label].Add(v)
}

// Inc counts one occurrence of label.
func (t Tally) Inc(label string) {
	t.Add(label, decimal.NewFromInt(1))
}

// Touch makes label present without changing its value.
func (t Tally) Touch(label string) {
	if _, ok := t[label]; !ok {
		t[label] = decimal.Zero
	}
}

// Distribution turns a tally into slices ordered by value descending, then
// label. Percentages are relative to the tally total.
func Distribution(t Tally) []Slice {
	total := decimal.Zero
	for _, v := range t {
		total = total.Add(v)
	}
	out := make([]Slice, 0, len(t))
	for label, v := range t {
		out = append(out, Slice{
			Label:      label,
			Value:      v,
			Percentage: Percentage(v, total),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Value.Equal(out[j].Value) {
			return out[i].Value.GreaterThan(out[j].Value)
		}
		return out[i].Label < out[j].Label
	})
	return out
}
