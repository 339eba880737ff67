package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCostEffectiveDefaultsQuantity(t *testing.T) {
	cases := []struct {
		qty  int
		want string
	}{
		{qty: 3, want: "75"},
		{qty: 0, want: "25"},
		{qty: -2, want: "25"},
	}
	for _, tc := range cases {
		cost := Cost{UnitValue: decimal.NewFromInt(25), Quantity: tc.qty}
		if got := cost.Effective(); !got.Equal(decimal.RequireFromString(tc.want)) {
			t.Fatalf("quantity %d: expected %s, got %s", tc.qty, tc.want, got)
		}
	}
}
