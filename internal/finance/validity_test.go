package finance

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
	entitydomain "github.com/smallbiznis/eventdesk/internal/entity/domain"
)

func boolPtr(v bool) *bool { return &v }

func TestIsValid(t *testing.T) {
	cases := []struct {
		name  string
		event entitydomain.Event
		want  bool
	}{
		{"scheduled", entitydomain.Event{Status: entitydomain.EventStatusScheduled}, true},
		{"archived unset", entitydomain.Event{Status: entitydomain.EventStatusCompleted, Archived: nil}, true},
		{"archived false", entitydomain.Event{Status: entitydomain.EventStatusConfirmed, Archived: boolPtr(false)}, true},
		{"archived", entitydomain.Event{Status: entitydomain.EventStatusConfirmed, Archived: boolPtr(true)}, false},
		{"cancelled", entitydomain.Event{Status: entitydomain.EventStatusCancelled}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsValid(tc.event); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestFilterValidIsIdempotentAndPure(t *testing.T) {
	events := []entitydomain.Event{
		{ID: "a", Status: entitydomain.EventStatusScheduled},
		{ID: "b", Status: entitydomain.EventStatusCancelled},
		{ID: "c", Status: entitydomain.EventStatusCompleted, Archived: boolPtr(true)},
		{ID: "d", Status: entitydomain.EventStatusInProgress},
	}
	snapshot := append([]entitydomain.Event(nil), events...)

	once := FilterValid(events)
	twice := FilterValid(once)

	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("filter not idempotent: %v vs %v", once, twice)
	}
	if len(once) != 2 || once[0].ID != "a" || once[1].ID != "d" {
		t.Fatalf("unexpected valid events: %+v", once)
	}
	if !reflect.DeepEqual(events, snapshot) {
		t.Fatalf("input mutated")
	}
}

func TestBillable(t *testing.T) {
	if Billable(entitydomain.Event{TotalValue: decimal.Zero}) {
		t.Fatalf("zero-value event must not be billable")
	}
	if Billable(entitydomain.Event{TotalValue: decimal.NewFromInt(-5)}) {
		t.Fatalf("negative event must not be billable")
	}
	if !Billable(entitydomain.Event{TotalValue: decimal.NewFromInt(5)}) {
		t.Fatalf("positive event must be billable")
	}
}
