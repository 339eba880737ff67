package finance

import (
	entitydomain "github.com/smallbiznis/eventdesk/internal/entity/domain"
)

// IsValid reports whether an event participates in any financial figure.
// Cancelled and archived events never do. A nil Archived flag counts as
// not archived.
func IsValid(e entitydomain.Event) bool {
	if e.Status == entitydomain.EventStatusCancelled {
		return false
	}
	if e.Archived != nil && *e.Archived {
		return false
	}
	return true
}

// FilterValid returns the valid events in their original order. The input
// slice is left untouched.
func FilterValid(events []entitydomain.Event) []entitydomain.Event {
	out := make([]entitydomain.Event, 0, len(events))
	for _, e := range events {
		if IsValid(e) {
			out = append(out, e)
		}
	}
	return out
}

// Billable reports whether an event carries money worth resolving.
func Billable(e entitydomain.Event) bool {
	return e.TotalValue.IsPositive()
}
