package domain

import "context"

// Reader lists a single tenant's records. Implementations scope every call
// to userID; callers do no further tenant filtering. An empty collection
// returns an empty slice, never nil.
type Reader interface {
	ListEvents(ctx context.Context, userID string) ([]Event, error)
	ListPayments(ctx context.Context, userID string) ([]Payment, error)
	ListCosts(ctx context.Context, userID string) ([]Cost, error)
	ListServices(ctx context.Context, userID string) ([]Service, error)
	ListClients(ctx context.Context, userID string) ([]Client, error)
	ListChannels(ctx context.Context, userID string) ([]Channel, error)
	ListServiceTypes(ctx context.Context, userID string) ([]ServiceType, error)
	ListCostTypes(ctx context.Context, userID string) ([]CostType, error)
}
