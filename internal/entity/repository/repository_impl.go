package repository

import (
	"context"

	"github.com/smallbiznis/eventdesk/internal/entity/domain"
	"github.com/smallbiznis/eventdesk/pkg/repository"
	"gorm.io/gorm"
)

type reader struct {
	events       repository.Repository[domain.Event]
	payments     repository.Repository[domain.Payment]
	costs        repository.Repository[domain.Cost]
	services     repository.Repository[domain.Service]
	clients      repository.Repository[domain.Client]
	channels     repository.Repository[domain.Channel]
	serviceTypes repository.Repository[domain.ServiceType]
	costTypes    repository.Repository[domain.CostType]
}

func Provide(db *gorm.DB) domain.Reader {
	return &reader{
		events:       repository.ProvideStore[domain.Event](db),
		payments:     repository.ProvideStore[domain.Payment](db),
		costs:        repository.ProvideStore[domain.Cost](db),
		services:     repository.ProvideStore[domain.Service](db),
		clients:      repository.ProvideStore[domain.Client](db),
		channels:     repository.ProvideStore[domain.Channel](db),
		serviceTypes: repository.ProvideStore[domain.ServiceType](db),
		costTypes:    repository.ProvideStore[domain.CostType](db),
	}
}

func (r *reader) ListEvents(ctx context.Context, userID string) ([]domain.Event, error) {
	return r.events.FindByUser(ctx, userID, repository.OrderBy("event_date asc, id asc"))
}

func (r *reader) ListPayments(ctx context.Context, userID string) ([]domain.Payment, error) {
	return r.payments.FindByUser(ctx, userID, repository.OrderBy("payment_date asc, id asc"))
}

func (r *reader) ListCosts(ctx context.Context, userID string) ([]domain.Cost, error) {
	return r.costs.FindByUser(ctx, userID, repository.OrderBy("created_date asc, id asc"))
}

func (r *reader) ListServices(ctx context.Context, userID string) ([]domain.Service, error) {
	return r.services.FindByUser(ctx, userID, repository.OrderBy("id asc"))
}

func (r *reader) ListClients(ctx context.Context, userID string) ([]domain.Client, error) {
	return r.clients.FindByUser(ctx, userID, repository.OrderBy("name asc, id asc"))
}

func (r *reader) ListChannels(ctx context.Context, userID string) ([]domain.Channel, error) {
	return r.channels.FindByUser(ctx, userID, repository.OrderBy("name asc, id asc"))
}

func (r *reader) ListServiceTypes(ctx context.Context, userID string) ([]domain.ServiceType, error) {
	return r.serviceTypes.FindByUser(ctx, userID, repository.OrderBy("name asc, id asc"))
}

func (r *reader) ListCostTypes(ctx context.Context, userID string) ([]domain.CostType, error) {
	return r.costTypes.FindByUser(ctx, userID, repository.OrderBy("name asc, id asc"))
}
