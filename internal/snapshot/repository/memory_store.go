package repository

import (
	"context"
	"strings"
	"time"

	"github.com/smallbiznis/eventdesk/internal/cache"
	"github.com/smallbiznis/eventdesk/internal/snapshot/domain"
)

// memoryStore keeps snapshots in process. Entries vanish on restart, which
// only costs one regeneration per user.
type memoryStore struct {
	items cache.Cache[string, map[string]domain.Entry]
	ttl   time.Duration
}

func NewMemoryStore(ttl time.Duration) domain.Store {
	return &memoryStore{
		items: cache.NewTTLCache[string, map[string]domain.Entry](),
		ttl:   ttl,
	}
}

func (s *memoryStore) Backend() string { return "memory" }

func (s *memoryStore) GetByDay(ctx context.Context, userID, dayKey string) (*domain.Snapshot, error) {
	if err := domain.ValidateKey(userID, dayKey); err != nil {
		return nil, err
	}
	entries, ok := s.items.Get(memoryKey(userID, dayKey))
	if !ok || len(entries) == 0 {
		return nil, nil
	}
	return &domain.Snapshot{UserID: userID, DayKey: dayKey, Entries: entries}, nil
}

func (s *memoryStore) UpsertField(ctx context.Context, userID, dayKey, field string, entry domain.Entry) error {
	return s.UpsertFields(ctx, userID, dayKey, map[string]domain.Entry{field: entry})
}

// UpsertFields copies the stored map before merging so snapshots already
// handed to readers never change underneath them.
func (s *memoryStore) UpsertFields(ctx context.Context, userID, dayKey string, entries map[string]domain.Entry) error {
	if err := domain.ValidateKey(userID, dayKey); err != nil {
		return err
	}
	for field, entry := range entries {
		if strings.TrimSpace(field) == "" {
			return domain.ErrInvalidField
		}
		if len(entry.Payload) == 0 {
			return domain.ErrEmptyPayload
		}
	}
	if len(entries) == 0 {
		return nil
	}

	s.items.Update(memoryKey(userID, dayKey), s.ttl, func(current map[string]domain.Entry, ok bool) map[string]domain.Entry {
		merged := make(map[string]domain.Entry, len(current)+len(entries))
		for field, entry := range current {
			merged[field] = entry
		}
		for field, entry := range entries {
			merged[field] = entry
		}
		return merged
	})
	return nil
}

func memoryKey(userID, dayKey string) string {
	return strings.TrimSpace(userID) + "|" + dayKey
}
