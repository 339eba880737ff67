package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/golang/snappy"
	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/eventdesk/internal/snapshot/domain"
)

const keySnapshot = "%s:%s:%s"

// redisStore keeps one hash per (user, day). Each report is a hash field
// holding snappy-compressed JSON, so HSET merges fields natively.
type redisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore returns a Store on top of client. A positive ttl expires
// the whole day hash after its last write.
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) domain.Store {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "eventdesk:snapshot"
	}
	return &redisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *redisStore) Backend() string { return "redis" }

func (s *redisStore) key(userID, dayKey string) string {
	return fmt.Sprintf(keySnapshot, s.prefix, strings.TrimSpace(userID), dayKey)
}

func (s *redisStore) GetByDay(ctx context.Context, userID, dayKey string) (*domain.Snapshot, error) {
	if err := domain.ValidateKey(userID, dayKey); err != nil {
		return nil, err
	}
	values, err := s.client.HGetAll(ctx, s.key(userID, dayKey)).Result()
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, nil
	}

	snap := &domain.Snapshot{
		UserID:  userID,
		DayKey:  dayKey,
		Entries: make(map[string]domain.Entry, len(values)),
	}
	for field, raw := range values {
		entry, err := decodeEntry([]byte(raw))
		if err != nil {
			return nil, fmt.Errorf("decode snapshot field %s: %w", field, err)
		}
		snap.Entries[field] = entry
	}
	return snap, nil
}

func (s *redisStore) UpsertField(ctx context.Context, userID, dayKey, field string, entry domain.Entry) error {
	return s.UpsertFields(ctx, userID, dayKey, map[string]domain.Entry{field: entry})
}

func (s *redisStore) UpsertFields(ctx context.Context, userID, dayKey string, entries map[string]domain.Entry) error {
	if err := domain.ValidateKey(userID, dayKey); err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	values := make(map[string]any, len(entries))
	for field, entry := range entries {
		if strings.TrimSpace(field) == "" {
			return domain.ErrInvalidField
		}
		encoded, err := encodeEntry(entry)
		if err != nil {
			return err
		}
		values[field] = encoded
	}

	key := s.key(userID, dayKey)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, values)
		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}
		return nil
	})
	return err
}

func encodeEntry(entry domain.Entry) ([]byte, error) {
	if len(entry.Payload) == 0 {
		return nil, domain.ErrEmptyPayload
	}
	// HTML escaping off: the payload must come back byte for byte.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(entry); err != nil {
		return nil, err
	}
	return snappy.Encode(nil, buf.Bytes()), nil
}

func decodeEntry(data []byte) (domain.Entry, error) {
	raw, err := snappy.Decode(nil, data)
	if err != nil {
		return domain.Entry{}, err
	}
	var entry domain.Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return domain.Entry{}, err
	}
	return entry, nil
}
