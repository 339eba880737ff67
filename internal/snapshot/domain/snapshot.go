package domain

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

const dayKeyLayout = "20060102"

// Snapshot is the day-keyed composite of cached report payloads for one user.
type Snapshot struct {
	UserID  string
	DayKey  string
	Entries map[string]Entry
}

// Entry is one cached payload.
type Entry struct {
	Payload      json.RawMessage `json:"payload"`
	GeneratedAt  time.Time       `json:"generated_at"`
	SourceCounts map[string]int  `json:"source_counts"`
}

// Entry returns the named entry when present.
func (s *Snapshot) Entry(field string) (Entry, bool) {
	if s == nil {
		return Entry{}, false
	}
	e, ok := s.Entries[field]
	return e, ok
}

// Store persists snapshots with field-level merge: writing one field never
// removes its siblings for the same day.
type Store interface {
	// GetByDay returns nil and no error when nothing is cached for the day.
	GetByDay(ctx context.Context, userID, dayKey string) (*Snapshot, error)
	UpsertField(ctx context.Context, userID, dayKey, field string, entry Entry) error
	UpsertFields(ctx context.Context, userID, dayKey string, entries map[string]Entry) error
	Backend() string
}

// DayKey formats t as the calendar day in loc.
func DayKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(dayKeyLayout)
}

// ValidateKey checks the identifiers every store call needs.
func ValidateKey(userID, dayKey string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrInvalidUser
	}
	if _, err := time.Parse(dayKeyLayout, dayKey); err != nil {
		return ErrInvalidDayKey
	}
	return nil
}

var (
	ErrInvalidUser   = errors.New("invalid_user")
	ErrInvalidDayKey = errors.New("invalid_day_key")
	ErrInvalidField  = errors.New("invalid_field")
	ErrEmptyPayload  = errors.New("empty_payload")
)
