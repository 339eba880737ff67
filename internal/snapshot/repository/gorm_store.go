package repository

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/eventdesk/internal/snapshot/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// entryRow stores one field of a day snapshot. Payloads live in a text
// column so the bytes read back are the bytes written; jsonb would
// normalize them.
type entryRow struct {
	ID           snowflake.ID   `gorm:"primaryKey"`
	UserID       string         `gorm:"size:64;not null;uniqueIndex:ux_report_snapshot_field,priority:1"`
	DayKey       string         `gorm:"size:8;not null;uniqueIndex:ux_report_snapshot_field,priority:2"`
	Field        string         `gorm:"size:64;not null;uniqueIndex:ux_report_snapshot_field,priority:3"`
	Payload      datatypes.JSON `gorm:"type:text;not null"`
	SourceCounts datatypes.JSON `gorm:"type:text"`
	GeneratedAt  time.Time      `gorm:"not null"`
	UpdatedAt    time.Time      `gorm:"not null"`
}

func (entryRow) TableName() string { return "report_snapshots" }

type gormStore struct {
	db   *gorm.DB
	node *snowflake.Node
}

// NewGormStore returns a Store backed by the report_snapshots table.
func NewGormStore(db *gorm.DB, node *snowflake.Node) domain.Store {
	return &gormStore{db: db, node: node}
}

// AutoMigrate creates the report_snapshots table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&entryRow{})
}

func (s *gormStore) Backend() string { return "database" }

func (s *gormStore) GetByDay(ctx context.Context, userID, dayKey string) (*domain.Snapshot, error) {
	if err := domain.ValidateKey(userID, dayKey); err != nil {
		return nil, err
	}

	var rows []entryRow
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND day_key = ?", userID, dayKey).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	snap := &domain.Snapshot{
		UserID:  userID,
		DayKey:  dayKey,
		Entries: make(map[string]domain.Entry, len(rows)),
	}
	for _, row := range rows {
		entry := domain.Entry{
			Payload:     json.RawMessage(row.Payload),
			GeneratedAt: row.GeneratedAt.UTC(),
		}
		if len(row.SourceCounts) > 0 {
			if err := json.Unmarshal(row.SourceCounts, &entry.SourceCounts); err != nil {
				return nil, err
			}
		}
		snap.Entries[row.Field] = entry
	}
	return snap, nil
}

func (s *gormStore) UpsertField(ctx context.Context, userID, dayKey, field string, entry domain.Entry) error {
	return s.UpsertFields(ctx, userID, dayKey, map[string]domain.Entry{field: entry})
}

// UpsertFields writes all entries in a single statement. Fields not named
// in entries keep their stored value.
func (s *gormStore) UpsertFields(ctx context.Context, userID, dayKey string, entries map[string]domain.Entry) error {
	if err := domain.ValidateKey(userID, dayKey); err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	fields := make([]string, 0, len(entries))
	for field := range entries {
		if strings.TrimSpace(field) == "" {
			return domain.ErrInvalidField
		}
		fields = append(fields, field)
	}
	sort.Strings(fields)

	now := time.Now().UTC()
	rows := make([]entryRow, 0, len(fields))
	for _, field := range fields {
		entry := entries[field]
		if len(entry.Payload) == 0 {
			return domain.ErrEmptyPayload
		}
		counts, err := json.Marshal(entry.SourceCounts)
		if err != nil {
			return err
		}
		rows = append(rows, entryRow{
			ID:           s.node.Generate(),
			UserID:       userID,
			DayKey:       dayKey,
			Field:        field,
			Payload:      datatypes.JSON(entry.Payload),
			SourceCounts: datatypes.JSON(counts),
			GeneratedAt:  entry.GeneratedAt.UTC(),
			UpdatedAt:    now,
		})
	}

	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "day_key"}, {Name: "field"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"payload",
				"source_counts",
				"generated_at",
				"updated_at",
			}),
		}).
		Create(&rows).Error
}
