package snapshot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/eventdesk/internal/config"
	"github.com/smallbiznis/eventdesk/internal/snapshot/domain"
	"github.com/smallbiznis/eventdesk/internal/snapshot/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("snapshot",
	fx.Provide(NewStore),
)

type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    config.Config
	DB        *gorm.DB
	Node      *snowflake.Node
	Log       *zap.Logger
}

// NewStore builds the configured snapshot backend.
func NewStore(p Params) (domain.Store, error) {
	cfg := p.Config.Snapshot
	log := p.Log.Named("snapshot")

	switch cfg.Store {
	case config.SnapshotStoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     p.Config.Redis.Addr,
			Password: p.Config.Redis.Password,
			DB:       p.Config.Redis.DB,
		})
		p.Lifecycle.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				if err := client.Ping(ctx).Err(); err != nil {
					return fmt.Errorf("snapshot redis ping: %w", err)
				}
				return nil
			},
			OnStop: func(ctx context.Context) error {
				return client.Close()
			},
		})
		log.Info("snapshot store selected", zap.String("backend", cfg.Store), zap.String("addr", p.Config.Redis.Addr))
		return repository.NewRedisStore(client, cfg.KeyPrefix, cfg.TTL), nil

	case config.SnapshotStoreMemory:
		log.Info("snapshot store selected", zap.String("backend", cfg.Store))
		return repository.NewMemoryStore(cfg.TTL), nil

	default:
		if p.Config.DBAutoMigrate {
			if err := repository.AutoMigrate(p.DB); err != nil {
				return nil, fmt.Errorf("migrate report_snapshots: %w", err)
			}
		}
		log.Info("snapshot store selected", zap.String("backend", config.SnapshotStoreDatabase))
		return repository.NewGormStore(p.DB, p.Node), nil
	}
}
