package entity

import (
	"github.com/smallbiznis/eventdesk/internal/config"
	"github.com/smallbiznis/eventdesk/internal/entity/repository"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("entity.repository",
	fx.Provide(repository.Provide),
	fx.Invoke(migrateIfEnabled),
)

func migrateIfEnabled(cfg config.Config, db *gorm.DB) error {
	if !cfg.DBAutoMigrate {
		return nil
	}
	return repository.AutoMigrate(db)
}
