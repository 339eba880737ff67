package repository

import (
	"github.com/smallbiznis/eventdesk/internal/entity/domain"
	"gorm.io/gorm"
)

// AutoMigrate creates the entity tables for local and test databases. In
// production the CRUD services own these tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Event{},
		&domain.Payment{},
		&domain.Cost{},
		&domain.Service{},
		&domain.Client{},
		&domain.Channel{},
		&domain.ServiceType{},
		&domain.CostType{},
	)
}
