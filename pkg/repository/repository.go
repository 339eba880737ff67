package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository reads tenant-owned rows of T.
type Repository[T any] interface {
	WithTrx(tx *gorm.DB) Repository[T]
	FindByUser(ctx context.Context, userID string, opts ...QueryOption) ([]T, error)
	Create(ctx context.Context, resources ...*T) error
}

// QueryOption customizes a query built by the store.
type QueryOption interface {
	Apply(db *gorm.DB) *gorm.DB
}

type queryOptionFunc func(db *gorm.DB) *gorm.DB

func (f queryOptionFunc) Apply(db *gorm.DB) *gorm.DB { return f(db) }

// OrderBy sorts results by the given clause.
func OrderBy(order string) QueryOption {
	return queryOptionFunc(func(db *gorm.DB) *gorm.DB {
		return db.Order(order)
	})
}

// Where adds a raw condition.
func Where(query string, args ...any) QueryOption {
	return queryOptionFunc(func(db *gorm.DB) *gorm.DB {
		return db.Where(query, args...)
	})
}
