package repository

import (
	"context"

	"gorm.io/gorm"
)

type store[T any] struct {
	db *gorm.DB
}

func ProvideStore[T any](db *gorm.DB) Repository[T] {
	return &store[T]{db: db}
}

func (r *store[T]) WithTrx(tx *gorm.DB) Repository[T] {
	return &store[T]{db: tx}
}

// FindByUser returns every row owned by userID. Callers always get a
// non-nil slice.
func (r *store[T]) FindByUser(ctx context.Context, userID string, opts ...QueryOption) ([]T, error) {
	result := make([]T, 0)
	stmt := r.buildQuery(ctx, opts...).Where("user_id = ?", userID)
	if err := stmt.Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

func (r *store[T]) Create(ctx context.Context, resources ...*T) error {
	if len(resources) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(resources).Error
}

func (r *store[T]) buildQuery(ctx context.Context, opts ...QueryOption) *gorm.DB {
	db := r.db.WithContext(ctx).Model(new(T))
	for _, opt := range opts {
		db = opt.Apply(db)
	}
	return db
}
