package database

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogRepo stores one of the flat catalog tables (skills, tools,
// experiences, certificates).
type CatalogRepo[T any] struct {
	db     *gorm.DB
	entity string
	order  string
}

func NewCatalogRepo[T any](db *gorm.DB, entity, order string) *CatalogRepo[T] {
	return &CatalogRepo[T]{db: db, entity: entity, order: order}
}

// Entity is the singular name used in log lines and error messages
func (r *CatalogRepo[T]) Entity() string {
	return r.entity
}

// FindAll returns every row in list order
func (r *CatalogRepo[T]) FindAll(ctx context.Context) ([]*T, error) {
	var items []*T
	err := r.db.WithContext(ctx).Order(r.order).Find(&items).Error
	return items, err
}

// FindByID returns a row by its ID
func (r *CatalogRepo[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var item T
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Add inserts a new row
func (r *CatalogRepo[T]) Add(ctx context.Context, item *T) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// AddMany inserts all items in one transaction; nothing is written if any insert fails
func (r *CatalogRepo[T]) AddMany(ctx context.Context, items []*T) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(items, 100).Error
	})
}

// Update writes every column of item
func (r *CatalogRepo[T]) Update(ctx context.Context, item *T) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete removes a row by id
func (r *CatalogRepo[T]) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(new(T), "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
