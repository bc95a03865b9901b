package inventory

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Store persists inventory items.
type Store interface {
	ListBySource(ctx context.Context, source string) ([]Item, error)
	BulkInsert(ctx context.Context, items []Item) error
	BulkUpdateQuantity(ctx context.Context, updates []QuantityUpdate) error
}

// GormStore is the inventory_items store.
type GormStore struct {
	db        *gorm.DB
	batchSize int
}

// NewGormStore creates an inventory store on db.
func NewGormStore(db *gorm.DB, batchSize int) *GormStore {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &GormStore{db: db, batchSize: batchSize}
}

// ListBySource loads every item of source.
func (s *GormStore) ListBySource(ctx context.Context, source string) ([]Item, error) {
	var items []Item
	if err := s.db.WithContext(ctx).Where("source = ?", source).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list inventory of %s: %w", source, err)
	}
	return items, nil
}

// BulkInsert creates items in batches.
func (s *GormStore) BulkInsert(ctx context.Context, items []Item) error {
	if len(items) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).CreateInBatches(items, s.batchSize).Error; err != nil {
		return fmt.Errorf("failed to insert %d inventory items: %w", len(items), err)
	}
	return nil
}

// BulkUpdateQuantity applies all updates in one transaction, one statement per item.
func (s *GormStore) BulkUpdateQuantity(ctx context.Context, updates []QuantityUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	now := time.Now()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			err := tx.Model(&Item{}).Where("id = ?", u.ID).Updates(map[string]any{
				"quantity":   u.Quantity,
				"updated_at": now,
			}).Error
			if err != nil {
				return fmt.Errorf("sku %s: %w", u.SKU, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to update %d inventory items: %w", len(updates), err)
	}
	return nil
}
