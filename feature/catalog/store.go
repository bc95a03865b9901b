package catalog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Store persists catalog products.
type Store interface {
	// FindByKey returns the product with the UPC, or nil when there is none.
	FindByKey(ctx context.Context, upc string) (*Product, error)
	Insert(ctx context.Context, r Record) error
	Update(ctx context.Context, id uint, fields map[string]any) error
}

// GormStore is the catalog_products store.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a catalog store on db.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// FindByKey loads a product by UPC.
func (s *GormStore) FindByKey(ctx context.Context, upc string) (*Product, error) {
	var p Product
	err := s.db.WithContext(ctx).Where("upc = ?", upc).Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find product %s: %w", upc, err)
	}
	return &p, nil
}

// Insert creates a product row for r.
func (s *GormStore) Insert(ctx context.Context, r Record) error {
	if err := s.db.WithContext(ctx).Create(newProduct(r)).Error; err != nil {
		return fmt.Errorf("failed to insert product %s: %w", r.UPC, err)
	}
	return nil
}

// Update writes fields to the product with the id.
func (s *GormStore) Update(ctx context.Context, id uint, fields map[string]any) error {
	err := s.db.WithContext(ctx).Model(&Product{}).Where("id = ?", id).Updates(fields).Error
	if err != nil {
		return fmt.Errorf("failed to update product %d: %w", id, err)
	}
	return nil
}
