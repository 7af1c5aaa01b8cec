package sizes

import (
	"context"
	"fmt"

	"github.com/pverissimo/loja-admin-api/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles size persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to size operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new size row.
func (r *Repository) Create(ctx context.Context, size *models.Size) error {
	if size == nil {
		return fmt.Errorf("size is required")
	}
	return r.db.WithContext(ctx).Create(size).Error
}

// FindByID loads a size scoped to the store.
func (r *Repository) FindByID(ctx context.Context, storeID, id uuid.UUID) (*models.Size, error) {
	var size models.Size
	if err := r.db.WithContext(ctx).
		Where("id = ? AND store_id = ?", id, storeID).
		First(&size).Error; err != nil {
		return nil, err
	}
	return &size, nil
}

// FindByStore returns all sizes for the store, newest first.
func (r *Repository) FindByStore(ctx context.Context, storeID uuid.UUID) ([]models.Size, error) {
	var sizes []models.Size
	if err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&sizes).Error; err != nil {
		return nil, err
	}
	return sizes, nil
}

// Update saves the provided size.
func (r *Repository) Update(ctx context.Context, size *models.Size) error {
	if size == nil {
		return fmt.Errorf("size is required")
	}
	return r.db.WithContext(ctx).Save(size).Error
}

// Delete removes the size row.
func (r *Repository) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND store_id = ?", id, storeID).
		Delete(&models.Size{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
