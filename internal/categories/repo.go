package categories

import (
	"context"
	"fmt"

	"github.com/pverissimo/loja-admin-api/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles category persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to category operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new category row.
func (r *Repository) Create(ctx context.Context, category *models.Category) error {
	if category == nil {
		return fmt.Errorf("category is required")
	}
	return r.db.WithContext(ctx).Create(category).Error
}

// FindByID loads a category scoped to the store, with its billboard.
func (r *Repository) FindByID(ctx context.Context, storeID, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).
		Preload("Billboard").
		Where("id = ? AND store_id = ?", id, storeID).
		First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindByStore returns all categories for the store with billboards, newest first.
func (r *Repository) FindByStore(ctx context.Context, storeID uuid.UUID) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).
		Preload("Billboard").
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Update saves the provided category.
func (r *Repository) Update(ctx context.Context, category *models.Category) error {
	if category == nil {
		return fmt.Errorf("category is required")
	}
	return r.db.WithContext(ctx).Save(category).Error
}

// Delete removes the category row.
func (r *Repository) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND store_id = ?", id, storeID).
		Delete(&models.Category{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
