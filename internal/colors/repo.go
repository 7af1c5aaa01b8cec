package colors

import (
	"context"
	"fmt"

	"github.com/pverissimo/loja-admin-api/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles color persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to color operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new color row.
func (r *Repository) Create(ctx context.Context, color *models.Color) error {
	if color == nil {
		return fmt.Errorf("color is required")
	}
	return r.db.WithContext(ctx).Create(color).Error
}

// FindByID loads a color scoped to the store.
func (r *Repository) FindByID(ctx context.Context, storeID, id uuid.UUID) (*models.Color, error) {
	var color models.Color
	if err := r.db.WithContext(ctx).
		Where("id = ? AND store_id = ?", id, storeID).
		First(&color).Error; err != nil {
		return nil, err
	}
	return &color, nil
}

// FindByStore returns all colors for the store, newest first.
func (r *Repository) FindByStore(ctx context.Context, storeID uuid.UUID) ([]models.Color, error) {
	var colors []models.Color
	if err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&colors).Error; err != nil {
		return nil, err
	}
	return colors, nil
}

// Update saves the provided color.
func (r *Repository) Update(ctx context.Context, color *models.Color) error {
	if color == nil {
		return fmt.Errorf("color is required")
	}
	return r.db.WithContext(ctx).Save(color).Error
}

// Delete removes the color row.
func (r *Repository) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND store_id = ?", id, storeID).
		Delete(&models.Color{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
