package billboards

import (
	"context"
	"fmt"

	"github.com/pverissimo/loja-admin-api/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles billboard persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to billboard operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new billboard row.
func (r *Repository) Create(ctx context.Context, billboard *models.Billboard) error {
	if billboard == nil {
		return fmt.Errorf("billboard is required")
	}
	return r.db.WithContext(ctx).Create(billboard).Error
}

// FindByID loads a billboard scoped to the store.
func (r *Repository) FindByID(ctx context.Context, storeID, id uuid.UUID) (*models.Billboard, error) {
	var billboard models.Billboard
	if err := r.db.WithContext(ctx).
		Where("id = ? AND store_id = ?", id, storeID).
		First(&billboard).Error; err != nil {
		return nil, err
	}
	return &billboard, nil
}

// FindByStore returns all billboards for the store, newest first.
func (r *Repository) FindByStore(ctx context.Context, storeID uuid.UUID) ([]models.Billboard, error) {
	var billboards []models.Billboard
	if err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&billboards).Error; err != nil {
		return nil, err
	}
	return billboards, nil
}

// Update saves the provided billboard.
func (r *Repository) Update(ctx context.Context, billboard *models.Billboard) error {
	if billboard == nil {
		return fmt.Errorf("billboard is required")
	}
	return r.db.WithContext(ctx).Save(billboard).Error
}

// Delete removes the billboard row.
func (r *Repository) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND store_id = ?", id, storeID).
		Delete(&models.Billboard{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ClearImageURL blanks the image URL on every billboard that references it.
// Used by the upload lifecycle when a blob is deleted.
func (r *Repository) ClearImageURL(ctx context.Context, url string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Billboard{}).
		Where("image_url = ?", url).
		Update("image_url", "")
	return res.RowsAffected, res.Error
}
