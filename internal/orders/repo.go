package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pverissimo/loja-admin-api/pkg/db/models"
	"github.com/pverissimo/loja-admin-api/pkg/pagination"
)

// Repository reads orders for the admin dashboard. Orders are written by the
// storefront checkout, never here.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByStore returns up to limit orders for the store, newest first,
// resuming after the cursor when one is provided.
func (r *Repository) FindByStore(ctx context.Context, storeID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.Order, error) {
	q := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Where("store_id = ?", storeID)

	if cursor != nil {
		q = q.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var out []models.Order
	err := q.Order("created_at DESC, id DESC").Limit(limit).Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FindByID loads one order in the store with its items.
func (r *Repository) FindByID(ctx context.Context, storeID, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Where("store_id = ? AND id = ?", storeID, id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}
