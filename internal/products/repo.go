package products

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pverissimo/loja-admin-api/pkg/db/models"
)

// Repository persists products and their image rows.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the product together with its image rows.
func (r *Repository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// FindByID loads one product in the store with its images and reference rows.
func (r *Repository) FindByID(ctx context.Context, storeID, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Images").
		Preload("Category").
		Preload("Color").
		Preload("Size").
		Where("store_id = ? AND id = ?", storeID, id).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByStore lists products in the store, newest first, narrowed by filter.
func (r *Repository) FindByStore(ctx context.Context, storeID uuid.UUID, filter ListFilter) ([]models.Product, error) {
	q := r.db.WithContext(ctx).
		Preload("Images").
		Preload("Category").
		Preload("Color").
		Preload("Size").
		Where("store_id = ?", storeID)

	if filter.CategoryID != uuid.Nil {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	if filter.ColorID != uuid.Nil {
		q = q.Where("color_id = ?", filter.ColorID)
	}
	if filter.SizeID != uuid.Nil {
		q = q.Where("size_id = ?", filter.SizeID)
	}
	if filter.Featured != nil {
		q = q.Where("is_featured = ?", *filter.Featured)
	}
	if !filter.IncludeArchived {
		q = q.Where("is_archived = FALSE")
	}

	var out []models.Product
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateWithImages saves the product columns and replaces its image rows
// wholesale in one transaction.
func (r *Repository) UpdateWithImages(ctx context.Context, product *models.Product, imageURLs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Omit("Images", "Category", "Color", "Size").Save(product).Error
		if err != nil {
			return err
		}

		err = tx.Where("product_id = ?", product.ID).Delete(&models.ProductImage{}).Error
		if err != nil {
			return err
		}

		rows := make([]models.ProductImage, 0, len(imageURLs))
		for _, url := range imageURLs {
			rows = append(rows, models.ProductImage{ProductID: product.ID, URL: url})
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

// Delete removes the product in the store. Image rows go with it through the
// cascade; order item references keep the row in place.
func (r *Repository) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("store_id = ? AND id = ?", storeID, id).
		Delete(&models.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
