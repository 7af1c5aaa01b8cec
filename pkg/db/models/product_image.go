package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductImage holds one uploaded image URL for a product. Row identity is not
// stable across product updates.
type ProductImage struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	URL       string    `gorm:"column:url;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
