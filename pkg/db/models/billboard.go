package models

import (
	"time"

	"github.com/google/uuid"
)

// Billboard is a promotional banner referenced by categories.
type Billboard struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID   uuid.UUID `gorm:"column:store_id;type:uuid;not null"`
	Label     string    `gorm:"column:label;not null"`
	ImageURL  string    `gorm:"column:image_url;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
