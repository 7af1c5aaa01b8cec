package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products under a billboard.
type Category struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID     uuid.UUID  `gorm:"column:store_id;type:uuid;not null"`
	BillboardID uuid.UUID  `gorm:"column:billboard_id;type:uuid;not null"`
	Name        string     `gorm:"column:name;not null"`
	Billboard   *Billboard `gorm:"foreignKey:BillboardID"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
