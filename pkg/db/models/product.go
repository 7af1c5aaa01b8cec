package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a sellable item; its image rows are replaced wholesale on update.
type Product struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID    uuid.UUID       `gorm:"column:store_id;type:uuid;not null"`
	CategoryID uuid.UUID       `gorm:"column:category_id;type:uuid;not null"`
	ColorID    uuid.UUID       `gorm:"column:color_id;type:uuid;not null"`
	SizeID     uuid.UUID       `gorm:"column:size_id;type:uuid;not null"`
	Name       string          `gorm:"column:name;not null"`
	Price      decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	IsFeatured bool            `gorm:"column:is_featured;not null;default:false"`
	IsArchived bool            `gorm:"column:is_archived;not null;default:false"`
	Images     []ProductImage  `gorm:"foreignKey:ProductID"`
	Category   *Category       `gorm:"foreignKey:CategoryID"`
	Color      *Color          `gorm:"foreignKey:ColorID"`
	Size       *Size           `gorm:"foreignKey:SizeID"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
