package models

import (
	"time"

	"github.com/google/uuid"
)

// Order is created by the storefront checkout; this service only reads it.
type Order struct {
	ID        uuid.UUID   `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID   uuid.UUID   `gorm:"column:store_id;type:uuid;not null"`
	Phone     string      `gorm:"column:phone;not null;default:''"`
	Address   string      `gorm:"column:address;not null;default:''"`
	IsPaid    bool        `gorm:"column:is_paid;not null;default:false"`
	Items     []OrderItem `gorm:"foreignKey:OrderID"`
	CreatedAt time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}
