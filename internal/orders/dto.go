package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pverissimo/loja-admin-api/pkg/db/models"
)

// OrderItemDTO is one purchased product inside an order.
type OrderItemDTO struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
}

// OrderDTO is the read-only admin view of a storefront order. Total is the
// sum of the item prices at their current values.
type OrderDTO struct {
	ID        uuid.UUID       `json:"id"`
	StoreID   uuid.UUID       `json:"store_id"`
	Phone     string          `json:"phone"`
	Address   string          `json:"address"`
	IsPaid    bool            `json:"is_paid"`
	Total     decimal.Decimal `json:"total"`
	Items     []OrderItemDTO  `json:"items"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Page is one cursor page of orders.
type Page struct {
	Orders     []OrderDTO `json:"orders"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

// FromModel maps a persisted order into its admin projection.
func FromModel(m *models.Order) *OrderDTO {
	if m == nil {
		return nil
	}

	total := decimal.Zero
	items := make([]OrderItemDTO, 0, len(m.Items))
	for _, item := range m.Items {
		dto := OrderItemDTO{
			ID:        item.ID,
			ProductID: item.ProductID,
		}
		if item.Product != nil {
			dto.ProductName = item.Product.Name
			dto.Price = item.Product.Price
			total = total.Add(item.Product.Price)
		}
		items = append(items, dto)
	}

	return &OrderDTO{
		ID:        m.ID,
		StoreID:   m.StoreID,
		Phone:     m.Phone,
		Address:   m.Address,
		IsPaid:    m.IsPaid,
		Total:     total,
		Items:     items,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromModels maps a slice of orders into DTOs.
func FromModels(ms []models.Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(ms))
	for i := range ms {
		out = append(out, *FromModel(&ms[i]))
	}
	return out
}
