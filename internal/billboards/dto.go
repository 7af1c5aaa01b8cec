package billboards

import (
	"time"

	"github.com/google/uuid"

	"github.com/pverissimo/loja-admin-api/pkg/db/models"
)

// BillboardDTO is the transport shape for a storefront banner.
type BillboardDTO struct {
	ID        uuid.UUID `json:"id"`
	StoreID   uuid.UUID `json:"store_id"`
	Label     string    `json:"label"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpsertBillboardInput captures the mutable billboard fields.
type UpsertBillboardInput struct {
	Label    string `json:"label" validate:"required,max=120"`
	ImageURL string `json:"image_url" validate:"required,url"`
}

// FromModel maps the persisted billboard into a DTO.
func FromModel(m *models.Billboard) *BillboardDTO {
	if m == nil {
		return nil
	}
	return &BillboardDTO{
		ID:        m.ID,
		StoreID:   m.StoreID,
		Label:     m.Label,
		ImageURL:  m.ImageURL,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromModels maps a slice of billboards into DTOs.
func FromModels(ms []models.Billboard) []BillboardDTO {
	out := make([]BillboardDTO, 0, len(ms))
	for i := range ms {
		out = append(out, *FromModel(&ms[i]))
	}
	return out
}
