package categories

import (
	"time"

	"github.com/google/uuid"

	"github.com/pverissimo/loja-admin-api/internal/billboards"
	"github.com/pverissimo/loja-admin-api/pkg/db/models"
)

// CategoryDTO is the transport shape for a product category.
type CategoryDTO struct {
	ID          uuid.UUID                 `json:"id"`
	StoreID     uuid.UUID                 `json:"store_id"`
	BillboardID uuid.UUID                 `json:"billboard_id"`
	Name        string                    `json:"name"`
	Billboard   *billboards.BillboardDTO  `json:"billboard,omitempty"`
	CreatedAt   time.Time                 `json:"created_at"`
	UpdatedAt   time.Time                 `json:"updated_at"`
}

// UpsertCategoryInput captures the mutable category fields.
type UpsertCategoryInput struct {
	Name        string    `json:"name" validate:"required,max=120"`
	BillboardID uuid.UUID `json:"billboard_id" validate:"required"`
}

// FromModel maps the persisted category into a DTO.
func FromModel(m *models.Category) *CategoryDTO {
	if m == nil {
		return nil
	}
	return &CategoryDTO{
		ID:          m.ID,
		StoreID:     m.StoreID,
		BillboardID: m.BillboardID,
		Name:        m.Name,
		Billboard:   billboards.FromModel(m.Billboard),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FromModels maps a slice of categories into DTOs.
func FromModels(ms []models.Category) []CategoryDTO {
	out := make([]CategoryDTO, 0, len(ms))
	for i := range ms {
		out = append(out, *FromModel(&ms[i]))
	}
	return out
}
