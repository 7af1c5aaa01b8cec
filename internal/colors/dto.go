package colors

import (
	"time"

	"github.com/google/uuid"

	"github.com/pverissimo/loja-admin-api/pkg/db/models"
)

// ColorDTO is the transport shape for a color option.
type ColorDTO struct {
	ID        uuid.UUID `json:"id"`
	StoreID   uuid.UUID `json:"store_id"`
	Name      string    `json:"name"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpsertColorInput captures the mutable color fields.
type UpsertColorInput struct {
	Name  string `json:"name" validate:"required,max=120"`
	Value string `json:"value" validate:"required,hexcolor"`
}

// FromModel maps the persisted color into a DTO.
func FromModel(m *models.Color) *ColorDTO {
	if m == nil {
		return nil
	}
	return &ColorDTO{
		ID:        m.ID,
		StoreID:   m.StoreID,
		Name:      m.Name,
		Value:     m.Value,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromModels maps a slice of colors into DTOs.
func FromModels(ms []models.Color) []ColorDTO {
	out := make([]ColorDTO, 0, len(ms))
	for i := range ms {
		out = append(out, *FromModel(&ms[i]))
	}
	return out
}
