package sizes

import (
	"time"

	"github.com/google/uuid"

	"github.com/pverissimo/loja-admin-api/pkg/db/models"
)

// SizeDTO is the transport shape for a size option.
type SizeDTO struct {
	ID        uuid.UUID `json:"id"`
	StoreID   uuid.UUID `json:"store_id"`
	Name      string    `json:"name"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpsertSizeInput captures the mutable size fields.
type UpsertSizeInput struct {
	Name  string `json:"name" validate:"required,max=120"`
	Value string `json:"value" validate:"required,max=32"`
}

// FromModel maps the persisted size into a DTO.
func FromModel(m *models.Size) *SizeDTO {
	if m == nil {
		return nil
	}
	return &SizeDTO{
		ID:        m.ID,
		StoreID:   m.StoreID,
		Name:      m.Name,
		Value:     m.Value,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromModels maps a slice of sizes into DTOs.
func FromModels(ms []models.Size) []SizeDTO {
	out := make([]SizeDTO, 0, len(ms))
	for i := range ms {
		out = append(out, *FromModel(&ms[i]))
	}
	return out
}
