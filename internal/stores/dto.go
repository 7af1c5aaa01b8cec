package stores

import (
	"time"

	"github.com/google/uuid"

	"github.com/pverissimo/loja-admin-api/pkg/db/models"
)

// StoreDTO exposes tenant data in API responses.
type StoreDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateStoreDTO holds creation-time data for a new store.
type CreateStoreDTO struct {
	Name   string
	UserID uuid.UUID
}

// FromModel maps the persisted store into a DTO.
func FromModel(m *models.Store) *StoreDTO {
	if m == nil {
		return nil
	}
	return &StoreDTO{
		ID:        m.ID,
		Name:      m.Name,
		UserID:    m.UserID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromModels maps a slice of stores into DTOs.
func FromModels(ms []models.Store) []StoreDTO {
	out := make([]StoreDTO, 0, len(ms))
	for i := range ms {
		out = append(out, *FromModel(&ms[i]))
	}
	return out
}

// ToModel prepares the GORM model from the creation DTO.
func (c CreateStoreDTO) ToModel() *models.Store {
	return &models.Store{
		Name:   c.Name,
		UserID: c.UserID,
	}
}
