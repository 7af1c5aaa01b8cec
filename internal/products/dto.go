package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pverissimo/loja-admin-api/internal/colors"
	"github.com/pverissimo/loja-admin-api/internal/sizes"
	"github.com/pverissimo/loja-admin-api/pkg/db/models"
)

// ProductImageDTO carries one uploaded image URL.
type ProductImageDTO struct {
	ID        uuid.UUID `json:"id"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// CategorySummary is the category shape embedded in product payloads.
type CategorySummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ProductDTO is the transport shape for a sellable product.
type ProductDTO struct {
	ID         uuid.UUID         `json:"id"`
	StoreID    uuid.UUID         `json:"store_id"`
	CategoryID uuid.UUID         `json:"category_id"`
	ColorID    uuid.UUID         `json:"color_id"`
	SizeID     uuid.UUID         `json:"size_id"`
	Name       string            `json:"name"`
	Price      decimal.Decimal   `json:"price"`
	IsFeatured bool              `json:"is_featured"`
	IsArchived bool              `json:"is_archived"`
	Images     []ProductImageDTO `json:"images"`
	Category   *CategorySummary  `json:"category,omitempty"`
	Color      *colors.ColorDTO  `json:"color,omitempty"`
	Size       *sizes.SizeDTO    `json:"size,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// ImageInput is one image URL submitted with a product.
type ImageInput struct {
	URL string `json:"url" validate:"required,url"`
}

// UpsertProductInput captures the mutable product fields. Images replace the
// stored set wholesale.
type UpsertProductInput struct {
	Name       string          `json:"name" validate:"required,max=120"`
	Price      decimal.Decimal `json:"price"`
	CategoryID uuid.UUID       `json:"category_id" validate:"required"`
	ColorID    uuid.UUID       `json:"color_id" validate:"required"`
	SizeID     uuid.UUID       `json:"size_id" validate:"required"`
	Images     []ImageInput    `json:"images" validate:"required,min=1,dive"`
	IsFeatured bool            `json:"is_featured"`
	IsArchived bool            `json:"is_archived"`
}

// ListFilter narrows product listings; zero values mean no filtering.
// Archived products are hidden unless IncludeArchived is set.
type ListFilter struct {
	CategoryID      uuid.UUID
	ColorID         uuid.UUID
	SizeID          uuid.UUID
	Featured        *bool
	IncludeArchived bool
}

// FromModel maps the persisted product into a DTO.
func FromModel(m *models.Product) *ProductDTO {
	if m == nil {
		return nil
	}

	images := make([]ProductImageDTO, 0, len(m.Images))
	for _, img := range m.Images {
		images = append(images, ProductImageDTO{
			ID:        img.ID,
			URL:       img.URL,
			CreatedAt: img.CreatedAt,
		})
	}

	dto := &ProductDTO{
		ID:         m.ID,
		StoreID:    m.StoreID,
		CategoryID: m.CategoryID,
		ColorID:    m.ColorID,
		SizeID:     m.SizeID,
		Name:       m.Name,
		Price:      m.Price,
		IsFeatured: m.IsFeatured,
		IsArchived: m.IsArchived,
		Images:     images,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}

	if m.Category != nil {
		dto.Category = &CategorySummary{ID: m.Category.ID, Name: m.Category.Name}
	}
	dto.Color = colors.FromModel(m.Color)
	dto.Size = sizes.FromModel(m.Size)

	return dto
}

// FromModels maps a slice of products into DTOs.
func FromModels(ms []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(ms))
	for i := range ms {
		out = append(out, *FromModel(&ms[i]))
	}
	return out
}
