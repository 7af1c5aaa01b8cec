package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/pverissimo/loja-admin-api/internal/stores"
	"github.com/pverissimo/loja-admin-api/pkg/db"
	"github.com/pverissimo/loja-admin-api/pkg/db/models"
	pkgerrors "github.com/pverissimo/loja-admin-api/pkg/errors"
	"github.com/pverissimo/loja-admin-api/pkg/logger"
)

const (
	deleteConflictMessage = "remove all orders using this product first"

	// DefaultMaxImages bounds the image set when no limit is configured.
	DefaultMaxImages = 10
)

type productRepository interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, storeID, id uuid.UUID) (*models.Product, error)
	FindByStore(ctx context.Context, storeID uuid.UUID, filter ListFilter) ([]models.Product, error)
	UpdateWithImages(ctx context.Context, product *models.Product, imageURLs []string) error
	Delete(ctx context.Context, storeID, id uuid.UUID) error
}

type storeGuard interface {
	RequireOwned(ctx context.Context, userID, storeID uuid.UUID) (*stores.StoreDTO, error)
}

type categoryFinder interface {
	FindByID(ctx context.Context, storeID, id uuid.UUID) (*models.Category, error)
}

type colorFinder interface {
	FindByID(ctx context.Context, storeID, id uuid.UUID) (*models.Color, error)
}

type sizeFinder interface {
	FindByID(ctx context.Context, storeID, id uuid.UUID) (*models.Size, error)
}

// blobRemover deletes an uploaded object by its public URL. Removal is best
// effort; a failure leaves an orphaned blob, never a broken product.
type blobRemover interface {
	Remove(ctx context.Context, url string) error
}

// Service exposes storefront reads and owner-scoped mutations for products.
type Service interface {
	List(ctx context.Context, storeID uuid.UUID, filter ListFilter) ([]ProductDTO, error)
	GetByID(ctx context.Context, storeID, id uuid.UUID) (*ProductDTO, error)
	Create(ctx context.Context, userID, storeID uuid.UUID, input UpsertProductInput) (*ProductDTO, error)
	Update(ctx context.Context, userID, storeID, id uuid.UUID, input UpsertProductInput) (*ProductDTO, error)
	Delete(ctx context.Context, userID, storeID, id uuid.UUID) error
}

// ServiceParams carries the product service dependencies.
type ServiceParams struct {
	Repo       productRepository
	Guard      storeGuard
	Categories categoryFinder
	Colors     colorFinder
	Sizes      sizeFinder
	Blobs      blobRemover
	Logg       *logger.Logger
	MaxImages  int
}

type service struct {
	repo       productRepository
	guard      storeGuard
	categories categoryFinder
	colors     colorFinder
	sizes      sizeFinder
	blobs      blobRemover
	logg       *logger.Logger
	maxImages  int
}

// NewService builds a product service. Blobs may be nil, in which case delete
// leaves uploaded images in place.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if params.Guard == nil {
		return nil, fmt.Errorf("store guard required")
	}
	if params.Categories == nil || params.Colors == nil || params.Sizes == nil {
		return nil, fmt.Errorf("category, color and size finders required")
	}
	maxImages := params.MaxImages
	if maxImages <= 0 {
		maxImages = DefaultMaxImages
	}
	return &service{
		repo:       params.Repo,
		guard:      params.Guard,
		categories: params.Categories,
		colors:     params.Colors,
		sizes:      params.Sizes,
		blobs:      params.Blobs,
		logg:       params.Logg,
		maxImages:  maxImages,
	}, nil
}

func (s *service) List(ctx context.Context, storeID uuid.UUID, filter ListFilter) ([]ProductDTO, error) {
	products, err := s.repo.FindByStore(ctx, storeID, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	return FromModels(products), nil
}

func (s *service) GetByID(ctx context.Context, storeID, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.find(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	return FromModel(product), nil
}

func (s *service) Create(ctx context.Context, userID, storeID uuid.UUID, input UpsertProductInput) (*ProductDTO, error) {
	if _, err := s.guard.RequireOwned(ctx, userID, storeID); err != nil {
		return nil, err
	}

	urls, err := s.validateInput(ctx, storeID, &input)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		StoreID:    storeID,
		CategoryID: input.CategoryID,
		ColorID:    input.ColorID,
		SizeID:     input.SizeID,
		Name:       strings.TrimSpace(input.Name),
		Price:      input.Price,
		IsFeatured: input.IsFeatured,
		IsArchived: input.IsArchived,
	}
	for _, url := range urls {
		product.Images = append(product.Images, models.ProductImage{URL: url})
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}
	return FromModel(product), nil
}

func (s *service) Update(ctx context.Context, userID, storeID, id uuid.UUID, input UpsertProductInput) (*ProductDTO, error) {
	if _, err := s.guard.RequireOwned(ctx, userID, storeID); err != nil {
		return nil, err
	}

	product, err := s.find(ctx, storeID, id)
	if err != nil {
		return nil, err
	}

	urls, err := s.validateInput(ctx, storeID, &input)
	if err != nil {
		return nil, err
	}

	product.CategoryID = input.CategoryID
	product.ColorID = input.ColorID
	product.SizeID = input.SizeID
	product.Name = strings.TrimSpace(input.Name)
	product.Price = input.Price
	product.IsFeatured = input.IsFeatured
	product.IsArchived = input.IsArchived
	product.Images = nil
	product.Category = nil
	product.Color = nil
	product.Size = nil

	if err := s.repo.UpdateWithImages(ctx, product, urls); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product")
	}
	for _, url := range urls {
		product.Images = append(product.Images, models.ProductImage{ProductID: product.ID, URL: url})
	}
	return FromModel(product), nil
}

func (s *service) Delete(ctx context.Context, userID, storeID, id uuid.UUID) error {
	if _, err := s.guard.RequireOwned(ctx, userID, storeID); err != nil {
		return err
	}

	product, err := s.find(ctx, storeID, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, storeID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		if db.IsForeignKeyViolation(err) {
			return pkgerrors.New(pkgerrors.CodeConflict, deleteConflictMessage)
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product")
	}

	s.removeBlobs(ctx, product.Images)
	return nil
}

// removeBlobs deletes the uploaded image objects after the row is gone.
// Failures are logged and swallowed; the orphaned blob is recoverable out of
// band while a half-deleted product is not.
func (s *service) removeBlobs(ctx context.Context, images []models.ProductImage) {
	if s.blobs == nil || len(images) == 0 {
		return
	}

	var combined error
	for _, img := range images {
		if err := s.blobs.Remove(ctx, img.URL); err != nil {
			combined = multierr.Append(combined, err)
		}
	}
	if combined != nil && s.logg != nil {
		s.logg.Error(ctx, "product image cleanup incomplete", combined)
	}
}

func (s *service) validateInput(ctx context.Context, storeID uuid.UUID, input *UpsertProductInput) ([]string, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}

	urls := make([]string, 0, len(input.Images))
	for _, img := range input.Images {
		url := strings.TrimSpace(img.URL)
		if url == "" {
			continue
		}
		urls = append(urls, url)
	}
	if len(urls) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one image is required")
	}
	if len(urls) > s.maxImages {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("a product can have at most %d images", s.maxImages))
	}

	if err := s.checkReference(ctx, storeID, input.CategoryID, "category", func(ctx context.Context, storeID, id uuid.UUID) error {
		_, err := s.categories.FindByID(ctx, storeID, id)
		return err
	}); err != nil {
		return nil, err
	}
	if err := s.checkReference(ctx, storeID, input.ColorID, "color", func(ctx context.Context, storeID, id uuid.UUID) error {
		_, err := s.colors.FindByID(ctx, storeID, id)
		return err
	}); err != nil {
		return nil, err
	}
	if err := s.checkReference(ctx, storeID, input.SizeID, "size", func(ctx context.Context, storeID, id uuid.UUID) error {
		_, err := s.sizes.FindByID(ctx, storeID, id)
		return err
	}); err != nil {
		return nil, err
	}

	return urls, nil
}

func (s *service) checkReference(ctx context.Context, storeID, id uuid.UUID, kind string, find func(ctx context.Context, storeID, id uuid.UUID) error) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s_id is required", kind))
	}
	if err := find(ctx, storeID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s does not belong to this store", kind))
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "validate product "+kind)
	}
	return nil
}

func (s *service) find(ctx context.Context, storeID, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, storeID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	return product, nil
}
