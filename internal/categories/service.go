package categories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pverissimo/loja-admin-api/internal/stores"
	"github.com/pverissimo/loja-admin-api/pkg/db"
	"github.com/pverissimo/loja-admin-api/pkg/db/models"
	pkgerrors "github.com/pverissimo/loja-admin-api/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const deleteConflictMessage = "remove all products using this category first"

type categoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	FindByID(ctx context.Context, storeID, id uuid.UUID) (*models.Category, error)
	FindByStore(ctx context.Context, storeID uuid.UUID) ([]models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, storeID, id uuid.UUID) error
}

type billboardFinder interface {
	FindByID(ctx context.Context, storeID, id uuid.UUID) (*models.Billboard, error)
}

type storeGuard interface {
	RequireOwned(ctx context.Context, userID, storeID uuid.UUID) (*stores.StoreDTO, error)
}

// Service exposes storefront reads and owner-scoped mutations for category operations.
type Service interface {
	List(ctx context.Context, storeID uuid.UUID) ([]CategoryDTO, error)
	GetByID(ctx context.Context, storeID, id uuid.UUID) (*CategoryDTO, error)
	Create(ctx context.Context, userID, storeID uuid.UUID, input UpsertCategoryInput) (*CategoryDTO, error)
	Update(ctx context.Context, userID, storeID, id uuid.UUID, input UpsertCategoryInput) (*CategoryDTO, error)
	Delete(ctx context.Context, userID, storeID, id uuid.UUID) error
}

type service struct {
	repo       categoryRepository
	billboards billboardFinder
	guard      storeGuard
}

// NewService builds a category service with the provided dependencies.
func NewService(repo categoryRepository, billboardRepo billboardFinder, guard storeGuard) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("category repository required")
	}
	if billboardRepo == nil {
		return nil, fmt.Errorf("billboard repository required")
	}
	if guard == nil {
		return nil, fmt.Errorf("store guard required")
	}
	return &service{repo: repo, billboards: billboardRepo, guard: guard}, nil
}

func (s *service) List(ctx context.Context, storeID uuid.UUID) ([]CategoryDTO, error) {
	categories, err := s.repo.FindByStore(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list categories")
	}
	return FromModels(categories), nil
}

func (s *service) GetByID(ctx context.Context, storeID, id uuid.UUID) (*CategoryDTO, error) {
	category, err := s.find(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	return FromModel(category), nil
}

func (s *service) Create(ctx context.Context, userID, storeID uuid.UUID, input UpsertCategoryInput) (*CategoryDTO, error) {
	if _, err := s.guard.RequireOwned(ctx, userID, storeID); err != nil {
		return nil, err
	}
	if err := s.validateBillboard(ctx, storeID, input.BillboardID); err != nil {
		return nil, err
	}

	category := &models.Category{
		StoreID:     storeID,
		BillboardID: input.BillboardID,
		Name:        strings.TrimSpace(input.Name),
	}
	if category.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	if err := s.repo.Create(ctx, category); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create category")
	}
	return FromModel(category), nil
}

func (s *service) Update(ctx context.Context, userID, storeID, id uuid.UUID, input UpsertCategoryInput) (*CategoryDTO, error) {
	if _, err := s.guard.RequireOwned(ctx, userID, storeID); err != nil {
		return nil, err
	}
	if err := s.validateBillboard(ctx, storeID, input.BillboardID); err != nil {
		return nil, err
	}

	category, err := s.find(ctx, storeID, id)
	if err != nil {
		return nil, err
	}

	category.Name = strings.TrimSpace(input.Name)
	category.BillboardID = input.BillboardID
	category.Billboard = nil
	if category.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	if err := s.repo.Update(ctx, category); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update category")
	}
	return FromModel(category), nil
}

func (s *service) Delete(ctx context.Context, userID, storeID, id uuid.UUID) error {
	if _, err := s.guard.RequireOwned(ctx, userID, storeID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, storeID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		if db.IsForeignKeyViolation(err) {
			return pkgerrors.New(pkgerrors.CodeConflict, deleteConflictMessage)
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete category")
	}
	return nil
}

func (s *service) validateBillboard(ctx context.Context, storeID, billboardID uuid.UUID) error {
	if billboardID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "billboard_id is required")
	}
	if _, err := s.billboards.FindByID(ctx, storeID, billboardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeValidation, "billboard does not belong to this store")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load billboard")
	}
	return nil
}

func (s *service) find(ctx context.Context, storeID, id uuid.UUID) (*models.Category, error) {
	category, err := s.repo.FindByID(ctx, storeID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load category")
	}
	return category, nil
}
