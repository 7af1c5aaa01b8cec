package billboards

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

const deleteConflictMessage = "remove all categories using this billboard first"

type billboardRepository interface {
	Create(ctx context.Context, billboard *models.Billboard) error
	FindByID(ctx context.Context, storeID, id uuid.UUID) (*models.Billboard, error)
	FindByStore(ctx context.Context, storeID uuid.UUID) ([]models.Billboard, error)
	Update(ctx context.Context, billboard *models.Billboard) error
	Delete(ctx context.Context, storeID, id uuid.UUID) error
}

type storeGuard interface {
	RequireOwned(ctx context.Context, userID, storeID uuid.UUID) (*stores.StoreDTO, error)
}

// Service exposes storefront reads and owner-scoped mutations for billboard operations.
type Service interface {
	List(ctx context.Context, storeID uuid.UUID) ([]BillboardDTO, error)
	GetByID(ctx context.Context, storeID, id uuid.UUID) (*BillboardDTO, error)
	Create(ctx context.Context, userID, storeID uuid.UUID, input UpsertBillboardInput) (*BillboardDTO, error)
	Update(ctx context.Context, userID, storeID, id uuid.UUID, input UpsertBillboardInput) (*BillboardDTO, error)
	Delete(ctx context.Context, userID, storeID, id uuid.UUID) error
}

type service struct {
	repo  billboardRepository
	guard storeGuard
}

// NewService builds a billboard service with the provided dependencies.
func NewService(repo billboardRepository, guard storeGuard) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("billboard repository required")
	}
	if guard == nil {
		return nil, fmt.Errorf("store guard required")
	}
	return &service{repo: repo, guard: guard}, nil
}

func (s *service) List(ctx context.Context, storeID uuid.UUID) ([]BillboardDTO, error) {
	billboards, err := s.repo.FindByStore(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list billboards")
	}
	return FromModels(billboards), nil
}

func (s *service) GetByID(ctx context.Context, storeID, id uuid.UUID) (*BillboardDTO, error) {
	billboard, err := s.find(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	return FromModel(billboard), nil
}

func (s *service) Create(ctx context.Context, userID, storeID uuid.UUID, input UpsertBillboardInput) (*BillboardDTO, error) {
	if _, err := s.guard.RequireOwned(ctx, userID, storeID); err != nil {
		return nil, err
	}

	billboard := &models.Billboard{
		StoreID:  storeID,
		Label:    strings.TrimSpace(input.Label),
		ImageURL: strings.TrimSpace(input.ImageURL),
	}
	if billboard.Label == "" || billboard.ImageURL == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "label and image_url are required")
	}

	if err := s.repo.Create(ctx, billboard); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create billboard")
	}
	return FromModel(billboard), nil
}

func (s *service) Update(ctx context.Context, userID, storeID, id uuid.UUID, input UpsertBillboardInput) (*BillboardDTO, error) {
	if _, err := s.guard.RequireOwned(ctx, userID, storeID); err != nil {
		return nil, err
	}

	billboard, err := s.find(ctx, storeID, id)
	if err != nil {
		return nil, err
	}

	billboard.Label = strings.TrimSpace(input.Label)
	billboard.ImageURL = strings.TrimSpace(input.ImageURL)
	if billboard.Label == "" || billboard.ImageURL == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "label and image_url are required")
	}

	if err := s.repo.Update(ctx, billboard); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update billboard")
	}
	return FromModel(billboard), nil
}

func (s *service) Delete(ctx context.Context, userID, storeID, id uuid.UUID) error {
	if _, err := s.guard.RequireOwned(ctx, userID, storeID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, storeID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "billboard not found")
		}
		if db.IsForeignKeyViolation(err) {
			return pkgerrors.New(pkgerrors.CodeConflict, deleteConflictMessage)
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete billboard")
	}
	return nil
}

func (s *service) find(ctx context.Context, storeID, id uuid.UUID) (*models.Billboard, error) {
	billboard, err := s.repo.FindByID(ctx, storeID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "billboard not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load billboard")
	}
	return billboard, nil
}
