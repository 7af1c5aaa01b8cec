package colors

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

const deleteConflictMessage = "remove all products using this color first"

type colorRepository interface {
	Create(ctx context.Context, color *models.Color) error
	FindByID(ctx context.Context, storeID, id uuid.UUID) (*models.Color, error)
	FindByStore(ctx context.Context, storeID uuid.UUID) ([]models.Color, error)
	Update(ctx context.Context, color *models.Color) error
	Delete(ctx context.Context, storeID, id uuid.UUID) error
}

type storeGuard interface {
	RequireOwned(ctx context.Context, userID, storeID uuid.UUID) (*stores.StoreDTO, error)
}

// Service exposes storefront reads and owner-scoped mutations for color operations.
type Service interface {
	List(ctx context.Context, storeID uuid.UUID) ([]ColorDTO, error)
	GetByID(ctx context.Context, storeID, id uuid.UUID) (*ColorDTO, error)
	Create(ctx context.Context, userID, storeID uuid.UUID, input UpsertColorInput) (*ColorDTO, error)
	Update(ctx context.Context, userID, storeID, id uuid.UUID, input UpsertColorInput) (*ColorDTO, error)
	Delete(ctx context.Context, userID, storeID, id uuid.UUID) error
}

type service struct {
	repo  colorRepository
	guard storeGuard
}

// NewService builds a color service with the provided dependencies.
func NewService(repo colorRepository, guard storeGuard) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("color repository required")
	}
	if guard == nil {
		return nil, fmt.Errorf("store guard required")
	}
	return &service{repo: repo, guard: guard}, nil
}

func (s *service) List(ctx context.Context, storeID uuid.UUID) ([]ColorDTO, error) {
	rows, err := s.repo.FindByStore(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list colors")
	}
	return FromModels(rows), nil
}

func (s *service) GetByID(ctx context.Context, storeID, id uuid.UUID) (*ColorDTO, error) {
	row, err := s.find(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	return FromModel(row), nil
}

func (s *service) Create(ctx context.Context, userID, storeID uuid.UUID, input UpsertColorInput) (*ColorDTO, error) {
	if _, err := s.guard.RequireOwned(ctx, userID, storeID); err != nil {
		return nil, err
	}

	row := &models.Color{
		StoreID: storeID,
		Name:    strings.TrimSpace(input.Name),
		Value:   strings.TrimSpace(input.Value),
	}
	if err := validateFields(row.Name, row.Value); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create color")
	}
	return FromModel(row), nil
}

func (s *service) Update(ctx context.Context, userID, storeID, id uuid.UUID, input UpsertColorInput) (*ColorDTO, error) {
	if _, err := s.guard.RequireOwned(ctx, userID, storeID); err != nil {
		return nil, err
	}

	row, err := s.find(ctx, storeID, id)
	if err != nil {
		return nil, err
	}

	row.Name = strings.TrimSpace(input.Name)
	row.Value = strings.TrimSpace(input.Value)
	if err := validateFields(row.Name, row.Value); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update color")
	}
	return FromModel(row), nil
}

func (s *service) Delete(ctx context.Context, userID, storeID, id uuid.UUID) error {
	if _, err := s.guard.RequireOwned(ctx, userID, storeID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, storeID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "color not found")
		}
		if db.IsForeignKeyViolation(err) {
			return pkgerrors.New(pkgerrors.CodeConflict, deleteConflictMessage)
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete color")
	}
	return nil
}

func (s *service) find(ctx context.Context, storeID, id uuid.UUID) (*models.Color, error) {
	row, err := s.repo.FindByID(ctx, storeID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "color not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load color")
	}
	return row, nil
}
