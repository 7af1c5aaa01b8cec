package stores

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pverissimo/loja-admin-api/pkg/db"
	"github.com/pverissimo/loja-admin-api/pkg/db/models"
	pkgerrors "github.com/pverissimo/loja-admin-api/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxStoresPerUser caps how many stores a single account can own.
const MaxStoresPerUser = 10

const deleteConflictMessage = "remove all products and categories using this store first"

type storeRepository interface {
	Create(ctx context.Context, dto CreateStoreDTO) (*models.Store, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
	FindByOwner(ctx context.Context, userID uuid.UUID) ([]models.Store, error)
	CountByOwner(ctx context.Context, userID uuid.UUID) (int64, error)
	Update(ctx context.Context, store *models.Store) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service exposes owner-scoped store operations.
type Service interface {
	List(ctx context.Context, userID uuid.UUID) ([]StoreDTO, error)
	GetByID(ctx context.Context, userID, storeID uuid.UUID) (*StoreDTO, error)
	Create(ctx context.Context, userID uuid.UUID, input UpsertStoreInput) (*StoreDTO, error)
	Update(ctx context.Context, userID, storeID uuid.UUID, input UpsertStoreInput) (*StoreDTO, error)
	Delete(ctx context.Context, userID, storeID uuid.UUID) error
	RequireOwned(ctx context.Context, userID, storeID uuid.UUID) (*StoreDTO, error)
}

// UpsertStoreInput captures the mutable store fields.
type UpsertStoreInput struct {
	Name string `json:"name" validate:"required,max=120"`
}

type service struct {
	repo storeRepository
}

// NewService builds a store service with the provided repository.
func NewService(repo storeRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]StoreDTO, error) {
	stores, err := s.repo.FindByOwner(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list stores")
	}
	return FromModels(stores), nil
}

func (s *service) GetByID(ctx context.Context, userID, storeID uuid.UUID) (*StoreDTO, error) {
	store, err := s.owned(ctx, userID, storeID)
	if err != nil {
		return nil, err
	}
	return FromModel(store), nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, input UpsertStoreInput) (*StoreDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	count, err := s.repo.CountByOwner(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count stores")
	}
	if count >= MaxStoresPerUser {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, fmt.Sprintf("cannot own more than %d stores", MaxStoresPerUser))
	}

	store, err := s.repo.Create(ctx, CreateStoreDTO{Name: name, UserID: userID})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "store name already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create store")
	}
	return FromModel(store), nil
}

func (s *service) Update(ctx context.Context, userID, storeID uuid.UUID, input UpsertStoreInput) (*StoreDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	store, err := s.owned(ctx, userID, storeID)
	if err != nil {
		return nil, err
	}

	store.Name = name
	if err := s.repo.Update(ctx, store); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "store name already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update store")
	}
	return FromModel(store), nil
}

func (s *service) Delete(ctx context.Context, userID, storeID uuid.UUID) error {
	if _, err := s.owned(ctx, userID, storeID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, storeID); err != nil {
		if db.IsForeignKeyViolation(err) {
			return pkgerrors.New(pkgerrors.CodeConflict, deleteConflictMessage)
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete store")
	}
	return nil
}

// RequireOwned verifies the store exists and belongs to the user. Sibling
// services use it before touching store-scoped children.
func (s *service) RequireOwned(ctx context.Context, userID, storeID uuid.UUID) (*StoreDTO, error) {
	store, err := s.owned(ctx, userID, storeID)
	if err != nil {
		return nil, err
	}
	return FromModel(store), nil
}

func (s *service) owned(ctx context.Context, userID, storeID uuid.UUID) (*models.Store, error) {
	store, err := s.repo.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load store")
	}
	if store.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "store access denied")
	}
	return store, nil
}
