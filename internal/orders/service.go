package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pverissimo/loja-admin-api/internal/stores"
	"github.com/pverissimo/loja-admin-api/pkg/db/models"
	pkgerrors "github.com/pverissimo/loja-admin-api/pkg/errors"
	"github.com/pverissimo/loja-admin-api/pkg/pagination"
)

type orderRepository interface {
	FindByStore(ctx context.Context, storeID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.Order, error)
	FindByID(ctx context.Context, storeID, id uuid.UUID) (*models.Order, error)
}

type storeGuard interface {
	RequireOwned(ctx context.Context, userID, storeID uuid.UUID) (*stores.StoreDTO, error)
}

// Service exposes the owner-scoped, read-only order views.
type Service interface {
	List(ctx context.Context, userID, storeID uuid.UUID, params pagination.Params) (*Page, error)
	GetByID(ctx context.Context, userID, storeID, id uuid.UUID) (*OrderDTO, error)
}

type service struct {
	repo  orderRepository
	guard storeGuard
}

// NewService builds an order service with the provided dependencies.
func NewService(repo orderRepository, guard storeGuard) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if guard == nil {
		return nil, fmt.Errorf("store guard required")
	}
	return &service{repo: repo, guard: guard}, nil
}

func (s *service) List(ctx context.Context, userID, storeID uuid.UUID, params pagination.Params) (*Page, error) {
	if _, err := s.guard.RequireOwned(ctx, userID, storeID); err != nil {
		return nil, err
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	rows, err := s.repo.FindByStore(ctx, storeID, cursor, pagination.LimitWithBuffer(params.Limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}

	page := &Page{}
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	page.Orders = FromModels(rows)
	return page, nil
}

func (s *service) GetByID(ctx context.Context, userID, storeID, id uuid.UUID) (*OrderDTO, error) {
	if _, err := s.guard.RequireOwned(ctx, userID, storeID); err != nil {
		return nil, err
	}

	order, err := s.repo.FindByID(ctx, storeID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}
	return FromModel(order), nil
}
