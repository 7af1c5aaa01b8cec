package categories

import (
	"context"
	"testing"

	"github.com/pverissimo/loja-admin-api/internal/stores"
	"github.com/pverissimo/loja-admin-api/pkg/db/models"
	pkgerrors "github.com/pverissimo/loja-admin-api/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func TestServiceCreateCategory(t *testing.T) {
	owner := uuid.New()
	storeID := uuid.New()
	billboard := &models.Billboard{ID: uuid.New(), StoreID: storeID}
	repo := &stubCategoryRepo{}
	svc := mustService(t, repo, &stubBillboardFinder{billboard: billboard}, &stubGuard{owner: owner, storeID: storeID})

	dto, err := svc.Create(context.Background(), owner, storeID, UpsertCategoryInput{
		Name:        "Shirts",
		BillboardID: billboard.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.BillboardID != billboard.ID {
		t.Fatalf("expected billboard %s, got %s", billboard.ID, dto.BillboardID)
	}
}

func TestServiceCreateCategoryRejectsForeignBillboard(t *testing.T) {
	owner := uuid.New()
	storeID := uuid.New()
	svc := mustService(t, &stubCategoryRepo{}, &stubBillboardFinder{}, &stubGuard{owner: owner, storeID: storeID})

	_, err := svc.Create(context.Background(), owner, storeID, UpsertCategoryInput{
		Name:        "Shirts",
		BillboardID: uuid.New(),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceDeleteCategoryBlockedByProducts(t *testing.T) {
	owner := uuid.New()
	storeID := uuid.New()
	repo := &stubCategoryRepo{deleteErr: errForeignKey{}}
	svc := mustService(t, repo, &stubBillboardFinder{}, &stubGuard{owner: owner, storeID: storeID})

	err := svc.Delete(context.Background(), owner, storeID, uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if typed.Message() != deleteConflictMessage {
		t.Fatalf("unexpected message %q", typed.Message())
	}
}

func TestServiceDeleteRejectsForeignOwner(t *testing.T) {
	storeID := uuid.New()
	svc := mustService(t, &stubCategoryRepo{}, &stubBillboardFinder{}, &stubGuard{owner: uuid.New(), storeID: storeID})

	err := svc.Delete(context.Background(), uuid.New(), storeID, uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func mustService(t *testing.T, repo categoryRepository, finder billboardFinder, guard storeGuard) Service {
	t.Helper()
	svc, err := NewService(repo, finder, guard)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

type stubGuard struct {
	owner   uuid.UUID
	storeID uuid.UUID
}

func (s *stubGuard) RequireOwned(ctx context.Context, userID, storeID uuid.UUID) (*stores.StoreDTO, error) {
	if storeID != s.storeID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
	}
	if userID != s.owner {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "store access denied")
	}
	return &stores.StoreDTO{ID: storeID, UserID: userID}, nil
}

type stubBillboardFinder struct {
	billboard *models.Billboard
}

func (s *stubBillboardFinder) FindByID(ctx context.Context, storeID, id uuid.UUID) (*models.Billboard, error) {
	if s.billboard == nil || s.billboard.ID != id || s.billboard.StoreID != storeID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.billboard, nil
}

type stubCategoryRepo struct {
	category  *models.Category
	deleteErr error
}

func (s *stubCategoryRepo) Create(ctx context.Context, category *models.Category) error {
	category.ID = uuid.New()
	return nil
}

func (s *stubCategoryRepo) FindByID(ctx context.Context, storeID, id uuid.UUID) (*models.Category, error) {
	if s.category == nil || s.category.ID != id || s.category.StoreID != storeID {
		return nil, gorm.ErrRecordNotFound
	}
	cpy := *s.category
	return &cpy, nil
}

func (s *stubCategoryRepo) FindByStore(ctx context.Context, storeID uuid.UUID) ([]models.Category, error) {
	return nil, nil
}

func (s *stubCategoryRepo) Update(ctx context.Context, category *models.Category) error {
	return nil
}

func (s *stubCategoryRepo) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	return s.deleteErr
}

type errForeignKey struct{}

func (errForeignKey) Error() string {
	return `update or delete on table "categories" violates foreign key constraint`
}
