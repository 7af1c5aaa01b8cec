package sizes

import (
	"context"
	"testing"

	"github.com/pverissimo/loja-admin-api/internal/stores"
	"github.com/pverissimo/loja-admin-api/pkg/db/models"
	pkgerrors "github.com/pverissimo/loja-admin-api/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func TestServiceCreateSize(t *testing.T) {
	owner := uuid.New()
	storeID := uuid.New()
	svc := mustService(t, &stubSizeRepo{}, &stubGuard{owner: owner, storeID: storeID})

	dto, err := svc.Create(context.Background(), owner, storeID, UpsertSizeInput{
		Name:  "Large",
		Value: "L",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.Name != "Large" || dto.Value != "L" {
		t.Fatalf("unexpected size %+v", dto)
	}
}

func TestServiceCreateSizeMissingValue(t *testing.T) {
	owner := uuid.New()
	storeID := uuid.New()
	svc := mustService(t, &stubSizeRepo{}, &stubGuard{owner: owner, storeID: storeID})

	_, err := svc.Create(context.Background(), owner, storeID, UpsertSizeInput{Name: "Large"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceDeleteSizeBlockedByProducts(t *testing.T) {
	owner := uuid.New()
	storeID := uuid.New()
	svc := mustService(t, &stubSizeRepo{deleteErr: errForeignKey{}}, &stubGuard{owner: owner, storeID: storeID})

	err := svc.Delete(context.Background(), owner, storeID, uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if typed.Message() != deleteConflictMessage {
		t.Fatalf("unexpected message %q", typed.Message())
	}
}

func TestServiceGetByIDRejectsForeignStore(t *testing.T) {
	svc := mustService(t, &stubSizeRepo{}, &stubGuard{owner: uuid.New(), storeID: uuid.New()})

	_, err := svc.GetByID(context.Background(), uuid.New(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func mustService(t *testing.T, repo sizeRepository, guard storeGuard) Service {
	t.Helper()
	svc, err := NewService(repo, guard)
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

type stubSizeRepo struct {
	size      *models.Size
	deleteErr error
}

func (s *stubSizeRepo) Create(ctx context.Context, size *models.Size) error {
	size.ID = uuid.New()
	return nil
}

func (s *stubSizeRepo) FindByID(ctx context.Context, storeID, id uuid.UUID) (*models.Size, error) {
	if s.size == nil || s.size.ID != id || s.size.StoreID != storeID {
		return nil, gorm.ErrRecordNotFound
	}
	cpy := *s.size
	return &cpy, nil
}

func (s *stubSizeRepo) FindByStore(ctx context.Context, storeID uuid.UUID) ([]models.Size, error) {
	return nil, nil
}

func (s *stubSizeRepo) Update(ctx context.Context, size *models.Size) error {
	return nil
}

func (s *stubSizeRepo) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	return s.deleteErr
}

type errForeignKey struct{}

func (errForeignKey) Error() string {
	return `update or delete on table "sizes" violates foreign key constraint`
}
