package colors

import (
	"context"
	"testing"

	"github.com/pverissimo/loja-admin-api/internal/stores"
	"github.com/pverissimo/loja-admin-api/pkg/db/models"
	pkgerrors "github.com/pverissimo/loja-admin-api/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func TestServiceCreateColor(t *testing.T) {
	owner := uuid.New()
	storeID := uuid.New()
	svc := mustService(t, &stubColorRepo{}, &stubGuard{owner: owner, storeID: storeID})

	dto, err := svc.Create(context.Background(), owner, storeID, UpsertColorInput{
		Name:  "Forest",
		Value: "#228b22",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.Value != "#228b22" {
		t.Fatalf("unexpected value %q", dto.Value)
	}
}

func TestServiceCreateColorRejectsNonHexValue(t *testing.T) {
	owner := uuid.New()
	storeID := uuid.New()
	svc := mustService(t, &stubColorRepo{}, &stubGuard{owner: owner, storeID: storeID})

	_, err := svc.Create(context.Background(), owner, storeID, UpsertColorInput{
		Name:  "Forest",
		Value: "green",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceDeleteColorBlockedByProducts(t *testing.T) {
	owner := uuid.New()
	storeID := uuid.New()
	svc := mustService(t, &stubColorRepo{deleteErr: errForeignKey{}}, &stubGuard{owner: owner, storeID: storeID})

	err := svc.Delete(context.Background(), owner, storeID, uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if typed.Message() != deleteConflictMessage {
		t.Fatalf("unexpected message %q", typed.Message())
	}
}

func TestServiceUpdateColorNotFound(t *testing.T) {
	owner := uuid.New()
	storeID := uuid.New()
	svc := mustService(t, &stubColorRepo{}, &stubGuard{owner: owner, storeID: storeID})

	_, err := svc.Update(context.Background(), owner, storeID, uuid.New(), UpsertColorInput{
		Name:  "Forest",
		Value: "#228b22",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func mustService(t *testing.T, repo colorRepository, guard storeGuard) Service {
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

type stubColorRepo struct {
	color     *models.Color
	deleteErr error
}

func (s *stubColorRepo) Create(ctx context.Context, color *models.Color) error {
	color.ID = uuid.New()
	return nil
}

func (s *stubColorRepo) FindByID(ctx context.Context, storeID, id uuid.UUID) (*models.Color, error) {
	if s.color == nil || s.color.ID != id || s.color.StoreID != storeID {
		return nil, gorm.ErrRecordNotFound
	}
	cpy := *s.color
	return &cpy, nil
}

func (s *stubColorRepo) FindByStore(ctx context.Context, storeID uuid.UUID) ([]models.Color, error) {
	return nil, nil
}

func (s *stubColorRepo) Update(ctx context.Context, color *models.Color) error {
	return nil
}

func (s *stubColorRepo) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	return s.deleteErr
}

type errForeignKey struct{}

func (errForeignKey) Error() string {
	return `update or delete on table "colors" violates foreign key constraint`
}
