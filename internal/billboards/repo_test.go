package billboards

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pverissimo/loja-admin-api/pkg/db"
	"github.com/pverissimo/loja-admin-api/pkg/db/models"
	pkgerrors "github.com/pverissimo/loja-admin-api/pkg/errors"
)

func setupBillboardsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.Exec("PRAGMA foreign_keys = ON").Error)

	schema := []string{
		`CREATE TABLE billboards (
  id TEXT PRIMARY KEY,
  store_id TEXT NOT NULL,
  label TEXT NOT NULL,
  image_url TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE categories (
  id TEXT PRIMARY KEY,
  store_id TEXT NOT NULL,
  billboard_id TEXT NOT NULL REFERENCES billboards (id) ON DELETE RESTRICT,
  name TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
	}
	for _, stmt := range schema {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return conn
}

func seedBillboard(t *testing.T, conn *gorm.DB, storeID uuid.UUID, label, imageURL string) *models.Billboard {
	t.Helper()

	billboard := &models.Billboard{StoreID: storeID, Label: label, ImageURL: imageURL}
	require.NoError(t, conn.Create(billboard).Error)
	return billboard
}

func TestRepositoryDeleteBlockedByCategories(t *testing.T) {
	conn := setupBillboardsTestDB(t)
	repo := NewRepository(conn)
	storeID := uuid.New()

	billboard := seedBillboard(t, conn, storeID, "Summer", "https://storage.googleapis.com/loja/summer.png")
	category := &models.Category{StoreID: storeID, BillboardID: billboard.ID, Name: "Shirts"}
	require.NoError(t, conn.Create(category).Error)

	err := repo.Delete(context.Background(), storeID, billboard.ID)
	require.Error(t, err)
	assert.True(t, db.IsForeignKeyViolation(err), "expected fk violation, got %v", err)

	kept, err := repo.FindByID(context.Background(), storeID, billboard.ID)
	require.NoError(t, err)
	assert.Equal(t, "Summer", kept.Label)
}

func TestRepositoryDeleteMissing(t *testing.T) {
	conn := setupBillboardsTestDB(t)
	repo := NewRepository(conn)

	err := repo.Delete(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryClearImageURL(t *testing.T) {
	conn := setupBillboardsTestDB(t)
	repo := NewRepository(conn)
	storeID := uuid.New()

	url := "https://storage.googleapis.com/loja/shared.png"
	first := seedBillboard(t, conn, storeID, "First", url)
	seedBillboard(t, conn, storeID, "Second", url)
	other := seedBillboard(t, conn, storeID, "Other", "https://storage.googleapis.com/loja/other.png")

	cleared, err := repo.ClearImageURL(context.Background(), url)
	require.NoError(t, err)
	assert.Equal(t, int64(2), cleared)

	row, err := repo.FindByID(context.Background(), storeID, first.ID)
	require.NoError(t, err)
	assert.Empty(t, row.ImageURL)

	row, err = repo.FindByID(context.Background(), storeID, other.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, row.ImageURL)
}

func TestServiceDeleteConflictAgainstDatabase(t *testing.T) {
	conn := setupBillboardsTestDB(t)
	repo := NewRepository(conn)

	owner := uuid.New()
	storeID := uuid.New()
	svc, err := NewService(repo, &stubGuard{owner: owner, storeID: storeID})
	require.NoError(t, err)

	created, err := svc.Create(context.Background(), owner, storeID, UpsertBillboardInput{
		Label:    "Verão",
		ImageURL: "https://storage.googleapis.com/loja/verao.png",
	})
	require.NoError(t, err)

	category := &models.Category{StoreID: storeID, BillboardID: created.ID, Name: "Roupa"}
	require.NoError(t, conn.Create(category).Error)

	err = svc.Delete(context.Background(), owner, storeID, created.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
	assert.Equal(t, "remove all categories using this billboard first", typed.Message())

	kept, err := svc.GetByID(context.Background(), storeID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Verão", kept.Label)
}
