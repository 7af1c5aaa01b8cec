package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pverissimo/loja-admin-api/pkg/db"
	"github.com/pverissimo/loja-admin-api/pkg/db/models"
)

func setupProductsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.Exec("PRAGMA foreign_keys = ON").Error)

	schema := []string{
		`CREATE TABLE products (
  id TEXT PRIMARY KEY,
  store_id TEXT NOT NULL,
  category_id TEXT NOT NULL,
  color_id TEXT NOT NULL,
  size_id TEXT NOT NULL,
  name TEXT NOT NULL,
  price NUMERIC NOT NULL,
  is_featured INTEGER NOT NULL DEFAULT 0,
  is_archived INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE categories (
  id TEXT PRIMARY KEY,
  store_id TEXT NOT NULL,
  billboard_id TEXT NOT NULL,
  name TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE colors (
  id TEXT PRIMARY KEY,
  store_id TEXT NOT NULL,
  name TEXT NOT NULL,
  value TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE sizes (
  id TEXT PRIMARY KEY,
  store_id TEXT NOT NULL,
  name TEXT NOT NULL,
  value TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE product_images (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL REFERENCES products (id) ON DELETE CASCADE,
  url TEXT NOT NULL,
  created_at DATETIME
);`,
		`CREATE TABLE order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL REFERENCES products (id) ON DELETE RESTRICT
);`,
	}
	for _, stmt := range schema {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return conn
}

func seedProductRow(t *testing.T, conn *gorm.DB, storeID uuid.UUID, name string, archived bool, imageURLs ...string) *models.Product {
	t.Helper()

	product := &models.Product{
		StoreID:    storeID,
		CategoryID: uuid.New(),
		ColorID:    uuid.New(),
		SizeID:     uuid.New(),
		Name:       name,
		Price:      decimal.RequireFromString("19.90"),
		IsArchived: archived,
	}
	for _, url := range imageURLs {
		product.Images = append(product.Images, models.ProductImage{URL: url})
	}
	require.NoError(t, conn.Create(product).Error)
	return product
}

func imageURLsFor(t *testing.T, conn *gorm.DB, productID uuid.UUID) []string {
	t.Helper()

	var rows []models.ProductImage
	require.NoError(t, conn.Where("product_id = ?", productID).Find(&rows).Error)
	urls := make([]string, 0, len(rows))
	for _, row := range rows {
		urls = append(urls, row.URL)
	}
	return urls
}

func TestRepositoryUpdateWithImagesReplacesRows(t *testing.T) {
	conn := setupProductsTestDB(t)
	repo := NewRepository(conn)
	storeID := uuid.New()

	product := seedProductRow(t, conn, storeID, "Linen Shirt", false,
		"https://storage.googleapis.com/loja/old-1.png",
		"https://storage.googleapis.com/loja/old-2.png",
	)

	replacement := []string{
		"https://storage.googleapis.com/loja/new-1.png",
		"https://storage.googleapis.com/loja/new-2.png",
		"https://storage.googleapis.com/loja/new-3.png",
	}
	product.Name = "Linen Shirt v2"
	require.NoError(t, repo.UpdateWithImages(context.Background(), product, replacement))

	urls := imageURLsFor(t, conn, product.ID)
	assert.ElementsMatch(t, replacement, urls)

	updated, err := repo.FindByID(context.Background(), storeID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Linen Shirt v2", updated.Name)
	assert.Len(t, updated.Images, 3)
}

func TestRepositoryDeleteBlockedByOrderItems(t *testing.T) {
	conn := setupProductsTestDB(t)
	repo := NewRepository(conn)
	storeID := uuid.New()

	product := seedProductRow(t, conn, storeID, "Linen Shirt", false)
	item := &models.OrderItem{OrderID: uuid.New(), ProductID: product.ID}
	require.NoError(t, conn.Create(item).Error)

	err := repo.Delete(context.Background(), storeID, product.ID)
	require.Error(t, err)
	assert.True(t, db.IsForeignKeyViolation(err), "expected fk violation, got %v", err)

	kept, err := repo.FindByID(context.Background(), storeID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Linen Shirt", kept.Name)
}

func TestRepositoryDeleteCascadesImages(t *testing.T) {
	conn := setupProductsTestDB(t)
	repo := NewRepository(conn)
	storeID := uuid.New()

	product := seedProductRow(t, conn, storeID, "Linen Shirt", false,
		"https://storage.googleapis.com/loja/a.png",
	)

	require.NoError(t, repo.Delete(context.Background(), storeID, product.ID))
	assert.Empty(t, imageURLsFor(t, conn, product.ID))

	_, err := repo.FindByID(context.Background(), storeID, product.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryFindByStoreHidesArchivedByDefault(t *testing.T) {
	conn := setupProductsTestDB(t)
	repo := NewRepository(conn)
	storeID := uuid.New()

	seedProductRow(t, conn, storeID, "Live", false)
	seedProductRow(t, conn, storeID, "Retired", true)

	rows, err := repo.FindByStore(context.Background(), storeID, ListFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Live", rows[0].Name)

	rows, err = repo.FindByStore(context.Background(), storeID, ListFilter{IncludeArchived: true})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
