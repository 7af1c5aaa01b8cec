package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pverissimo/loja-admin-api/pkg/db/models"
	"github.com/pverissimo/loja-admin-api/pkg/pagination"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

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
		`CREATE TABLE orders (
  id TEXT PRIMARY KEY,
  store_id TEXT NOT NULL,
  phone TEXT NOT NULL DEFAULT '',
  address TEXT NOT NULL DEFAULT '',
  is_paid INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL
);`,
	}
	for _, stmt := range schema {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return conn
}

func seedOrder(t *testing.T, conn *gorm.DB, storeID uuid.UUID, createdAt time.Time, paid bool, products ...*models.Product) *models.Order {
	t.Helper()

	order := &models.Order{
		StoreID:   storeID,
		Phone:     "+55 11 98888-0000",
		Address:   "Rua Augusta 100",
		IsPaid:    paid,
		CreatedAt: createdAt,
	}
	for _, p := range products {
		order.Items = append(order.Items, models.OrderItem{ProductID: p.ID})
	}
	require.NoError(t, conn.Create(order).Error)
	return order
}

func TestRepositoryFindByStoreScopesAndPreloads(t *testing.T) {
	conn := setupOrdersTestDB(t)
	repo := NewRepository(conn)
	storeID := uuid.New()

	product := &models.Product{
		StoreID:    storeID,
		CategoryID: uuid.New(),
		ColorID:    uuid.New(),
		SizeID:     uuid.New(),
		Name:       "Linen Shirt",
		Price:      decimal.RequireFromString("49.90"),
	}
	require.NoError(t, conn.Create(product).Error)

	seedOrder(t, conn, storeID, time.Now().Add(-time.Hour), true, product)
	seedOrder(t, conn, uuid.New(), time.Now(), false, product)

	rows, err := repo.FindByStore(context.Background(), storeID, nil, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Len(t, rows[0].Items, 1)
	require.NotNil(t, rows[0].Items[0].Product)
	assert.Equal(t, "Linen Shirt", rows[0].Items[0].Product.Name)
	assert.True(t, rows[0].IsPaid)
}

func TestRepositoryFindByStorePaginates(t *testing.T) {
	conn := setupOrdersTestDB(t)
	repo := NewRepository(conn)
	storeID := uuid.New()

	base := time.Now().Truncate(time.Second)
	oldest := seedOrder(t, conn, storeID, base.Add(-3*time.Hour), false)
	middle := seedOrder(t, conn, storeID, base.Add(-2*time.Hour), false)
	newest := seedOrder(t, conn, storeID, base.Add(-1*time.Hour), false)

	first, err := repo.FindByStore(context.Background(), storeID, nil, 2)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, newest.ID, first[0].ID)
	assert.Equal(t, middle.ID, first[1].ID)

	cursor := &pagination.Cursor{CreatedAt: first[1].CreatedAt, ID: first[1].ID}
	second, err := repo.FindByStore(context.Background(), storeID, cursor, 2)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, oldest.ID, second[0].ID)
}

func TestRepositoryFindByIDMissing(t *testing.T) {
	conn := setupOrdersTestDB(t)
	repo := NewRepository(conn)

	_, err := repo.FindByID(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
