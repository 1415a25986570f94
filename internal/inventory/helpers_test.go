package inventory

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yxy-sys/stocksync/internal/locations"
	"github.com/yxy-sys/stocksync/pkg/db"
	"github.com/yxy-sys/stocksync/pkg/db/models"
)

func setupInventoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	locationsDDL := `
CREATE TABLE IF NOT EXISTS locations (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  created_at DATETIME
);`
	productsDDL := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  sku TEXT NOT NULL,
  description TEXT,
  price NUMERIC,
  created_at DATETIME,
  updated_at DATETIME,
  CONSTRAINT uq_products_sku UNIQUE (sku)
);`
	itemsDDL := `
CREATE TABLE IF NOT EXISTS inventory_items (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  location_id TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 0,
  reserved_quantity INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME,
  CONSTRAINT uq_inventory_items_product_location UNIQUE (product_id, location_id)
);`
	transactionsDDL := `
CREATE TABLE IF NOT EXISTS inventory_transactions (
  id TEXT PRIMARY KEY,
  inventory_item_id TEXT NOT NULL,
  transaction_type TEXT NOT NULL,
  quantity_change INTEGER NOT NULL,
  previous_quantity INTEGER NOT NULL,
  new_quantity INTEGER NOT NULL,
  notes TEXT,
  created_at DATETIME
);`
	require.NoError(t, conn.Exec(locationsDDL).Error)
	require.NoError(t, conn.Exec(productsDDL).Error)
	require.NoError(t, conn.Exec(itemsDDL).Error)
	require.NoError(t, conn.Exec(transactionsDDL).Error)
	return conn
}

func newTestService(t *testing.T) (Service, *Repository, *gorm.DB) {
	t.Helper()

	conn := setupInventoryTestDB(t)
	repo := NewRepository(conn)
	svc, err := NewService(repo, db.NewFromConn(conn), locations.NewRepository(conn))
	require.NoError(t, err)
	return svc, repo, conn
}

func mustCreateLocation(t *testing.T, conn *gorm.DB, name string, offset time.Duration) *models.Location {
	t.Helper()

	location := &models.Location{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now().UTC().Add(offset),
	}
	require.NoError(t, conn.Create(location).Error)
	return location
}

func countRows(t *testing.T, conn *gorm.DB, model any, query string, args ...any) int64 {
	t.Helper()

	var count int64
	qb := conn.Model(model)
	if query != "" {
		qb = qb.Where(query, args...)
	}
	require.NoError(t, qb.Count(&count).Error)
	return count
}
