package inventory

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yxy-sys/stocksync/pkg/db/models"
	"github.com/yxy-sys/stocksync/pkg/pagination"
)

// Repository wires together product, item, and transaction persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindProductByID loads a product row.
func (r *Repository) FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindProductBySKU loads a product row by its SKU.
func (r *Repository) FindProductBySKU(ctx context.Context, sku string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "sku = ?", sku).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct inserts a new product row.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// SaveProduct persists changes on an existing product row.
func (r *Repository) SaveProduct(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// DeleteProduct removes a product row by id.
func (r *Repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}

// ListProducts returns products, optionally narrowed by a case-insensitive
// name/SKU substring search, ordered by creation time.
func (r *Repository) ListProducts(ctx context.Context, search string) ([]models.Product, error) {
	qb := r.db.WithContext(ctx).Model(&models.Product{})
	if trimmed := strings.TrimSpace(search); trimmed != "" {
		pattern := "%" + strings.ToLower(trimmed) + "%"
		qb = qb.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", pattern, pattern)
	}
	var rows []models.Product
	err := qb.Order("created_at ASC").Find(&rows).Error
	return rows, err
}

// CreateItem inserts a new inventory item row.
func (r *Repository) CreateItem(ctx context.Context, item *models.InventoryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// SaveItem persists changes on an existing inventory item row.
func (r *Repository) SaveItem(ctx context.Context, item *models.InventoryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// FindItemByID loads an inventory item row.
func (r *Repository) FindItemByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListItemsByProduct returns the product's items in stable insertion order.
// The sync rebalance relies on this ordering to place remainders.
func (r *Repository) ListItemsByProduct(ctx context.Context, productID uuid.UUID) ([]models.InventoryItem, error) {
	var rows []models.InventoryItem
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at ASC, id ASC").
		Find(&rows).
		Error
	return rows, err
}

// ListItemsByLocation returns all items held at a location.
func (r *Repository) ListItemsByLocation(ctx context.Context, locationID uuid.UUID) ([]models.InventoryItem, error) {
	var rows []models.InventoryItem
	err := r.db.WithContext(ctx).
		Where("location_id = ?", locationID).
		Order("created_at ASC, id ASC").
		Find(&rows).
		Error
	return rows, err
}

// ListItemsByProducts loads items for many products at once, grouped by
// product id.
func (r *Repository) ListItemsByProducts(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID][]models.InventoryItem, error) {
	grouped := make(map[uuid.UUID][]models.InventoryItem, len(productIDs))
	if len(productIDs) == 0 {
		return grouped, nil
	}
	var rows []models.InventoryItem
	err := r.db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Order("created_at ASC, id ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		grouped[row.ProductID] = append(grouped[row.ProductID], row)
	}
	return grouped, nil
}

// DeleteItems removes the given inventory item rows.
func (r *Repository) DeleteItems(ctx context.Context, itemIDs []uuid.UUID) error {
	if len(itemIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", itemIDs).Delete(&models.InventoryItem{}).Error
}

// CreateTransaction appends an inventory transaction row.
func (r *Repository) CreateTransaction(ctx context.Context, txn *models.InventoryTransaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

// DeleteTransactionsByItems removes all transaction rows for the given items.
func (r *Repository) DeleteTransactionsByItems(ctx context.Context, itemIDs []uuid.UUID) error {
	if len(itemIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("inventory_item_id IN ?", itemIDs).
		Delete(&models.InventoryTransaction{}).
		Error
}

// ListTransactionsByItem returns the item's transaction rows newest first,
// cursor-paginated on (created_at, id).
func (r *Repository) ListTransactionsByItem(ctx context.Context, itemID uuid.UUID, params pagination.Params) ([]models.InventoryTransaction, error) {
	limit := pagination.LimitWithBuffer(params.Limit)

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}

	qb := r.db.WithContext(ctx).
		Where("inventory_item_id = ?", itemID).
		Order("created_at DESC, id DESC").
		Limit(limit)
	if cursor != nil {
		qb = qb.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var rows []models.InventoryTransaction
	err = qb.Find(&rows).Error
	return rows, err
}

// CountTransactionsByItem reports how many transaction rows the item has.
func (r *Repository) CountTransactionsByItem(ctx context.Context, itemID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.InventoryTransaction{}).
		Where("inventory_item_id = ?", itemID).
		Count(&count).
		Error
	return count, err
}
