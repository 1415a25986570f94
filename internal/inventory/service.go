package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yxy-sys/stocksync/pkg/db"
	"github.com/yxy-sys/stocksync/pkg/db/models"
	"github.com/yxy-sys/stocksync/pkg/enums"
	pkgerrors "github.com/yxy-sys/stocksync/pkg/errors"
	"github.com/yxy-sys/stocksync/pkg/pagination"
)

const (
	notesInitialStock = "Initial stock entry"
	notesManualAdjust = "Manual quantity adjustment"
	notesRebalance    = "Inventory synchronization"
)

// Service exposes product and stock management operations.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error)
	ListProducts(ctx context.Context, input ListProductsInput) ([]ProductDTO, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
	SetQuantity(ctx context.Context, itemID uuid.UUID, quantity int) (*AdjustmentResult, error)
	SyncInventory(ctx context.Context) (*SyncResult, error)
	ListTransactions(ctx context.Context, itemID uuid.UUID, params pagination.Params) (*TransactionListResult, error)
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name              string
	SKU               string
	Description       *string
	Price             *decimal.Decimal
	InitialQuantities map[uuid.UUID]int
}

type locationLister interface {
	ListLocations(ctx context.Context) ([]models.Location, error)
}

// service implements the inventory service.
type service struct {
	repo         *Repository
	dbClient     *db.Client
	locationRepo locationLister
}

// NewService constructs an inventory service instance.
func NewService(repo *Repository, dbClient *db.Client, locationRepo locationLister) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if locationRepo == nil {
		return nil, fmt.Errorf("location repository required")
	}
	return &service{
		repo:         repo,
		dbClient:     dbClient,
		locationRepo: locationRepo,
	}, nil
}

// CreateProduct creates the product plus one inventory item per location.
// Locations carrying a starting quantity also get an initial transaction row.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	name := strings.TrimSpace(input.Name)
	sku := strings.TrimSpace(input.SKU)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if sku == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku is required")
	}
	if input.Price != nil && input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
	}
	for _, qty := range input.InitialQuantities {
		if qty < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "initial quantity must be non-negative")
		}
	}

	if _, err := s.repo.FindProductBySKU(ctx, sku); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "sku already exists").
			WithDetails(map[string]string{"sku": sku})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check sku")
	}

	locations, err := s.locationRepo.ListLocations(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list locations")
	}

	now := time.Now().UTC()
	product := &models.Product{
		ID:          uuid.New(),
		Name:        name,
		SKU:         sku,
		Description: input.Description,
		Price:       input.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		if err := txRepo.CreateProduct(ctx, product); err != nil {
			if db.IsUniqueViolation(err, "uq_products_sku") {
				return pkgerrors.New(pkgerrors.CodeConflict, "sku already exists").
					WithDetails(map[string]string{"sku": sku})
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
		}

		for i, location := range locations {
			qty := input.InitialQuantities[location.ID]
			// Spread created_at so item order tracks location order; the
			// rebalance remainder depends on it.
			itemTime := now.Add(time.Duration(i) * time.Microsecond)
			item := &models.InventoryItem{
				ID:         uuid.New(),
				ProductID:  product.ID,
				LocationID: location.ID,
				Quantity:   qty,
				CreatedAt:  itemTime,
				UpdatedAt:  itemTime,
			}
			if err := txRepo.CreateItem(ctx, item); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert inventory item")
			}
			if qty > 0 {
				if err := txRepo.CreateTransaction(ctx, initialTransaction(item, itemTime)); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert initial transaction")
				}
			}
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}

	return s.loadProductDTO(ctx, product.ID)
}

// GetProduct loads one product with its per-location stock breakdown.
func (s *service) GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	if _, err := s.repo.FindProductByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return s.loadProductDTO(ctx, productID)
}

// DeleteProduct removes a product together with its items and transaction
// history. Children go first so the delete never leaves orphans behind.
func (s *service) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	if _, err := s.repo.FindProductByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		items, err := txRepo.ListItemsByProduct(ctx, productID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list items")
		}
		itemIDs := make([]uuid.UUID, 0, len(items))
		for _, item := range items {
			itemIDs = append(itemIDs, item.ID)
		}

		if err := txRepo.DeleteTransactionsByItems(ctx, itemIDs); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete transactions")
		}
		if err := txRepo.DeleteItems(ctx, itemIDs); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete items")
		}
		if err := txRepo.DeleteProduct(ctx, productID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product")
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return err
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}

	return nil
}

// SetQuantity overwrites an item's quantity and records the adjustment. A
// transaction row is written even when the value does not change, keeping
// the audit trail complete.
func (s *service) SetQuantity(ctx context.Context, itemID uuid.UUID, quantity int) (*AdjustmentResult, error) {
	if quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be non-negative")
	}

	item, err := s.repo.FindItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory item")
	}

	now := time.Now().UTC()
	previous := item.Quantity

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		item.Quantity = quantity
		item.UpdatedAt = now
		if err := txRepo.SaveItem(ctx, item); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update item")
		}

		notes := notesManualAdjust
		txn := &models.InventoryTransaction{
			ID:               uuid.New(),
			InventoryItemID:  item.ID,
			Type:             enums.TransactionTypeAdjustment,
			QuantityChange:   quantity - previous,
			PreviousQuantity: previous,
			NewQuantity:      quantity,
			Notes:            &notes,
			CreatedAt:        now,
		}
		if err := txRepo.CreateTransaction(ctx, txn); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert transaction")
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "set quantity")
	}

	siblings, err := s.repo.ListItemsByProduct(ctx, item.ProductID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list items")
	}
	total := 0
	for _, sibling := range siblings {
		total += sibling.Quantity
	}

	return &AdjustmentResult{
		ItemID:        item.ID,
		ProductID:     item.ProductID,
		Quantity:      quantity,
		TotalQuantity: total,
		StockStatus:   enums.StockStatusFor(total),
	}, nil
}

// SyncInventory evens out each product's total across its locations. Every
// item gets total/n units and the first items by insertion order absorb the
// remainder, so the product total is preserved exactly.
func (s *service) SyncInventory(ctx context.Context) (*SyncResult, error) {
	result := &SyncResult{}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		products, err := txRepo.ListProducts(ctx, "")
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
		}

		now := time.Now().UTC()
		for _, product := range products {
			items, err := txRepo.ListItemsByProduct(ctx, product.ID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list items")
			}
			adjusted, err := rebalanceItems(ctx, txRepo, items, now)
			if err != nil {
				return err
			}
			if adjusted > 0 {
				result.ProductsRebalanced++
				result.ItemsAdjusted += adjusted
			}
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sync inventory")
	}

	return result, nil
}

// ListTransactions returns one page of an item's movement history, newest
// first.
func (s *service) ListTransactions(ctx context.Context, itemID uuid.UUID, params pagination.Params) (*TransactionListResult, error) {
	if _, err := s.repo.FindItemByID(ctx, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory item")
	}

	rows, err := s.repo.ListTransactionsByItem(ctx, itemID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list transactions")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	result := &TransactionListResult{Transactions: make([]TransactionDTO, 0, len(rows))}
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		result.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	for _, row := range rows {
		result.Transactions = append(result.Transactions, toTransactionDTO(row))
	}
	return result, nil
}

func rebalanceItems(ctx context.Context, txRepo *Repository, items []models.InventoryItem, now time.Time) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	base := total / len(items)
	remainder := total % len(items)

	adjusted := 0
	for i := range items {
		target := base
		if i < remainder {
			target++
		}
		if target == items[i].Quantity {
			continue
		}

		previous := items[i].Quantity
		items[i].Quantity = target
		items[i].UpdatedAt = now
		if err := txRepo.SaveItem(ctx, &items[i]); err != nil {
			return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update item")
		}

		notes := notesRebalance
		txn := &models.InventoryTransaction{
			ID:               uuid.New(),
			InventoryItemID:  items[i].ID,
			Type:             enums.TransactionTypeSync,
			QuantityChange:   target - previous,
			PreviousQuantity: previous,
			NewQuantity:      target,
			Notes:            &notes,
			CreatedAt:        now,
		}
		if err := txRepo.CreateTransaction(ctx, txn); err != nil {
			return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert sync transaction")
		}
		adjusted++
	}
	return adjusted, nil
}

func initialTransaction(item *models.InventoryItem, now time.Time) *models.InventoryTransaction {
	notes := notesInitialStock
	return &models.InventoryTransaction{
		ID:               uuid.New(),
		InventoryItemID:  item.ID,
		Type:             enums.TransactionTypeInitial,
		QuantityChange:   item.Quantity,
		PreviousQuantity: 0,
		NewQuantity:      item.Quantity,
		Notes:            &notes,
		CreatedAt:        now,
	}
}

func (s *service) loadProductDTO(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	items, err := s.repo.ListItemsByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list items")
	}
	names, err := s.locationNames(ctx)
	if err != nil {
		return nil, err
	}
	dto := toProductDTO(*product, items, names)
	return &dto, nil
}

func (s *service) locationNames(ctx context.Context) (map[uuid.UUID]string, error) {
	locations, err := s.locationRepo.ListLocations(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list locations")
	}
	names := make(map[uuid.UUID]string, len(locations))
	for _, location := range locations {
		names[location.ID] = location.Name
	}
	return names, nil
}
