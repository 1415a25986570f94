package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yxy-sys/stocksync/pkg/db/models"
	"github.com/yxy-sys/stocksync/pkg/enums"
)

// ProductDTO is the API shape for a product with its per-location stock.
type ProductDTO struct {
	ID            uuid.UUID          `json:"id"`
	Name          string             `json:"name"`
	SKU           string             `json:"sku"`
	Description   *string            `json:"description,omitempty"`
	Price         *decimal.Decimal   `json:"price,omitempty"`
	TotalQuantity int                `json:"total_quantity"`
	StockStatus   enums.StockStatus  `json:"stock_status"`
	Items         []InventoryItemDTO `json:"items"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// InventoryItemDTO is the API shape for one product/location stock record.
type InventoryItemDTO struct {
	ID                uuid.UUID `json:"id"`
	LocationID        uuid.UUID `json:"location_id"`
	LocationName      string    `json:"location_name,omitempty"`
	Quantity          int       `json:"quantity"`
	ReservedQuantity  int       `json:"reserved_quantity"`
	AvailableQuantity int       `json:"available_quantity"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TransactionDTO is the API shape for one inventory movement record.
type TransactionDTO struct {
	ID               uuid.UUID             `json:"id"`
	InventoryItemID  uuid.UUID             `json:"inventory_item_id"`
	Type             enums.TransactionType `json:"type"`
	QuantityChange   int                   `json:"quantity_change"`
	PreviousQuantity int                   `json:"previous_quantity"`
	NewQuantity      int                   `json:"new_quantity"`
	Notes            *string               `json:"notes,omitempty"`
	CreatedAt        time.Time             `json:"created_at"`
}

// TransactionListResult carries one page of an item's transaction history.
type TransactionListResult struct {
	Transactions []TransactionDTO `json:"transactions"`
	NextCursor   string           `json:"next_cursor,omitempty"`
}

// AdjustmentResult reports the outcome of a manual quantity change.
type AdjustmentResult struct {
	ItemID        uuid.UUID         `json:"item_id"`
	ProductID     uuid.UUID         `json:"product_id"`
	Quantity      int               `json:"quantity"`
	TotalQuantity int               `json:"total_quantity"`
	StockStatus   enums.StockStatus `json:"stock_status"`
}

// SyncResult summarizes a cross-location rebalance run.
type SyncResult struct {
	ProductsRebalanced int `json:"products_rebalanced"`
	ItemsAdjusted      int `json:"items_adjusted"`
}

func toTransactionDTO(txn models.InventoryTransaction) TransactionDTO {
	return TransactionDTO{
		ID:               txn.ID,
		InventoryItemID:  txn.InventoryItemID,
		Type:             txn.Type,
		QuantityChange:   txn.QuantityChange,
		PreviousQuantity: txn.PreviousQuantity,
		NewQuantity:      txn.NewQuantity,
		Notes:            txn.Notes,
		CreatedAt:        txn.CreatedAt,
	}
}

func toProductDTO(product models.Product, items []models.InventoryItem, locationNames map[uuid.UUID]string) ProductDTO {
	dto := ProductDTO{
		ID:          product.ID,
		Name:        product.Name,
		SKU:         product.SKU,
		Description: product.Description,
		Price:       product.Price,
		Items:       make([]InventoryItemDTO, 0, len(items)),
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
	for _, item := range items {
		dto.TotalQuantity += item.Quantity
		dto.Items = append(dto.Items, InventoryItemDTO{
			ID:                item.ID,
			LocationID:        item.LocationID,
			LocationName:      locationNames[item.LocationID],
			Quantity:          item.Quantity,
			ReservedQuantity:  item.ReservedQty,
			AvailableQuantity: item.AvailableQuantity(),
			UpdatedAt:         item.UpdatedAt,
		})
	}
	dto.StockStatus = enums.StockStatusFor(dto.TotalQuantity)
	return dto
}
