package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the canonical catalog entry. Stock is tracked per location in
// InventoryItem rows; quantities are never stored on the product itself.
type Product struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	Name        string           `gorm:"column:name;not null"`
	SKU         string           `gorm:"column:sku;not null;uniqueIndex:uq_products_sku"`
	Description *string          `gorm:"column:description"`
	Price       *decimal.Decimal `gorm:"column:price;type:numeric(10,2)"`
	CreatedAt   time.Time        `gorm:"column:created_at"`
	UpdatedAt   time.Time        `gorm:"column:updated_at"`
}
