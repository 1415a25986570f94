package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryItem tracks on-hand and reserved counts for one product at one
// location. At most one row exists per (product, location) pair.
type InventoryItem struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ProductID   uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:uq_inventory_items_product_location"`
	LocationID  uuid.UUID `gorm:"column:location_id;type:uuid;not null;uniqueIndex:uq_inventory_items_product_location"`
	Quantity    int       `gorm:"column:quantity;not null;default:0"`
	ReservedQty int       `gorm:"column:reserved_quantity;not null;default:0"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

// AvailableQuantity is on-hand minus reserved, floored at zero. Derived,
// never persisted.
func (i InventoryItem) AvailableQuantity() int {
	available := i.Quantity - i.ReservedQty
	if available < 0 {
		return 0
	}
	return available
}
