package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/yxy-sys/stocksync/pkg/enums"
)

// InventoryTransaction is the append-only audit row written alongside every
// persisted quantity change. NewQuantity always equals
// PreviousQuantity + QuantityChange. Rows are never updated and never read
// back to drive a mutation.
type InventoryTransaction struct {
	ID               uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	InventoryItemID  uuid.UUID             `gorm:"column:inventory_item_id;type:uuid;not null;index"`
	Type             enums.TransactionType `gorm:"column:transaction_type;not null"`
	QuantityChange   int                   `gorm:"column:quantity_change;not null"`
	PreviousQuantity int                   `gorm:"column:previous_quantity;not null"`
	NewQuantity      int                   `gorm:"column:new_quantity;not null"`
	Notes            *string               `gorm:"column:notes"`
	CreatedAt        time.Time             `gorm:"column:created_at"`
}
