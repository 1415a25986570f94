package models

import (
	"time"

	"github.com/google/uuid"
)

// Location is a physical or logical place that holds stock.
type Location struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Description *string   `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}
