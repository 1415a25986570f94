package enums

import "fmt"

// StockStatus classifies a product by its total quantity across locations.
type StockStatus string

const (
	StockStatusOutOfStock StockStatus = "out-of-stock"
	StockStatusLowStock   StockStatus = "low-stock"
	StockStatusInStock    StockStatus = "in-stock"
)

// LowStockThreshold is the fixed policy boundary between low-stock and
// in-stock.
const LowStockThreshold = 10

var validStockStatuses = []StockStatus{
	StockStatusOutOfStock,
	StockStatusLowStock,
	StockStatusInStock,
}

// String implements fmt.Stringer.
func (s StockStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is known.
func (s StockStatus) IsValid() bool {
	for _, candidate := range validStockStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStockStatus converts raw input into a StockStatus.
func ParseStockStatus(value string) (StockStatus, error) {
	for _, candidate := range validStockStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid stock status %q", value)
}

// StockStatusFor derives the status from a total quantity.
func StockStatusFor(totalQuantity int) StockStatus {
	switch {
	case totalQuantity <= 0:
		return StockStatusOutOfStock
	case totalQuantity < LowStockThreshold:
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}
