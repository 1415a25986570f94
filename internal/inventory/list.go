package inventory

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/yxy-sys/stocksync/pkg/enums"
	pkgerrors "github.com/yxy-sys/stocksync/pkg/errors"
)

// Sort orders accepted by ListProducts.
const (
	SortByName     = "name"
	SortBySKU      = "sku"
	SortByQuantity = "quantity"
)

// ListProductsInput narrows and orders the product catalog listing.
type ListProductsInput struct {
	Search string
	Status *enums.StockStatus
	Sort   string
}

// ListProducts returns the catalog with per-location stock, filtered by
// name/SKU substring and derived stock status. Status filtering happens
// after totals are computed, so it cannot be pushed into SQL.
func (s *service) ListProducts(ctx context.Context, input ListProductsInput) ([]ProductDTO, error) {
	if err := validateSort(input.Sort); err != nil {
		return nil, err
	}

	products, err := s.repo.ListProducts(ctx, input.Search)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}

	productIDs := make([]uuid.UUID, 0, len(products))
	for _, product := range products {
		productIDs = append(productIDs, product.ID)
	}
	itemsByProduct, err := s.repo.ListItemsByProducts(ctx, productIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list items")
	}
	names, err := s.locationNames(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]ProductDTO, 0, len(products))
	for _, product := range products {
		dto := toProductDTO(product, itemsByProduct[product.ID], names)
		if input.Status != nil && dto.StockStatus != *input.Status {
			continue
		}
		dtos = append(dtos, dto)
	}

	sortProducts(dtos, input.Sort)
	return dtos, nil
}

func validateSort(order string) error {
	switch order {
	case "", SortByName, SortBySKU, SortByQuantity:
		return nil
	default:
		return pkgerrors.New(pkgerrors.CodeValidation, "unsupported sort order").
			WithDetails(map[string]string{"sort": order})
	}
}

func sortProducts(dtos []ProductDTO, order string) {
	switch order {
	case SortBySKU:
		sort.SliceStable(dtos, func(i, j int) bool {
			return strings.ToLower(dtos[i].SKU) < strings.ToLower(dtos[j].SKU)
		})
	case SortByQuantity:
		sort.SliceStable(dtos, func(i, j int) bool {
			return dtos[i].TotalQuantity > dtos[j].TotalQuantity
		})
	case SortByName:
		sort.SliceStable(dtos, func(i, j int) bool {
			return strings.ToLower(dtos[i].Name) < strings.ToLower(dtos[j].Name)
		})
	}
}
