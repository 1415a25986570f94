package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yxy-sys/stocksync/api/responses"
	"github.com/yxy-sys/stocksync/api/validators"
	"github.com/yxy-sys/stocksync/internal/inventory"
	"github.com/yxy-sys/stocksync/pkg/enums"
	pkgerrors "github.com/yxy-sys/stocksync/pkg/errors"
	"github.com/yxy-sys/stocksync/pkg/logger"
)

// CreateProduct handles catalog creation with optional starting stock.
func CreateProduct(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toCreateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// GetProduct returns one product with per-location stock and derived status.
func GetProduct(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := parsePathUUID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithProductID(ctx, productID.String())
		}

		product, err := svc.GetProduct(ctx, productID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// ListProducts returns the catalog, filtered and sorted per query params.
func ListProducts(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input := inventory.ListProductsInput{
			Search: validators.QueryString(r, "search"),
			Sort:   validators.QueryString(r, "sort"),
		}
		if raw := validators.QueryString(r, "status"); raw != "" {
			status, err := enums.ParseStockStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter"))
				return
			}
			input.Status = &status
		}

		products, err := svc.ListProducts(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}

// DeleteProduct removes a product and its stock records.
func DeleteProduct(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := parsePathUUID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"deleted": productID.String()})
	}
}

type createProductRequest struct {
	Name              string         `json:"name" validate:"required"`
	SKU               string         `json:"sku" validate:"required"`
	Description       *string        `json:"description,omitempty"`
	Price             *string        `json:"price,omitempty"`
	InitialQuantities map[string]int `json:"initial_quantities,omitempty"`
}

func (r createProductRequest) toCreateInput() (inventory.CreateProductInput, error) {
	input := inventory.CreateProductInput{
		Name:        strings.TrimSpace(r.Name),
		SKU:         strings.TrimSpace(r.SKU),
		Description: r.Description,
	}

	if r.Price != nil && strings.TrimSpace(*r.Price) != "" {
		price, err := decimal.NewFromString(strings.TrimSpace(*r.Price))
		if err != nil {
			return inventory.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price")
		}
		input.Price = &price
	}

	if len(r.InitialQuantities) > 0 {
		input.InitialQuantities = make(map[uuid.UUID]int, len(r.InitialQuantities))
		for rawID, qty := range r.InitialQuantities {
			locationID, err := uuid.Parse(strings.TrimSpace(rawID))
			if err != nil {
				return inventory.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid location id")
			}
			input.InitialQuantities[locationID] = qty
		}
	}
	return input, nil
}

func parsePathUUID(r *http.Request, key string) (uuid.UUID, error) {
	raw := chi.URLParam(r, key)
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+key)
	}
	return parsed, nil
}
