package controllers

import (
	"net/http"
	"strings"

	"github.com/yxy-sys/stocksync/api/responses"
	"github.com/yxy-sys/stocksync/api/validators"
	"github.com/yxy-sys/stocksync/internal/locations"
	"github.com/yxy-sys/stocksync/pkg/logger"
)

type addLocationRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description,omitempty"`
}

// AddLocation creates a location and backfills zero stock per product.
func AddLocation(svc locations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addLocationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		location, err := svc.AddLocation(r.Context(), locations.AddLocationInput{
			Name:        strings.TrimSpace(payload.Name),
			Description: payload.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, location)
	}
}

// ListLocations returns every location with item counts.
func ListLocations(svc locations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listed, err := svc.ListLocations(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, listed)
	}
}
