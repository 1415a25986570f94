package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yxy-sys/stocksync/internal/inventory"
	"github.com/yxy-sys/stocksync/internal/locations"
	"github.com/yxy-sys/stocksync/internal/webhooks"
	"github.com/yxy-sys/stocksync/pkg/config"
	"github.com/yxy-sys/stocksync/pkg/logger"
	"github.com/yxy-sys/stocksync/pkg/pagination"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

type stubInventory struct {
	products []inventory.ProductDTO
}

func (s *stubInventory) CreateProduct(context.Context, inventory.CreateProductInput) (*inventory.ProductDTO, error) {
	return &inventory.ProductDTO{}, nil
}

func (s *stubInventory) GetProduct(context.Context, uuid.UUID) (*inventory.ProductDTO, error) {
	return &inventory.ProductDTO{}, nil
}

func (s *stubInventory) ListProducts(context.Context, inventory.ListProductsInput) ([]inventory.ProductDTO, error) {
	return s.products, nil
}

func (s *stubInventory) DeleteProduct(context.Context, uuid.UUID) error { return nil }

func (s *stubInventory) SetQuantity(context.Context, uuid.UUID, int) (*inventory.AdjustmentResult, error) {
	return &inventory.AdjustmentResult{}, nil
}

func (s *stubInventory) SyncInventory(context.Context) (*inventory.SyncResult, error) {
	return &inventory.SyncResult{}, nil
}

func (s *stubInventory) ListTransactions(context.Context, uuid.UUID, pagination.Params) (*inventory.TransactionListResult, error) {
	return &inventory.TransactionListResult{}, nil
}

type stubLocations struct{}

func (stubLocations) AddLocation(context.Context, locations.AddLocationInput) (*locations.LocationDTO, error) {
	return &locations.LocationDTO{}, nil
}

func (stubLocations) ListLocations(context.Context) ([]locations.LocationDTO, error) {
	return nil, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	webhookSvc, err := webhooks.NewService(config.WebhookConfig{
		VerificationToken:    "verify-me",
		AccountDeletionToken: "delete-me",
	})
	require.NoError(t, err)

	return NewRouter(RouterParams{
		Logger:           logger.New(logger.Options{ServiceName: "router-test", Output: io.Discard}),
		DB:               stubPinger{},
		Redis:            stubPinger{},
		InventoryService: &stubInventory{products: []inventory.ProductDTO{{Name: "Widget"}}},
		LocationService:  stubLocations{},
		WebhookService:   webhookSvc,
	})
}

func TestRouterHealthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterServesProducts(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data []inventory.ProductDTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "Widget", envelope.Data[0].Name)
}

func TestRouterWebhookChallenge(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/webhooks/ebay?verification_token=verify-me&challenge_code=xyz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "xyz")
}

func TestRouterSetsRequestID(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestRouterUnknownRoute(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/nothing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
