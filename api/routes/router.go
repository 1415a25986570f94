package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yxy-sys/stocksync/api/controllers"
	"github.com/yxy-sys/stocksync/api/middleware"
	"github.com/yxy-sys/stocksync/internal/inventory"
	"github.com/yxy-sys/stocksync/internal/locations"
	"github.com/yxy-sys/stocksync/internal/webhooks"
	"github.com/yxy-sys/stocksync/pkg/logger"
)

// RouterParams carry the wired services and probes for the HTTP surface.
type RouterParams struct {
	Logger           *logger.Logger
	DB               controllers.Pinger
	Redis            controllers.Pinger
	InventoryService inventory.Service
	LocationService  locations.Service
	WebhookService   webhooks.Service
}

// NewRouter builds the chi router with the full middleware chain.
func NewRouter(params RouterParams) http.Handler {
	logg := params.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive())
		r.Get("/ready", controllers.HealthReady(logg, map[string]controllers.Pinger{
			"db":    params.DB,
			"redis": params.Redis,
		}))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(params.InventoryService, logg))
			r.Post("/", controllers.CreateProduct(params.InventoryService, logg))
			r.Get("/{productID}", controllers.GetProduct(params.InventoryService, logg))
			r.Delete("/{productID}", controllers.DeleteProduct(params.InventoryService, logg))
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Post("/items/{itemID}/quantity", controllers.SetQuantity(params.InventoryService, logg))
			r.Get("/items/{itemID}/transactions", controllers.ListTransactions(params.InventoryService, logg))
			r.Post("/sync", controllers.SyncInventory(params.InventoryService, logg))
		})

		r.Route("/locations", func(r chi.Router) {
			r.Get("/", controllers.ListLocations(params.LocationService, logg))
			r.Post("/", controllers.AddLocation(params.LocationService, logg))
		})
	})

	r.Route("/webhooks/ebay", func(r chi.Router) {
		r.Get("/", controllers.EbayChallenge(params.WebhookService, logg))
		r.Post("/", controllers.EbayNotification(logg))
		r.Get("/account-deletion", controllers.EbayAccountDeletion(params.WebhookService, logg))
		r.Post("/account-deletion", controllers.EbayAccountDeletion(params.WebhookService, logg))
	})

	return r
}
