package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oakline/storefront-backend/api/controllers"
	cartcontrollers "github.com/oakline/storefront-backend/api/controllers/cart"
	checkoutcontrollers "github.com/oakline/storefront-backend/api/controllers/checkout"
	"github.com/oakline/storefront-backend/api/middleware"
	cartsvc "github.com/oakline/storefront-backend/internal/cart"
	"github.com/oakline/storefront-backend/internal/catalog"
	checkoutsvc "github.com/oakline/storefront-backend/internal/checkout"
	"github.com/oakline/storefront-backend/pkg/config"
	"github.com/oakline/storefront-backend/pkg/logger"
	"github.com/oakline/storefront-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	httpMetrics *metrics.HTTPMetrics,
	redisPinger controllers.Pinger,
	contentPinger controllers.Pinger,
	catalogService *catalog.Service,
	cartManager *cartsvc.Manager,
	checkoutService *checkoutsvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, redisPinger, contentPinger))
	})

	if httpMetrics != nil {
		r.Method(http.MethodGet, "/metrics", httpMetrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(
			middleware.Session(cfg.Session, logg),
			middleware.Auth(cfg.JWT, logg),
		)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(catalogService, logg))
			r.Get("/search", controllers.ProductSearch(catalogService, logg))
			r.Get("/category/{name}", controllers.ProductsByCategory(catalogService, logg))
			r.Get("/{slug}", controllers.ProductBySlug(catalogService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartcontrollers.Fetch(cartManager, logg))
			r.Delete("/", cartcontrollers.Clear(cartManager, logg))
			r.Post("/items", cartcontrollers.AddItem(cartManager, logg))
			r.Patch("/items/{id}", cartcontrollers.UpdateItem(cartManager, logg))
			r.Delete("/items/{id}", cartcontrollers.RemoveItem(cartManager, logg))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", checkoutcontrollers.Submit(checkoutService, cartManager, logg))
			r.Get("/state", checkoutcontrollers.State(checkoutService, logg))
		})
	})

	return r
}
