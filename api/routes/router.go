package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/avidalh/electrostore-gateway/api/controllers"
	"github.com/avidalh/electrostore-gateway/api/middleware"
	cartsvc "github.com/avidalh/electrostore-gateway/internal/cart"
	catalogsvc "github.com/avidalh/electrostore-gateway/internal/catalog"
	inventorysvc "github.com/avidalh/electrostore-gateway/internal/inventory"
	requestssvc "github.com/avidalh/electrostore-gateway/internal/servicerequests"
	"github.com/avidalh/electrostore-gateway/internal/session"
	technicianssvc "github.com/avidalh/electrostore-gateway/internal/technicians"
	userssvc "github.com/avidalh/electrostore-gateway/internal/users"
	"github.com/avidalh/electrostore-gateway/pkg/config"
	"github.com/avidalh/electrostore-gateway/pkg/enums"
	"github.com/avidalh/electrostore-gateway/pkg/logger"
	"github.com/avidalh/electrostore-gateway/pkg/metrics"
	pkgredis "github.com/avidalh/electrostore-gateway/pkg/redis"
	"github.com/avidalh/electrostore-gateway/pkg/storeapi"
)

// Deps carries everything the router wires into handlers. All fields are
// required unless noted.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	Redis       *pkgredis.Client
	Upstream    *storeapi.Client
	Sessions    *session.Manager
	Cart        *cartsvc.Manager
	Users       *userssvc.Service
	Catalog     *catalogsvc.Service
	Technicians *technicianssvc.Service
	Requests    *requestssvc.Service
	Inventory   *inventorysvc.Service
	Metrics     *metrics.HTTPMetrics // optional
	MetricsHTTP http.Handler         // optional, defaults to promhttp.Handler
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
		middleware.SessionContext(deps.Sessions, logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Redis, deps.Upstream))
	})

	metricsHandler := deps.MetricsHTTP
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.LoginRateLimit(cfg.Login, deps.Redis, logg)).
			Post("/login", controllers.AuthLogin(deps.Users, logg))
		r.Post("/logout", controllers.AuthLogout(deps.Users, logg))
		r.Get("/session", controllers.SessionShow(deps.Sessions, logg))
	})

	// Storefront browsing is open; buying requires a session.
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", controllers.CatalogProducts(deps.Catalog, logg))
		r.Get("/categories", controllers.CatalogCategories(deps.Catalog, logg))
		r.Get("/technicians", controllers.TechniciansList(deps.Technicians, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Gate(deps.Sessions, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartShow(deps.Cart, logg))
				r.Post("/items", controllers.CartAddItem(deps.Cart, deps.Catalog, logg))
				r.Put("/items/{productId}", controllers.CartUpdateItem(deps.Cart, logg))
				r.Delete("/items/{productId}", controllers.CartRemoveItem(deps.Cart, logg))
				r.Delete("/", controllers.CartClear(deps.Cart, logg))
			})

			r.With(middleware.Idempotency(deps.Redis, cfg.Checkout.IdempotencyTTL, logg)).
				Post("/checkout", controllers.Checkout(deps.Cart, deps.Metrics, logg))

			r.Route("/service-requests", func(r chi.Router) {
				r.Post("/", controllers.ServiceRequestSubmit(deps.Requests, logg))
				r.Get("/", controllers.ServiceRequestsMine(deps.Requests, logg))
			})
		})
	})

	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(middleware.Gate(deps.Sessions, logg, enums.RoleAdmin))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.AdminProductsList(deps.Catalog, logg))
			r.Post("/", controllers.AdminProductCreate(deps.Catalog, logg))
			r.Put("/{productId}", controllers.AdminProductUpdate(deps.Catalog, logg))
			r.Delete("/{productId}", controllers.AdminProductDelete(deps.Catalog, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.AdminCategoriesList(deps.Catalog, logg))
			r.Post("/", controllers.AdminCategoryCreate(deps.Catalog, logg))
			r.Put("/{categoryId}", controllers.AdminCategoryUpdate(deps.Catalog, logg))
			r.Delete("/{categoryId}", controllers.AdminCategoryDelete(deps.Catalog, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", controllers.AdminUsersList(deps.Users, logg))
			r.Post("/", controllers.AdminUserCreate(deps.Users, logg))
			r.Delete("/{userId}", controllers.AdminUserDelete(deps.Users, logg))
		})

		r.Route("/technicians", func(r chi.Router) {
			r.Post("/", controllers.AdminTechnicianCreate(deps.Technicians, logg))
			r.Put("/{technicianId}", controllers.AdminTechnicianUpdate(deps.Technicians, logg))
			r.Delete("/{technicianId}", controllers.AdminTechnicianDelete(deps.Technicians, logg))
		})

		r.Route("/service-requests", func(r chi.Router) {
			r.Get("/", controllers.AdminServiceRequestsList(deps.Requests, logg))
			r.Put("/{requestId}", controllers.AdminServiceRequestUpdate(deps.Requests, logg))
			r.Delete("/{requestId}", controllers.AdminServiceRequestDelete(deps.Requests, logg))
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", controllers.AdminInventoryOverview(deps.Inventory, logg))
			r.Post("/", controllers.AdminInventoryCreate(deps.Inventory, logg))
			r.Put("/{entryId}", controllers.AdminInventoryUpdate(deps.Inventory, logg))
			r.Delete("/{entryId}", controllers.AdminInventoryDelete(deps.Inventory, logg))
		})

		r.Get("/orders", controllers.AdminOrdersList(deps.Upstream, logg))
	})

	return r
}
