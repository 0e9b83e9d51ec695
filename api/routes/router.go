package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/restaurant-backend/api/controllers"
	"github.com/angelmondragon/restaurant-backend/api/middleware"
	"github.com/angelmondragon/restaurant-backend/internal/address"
	"github.com/angelmondragon/restaurant-backend/internal/cart"
	"github.com/angelmondragon/restaurant-backend/internal/ingredients"
	"github.com/angelmondragon/restaurant-backend/internal/inventory"
	"github.com/angelmondragon/restaurant-backend/internal/lookups"
	"github.com/angelmondragon/restaurant-backend/internal/menu"
	"github.com/angelmondragon/restaurant-backend/internal/orders"
	"github.com/angelmondragon/restaurant-backend/internal/recipes"
	"github.com/angelmondragon/restaurant-backend/internal/users"
	"github.com/angelmondragon/restaurant-backend/internal/vendors"
	"github.com/angelmondragon/restaurant-backend/pkg/config"
	"github.com/angelmondragon/restaurant-backend/pkg/enums"
	"github.com/angelmondragon/restaurant-backend/pkg/logger"
	"github.com/angelmondragon/restaurant-backend/pkg/metrics"
	pkgredis "github.com/angelmondragon/restaurant-backend/pkg/redis"
	"github.com/angelmondragon/restaurant-backend/web"
)

// Services bundles the domain services the HTTP surface exposes.
type Services struct {
	Lookups            lookups.Service
	Menu               menu.Service
	Cart               cart.Service
	Orders             orders.Service
	Addresses          address.Service
	AddressMaintenance address.Service
	Users              users.Service
	Ingredients        ingredients.Service
	Recipes            recipes.Service
	Vendors            vendors.Service
	Inventory          inventory.Service
}

// Infra carries the cross-cutting pieces. Idempotency and the readiness
// pingers may be nil when redis is not configured.
type Infra struct {
	Pingers     map[string]controllers.Pinger
	Idempotency pkgredis.IdempotencyStore
	HTTPMetrics *metrics.HTTPMetrics
	Gatherer    prometheus.Gatherer
	Site        *web.Site
}

func NewRouter(cfg *config.Config, logg *logger.Logger, svc Services, infra Infra) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(infra.HTTPMetrics),
		middleware.CORS(cfg.App.CORSOrigins),
		chimiddleware.StripSlashes,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, infra.Pingers))
	})
	if infra.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(infra.Gatherer, promhttp.HandlerOpts{}))
	}

	if infra.Site != nil {
		r.Get("/", infra.Site.Page("index"))
		r.Get("/orders", infra.Site.Page("orders"))
		r.Get("/maintenance", infra.Site.Page("maintenance"))
		r.Handle("/static/*", infra.Site.Assets())
	}

	idempotent := middleware.Idempotency(infra.Idempotency, cfg.Cache.IdempotencyTTL, logg)

	r.Route("/api", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(cfg.App.RequestTimeout))

		r.Get("/categories", controllers.LookupOptions(svc.Lookups, enums.LookupGroupMenuCategory, logg))
		r.Get("/statuses", controllers.LookupOptions(svc.Lookups, enums.LookupGroupOrderStatus, logg))
		r.Get("/maintenance-options", controllers.LookupOptions(svc.Lookups, enums.LookupGroupMaintenance, logg))

		r.Route("/menu-items", func(r chi.Router) {
			r.Get("/", controllers.MenuList(svc.Menu, false, logg))
			r.Post("/", controllers.MenuCreate(svc.Menu, logg))
			r.Get("/{id}", controllers.MenuGet(svc.Menu, logg))
		})

		r.Route("/menu-maintenance", func(r chi.Router) {
			r.Get("/", controllers.MenuList(svc.Menu, true, logg))
			r.Get("/categories", controllers.LookupOptions(svc.Lookups, enums.LookupGroupMenuCategory, logg))
			r.Post("/", controllers.MenuCreate(svc.Menu, logg))
			r.Get("/{id}", controllers.MenuGet(svc.Menu, logg))
			r.Put("/{id}", controllers.MenuUpdate(svc.Menu, logg))
			r.Delete("/{id}", controllers.MenuDelete(svc.Menu, logg))
		})

		r.Route("/cart-items", func(r chi.Router) {
			r.Get("/", controllers.CartList(svc.Cart, logg))
			r.With(idempotent).Post("/", controllers.CartAdd(svc.Cart, logg))
			r.Delete("/", controllers.CartClear(svc.Cart, logg))
			r.Put("/{id}", controllers.CartUpdate(svc.Cart, logg))
			r.Delete("/{id}", controllers.CartRemove(svc.Cart, logg))
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", controllers.TransactionList(svc.Orders, logg))
			r.With(idempotent).Post("/", controllers.TransactionCreate(svc.Orders, logg))
			r.Get("/{id}", controllers.TransactionGet(svc.Orders, logg))
			r.Put("/{id}", controllers.TransactionUpdate(svc.Orders, logg))
		})

		r.Route("/addresses", addressRoutes(svc.Addresses, logg))
		r.Route("/address-maintenance", addressRoutes(svc.AddressMaintenance, logg))

		r.Route("/lookup-maintenance", func(r chi.Router) {
			r.Get("/", controllers.LookupList(svc.Lookups, logg))
			r.Post("/", controllers.LookupCreate(svc.Lookups, logg))
			r.Get("/{id}", controllers.LookupGet(svc.Lookups, logg))
			r.Put("/{id}", controllers.LookupUpdate(svc.Lookups, logg))
			r.Delete("/{id}", controllers.LookupDelete(svc.Lookups, logg))
		})

		r.Route("/user-maintenance", func(r chi.Router) {
			r.Get("/", controllers.UserList(svc.Users, logg))
			r.Post("/", controllers.UserCreate(svc.Users, logg))
			r.Get("/{id}", controllers.UserGet(svc.Users, logg))
			r.Put("/{id}", controllers.UserUpdate(svc.Users, logg))
			r.Delete("/{id}", controllers.UserDelete(svc.Users, logg))
		})

		r.Route("/ingredients", func(r chi.Router) {
			r.Get("/", controllers.IngredientList(svc.Ingredients, logg))
			r.Post("/", controllers.IngredientCreate(svc.Ingredients, logg))
			r.Get("/{id}", controllers.IngredientGet(svc.Ingredients, logg))
			r.Put("/{id}", controllers.IngredientUpdate(svc.Ingredients, logg))
			r.Delete("/{id}", controllers.IngredientDelete(svc.Ingredients, logg))
		})

		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", controllers.RecipeList(svc.Recipes, logg))
			r.Get("/ingredients", controllers.IngredientList(svc.Ingredients, logg))
			r.Post("/", controllers.RecipeUpsert(svc.Recipes, logg))
			r.Put("/{menu_item_id}/{ingredient_id}", controllers.RecipeUpdate(svc.Recipes, logg))
			r.Delete("/{menu_item_id}/{ingredient_id}", controllers.RecipeDelete(svc.Recipes, logg))
		})

		r.Route("/vendor-maintenance", func(r chi.Router) {
			r.Get("/", controllers.VendorList(svc.Vendors, logg))
			r.Post("/", controllers.VendorCreate(svc.Vendors, logg))
			r.Get("/{id}", controllers.VendorGet(svc.Vendors, logg))
			r.Put("/{id}", controllers.VendorUpdate(svc.Vendors, logg))
			r.Delete("/{id}", controllers.VendorDelete(svc.Vendors, logg))
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", controllers.InventoryList(svc.Inventory, logg))
			r.Get("/transaction-types", controllers.LookupOptions(svc.Lookups, enums.LookupGroupInventoryTransactionType, logg))
			r.Post("/", controllers.InventoryRecord(svc.Inventory, logg))
		})
	})

	return r
}

func addressRoutes(svc address.Service, logg *logger.Logger) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/", controllers.AddressList(svc, logg))
		r.Post("/", controllers.AddressCreate(svc, logg))
		r.Get("/{id}", controllers.AddressGet(svc, logg))
		r.Put("/{id}", controllers.AddressUpdate(svc, logg))
		r.Delete("/{id}", controllers.AddressDelete(svc, logg))
	}
}
