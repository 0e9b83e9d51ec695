package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/angelmondragon/restaurant-backend/api/controllers"
	"github.com/angelmondragon/restaurant-backend/api/routes"
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
	"github.com/angelmondragon/restaurant-backend/pkg/db"
	"github.com/angelmondragon/restaurant-backend/pkg/enums"
	"github.com/angelmondragon/restaurant-backend/pkg/instance"
	"github.com/angelmondragon/restaurant-backend/pkg/logger"
	"github.com/angelmondragon/restaurant-backend/pkg/metrics"
	"github.com/angelmondragon/restaurant-backend/pkg/migrate"
	"github.com/angelmondragon/restaurant-backend/pkg/redis"
	"github.com/angelmondragon/restaurant-backend/web"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx := context.Background()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, dbClient.Close()) }()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	// redis is optional: without it lookups are read through and
	// Idempotency-Key headers are ignored.
	var (
		lookupCache lookups.Cache
		idemStore   redis.IdempotencyStore
		pingers     = map[string]controllers.Pinger{"database": dbClient}
	)
	if cfg.Redis.Enabled() {
		redisClient, redisErr := redis.New(ctx, cfg.Redis, logg)
		if redisErr != nil {
			return redisErr
		}
		defer func() { err = multierr.Append(err, redisClient.Close()) }()
		lookupCache = redisClient
		idemStore = redisClient
		pingers["redis"] = redisClient
	} else {
		logg.Warn(ctx, "RESTAURANT_REDIS_URL not set, lookup cache and idempotency disabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	svc, err := buildServices(cfg, logg, dbClient, lookupCache, metrics.NewCartMetrics(registry))
	if err != nil {
		return err
	}

	addr := ":" + cfg.App.Port
	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, svc, routes.Infra{
			Pingers:     pingers,
			Idempotency: idemStore,
			HTTPMetrics: metrics.NewHTTPMetrics(registry),
			Gatherer:    registry,
			Site:        web.New(cfg.App.StaticDir),
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "addr": addr, "instance": instance.GetID()})
	logg.Info(ctx, "starting api server")

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func buildServices(cfg *config.Config, logg *logger.Logger, client *db.Client, cache lookups.Cache, cartMetrics *metrics.CartMetrics) (routes.Services, error) {
	var svc routes.Services
	conn := client.DB()

	lookupSvc, err := lookups.NewService(lookups.NewRepository(conn), cache, cfg.Cache.LookupTTL, logg)
	if err != nil {
		return svc, err
	}
	menuRepo := menu.NewRepository(conn)
	menuSvc, err := menu.NewService(menuRepo, lookupSvc)
	if err != nil {
		return svc, err
	}
	ordersRepo := orders.NewRepository(conn)
	addressRepo := address.NewRepository(conn)
	ordersSvc, err := orders.NewService(ordersRepo, client, lookupSvc, addressRepo, logg)
	if err != nil {
		return svc, err
	}
	cartSvc, err := cart.NewService(cart.NewRepository(conn), ordersRepo, menuRepo, client, cartMetrics)
	if err != nil {
		return svc, err
	}
	usersRepo := users.NewRepository(conn)
	usersSvc, err := users.NewService(usersRepo)
	if err != nil {
		return svc, err
	}
	addressSvc, err := address.NewService(addressRepo, client, usersRepo, address.Options{Scope: enums.DefaultScopeOwner})
	if err != nil {
		return svc, err
	}
	maintenanceSvc, err := address.NewService(addressRepo, client, usersRepo, address.Options{
		Scope:           cfg.Address.MaintenanceScope(),
		ValidateZip:     true,
		RequiredMessage: "Street, city, state, zip code, and country are required",
	})
	if err != nil {
		return svc, err
	}
	ingredientRepo := ingredients.NewRepository(conn)
	ingredientSvc, err := ingredients.NewService(ingredientRepo)
	if err != nil {
		return svc, err
	}
	recipeSvc, err := recipes.NewService(recipes.NewRepository(conn), menuRepo, ingredientRepo)
	if err != nil {
		return svc, err
	}
	vendorSvc, err := vendors.NewService(vendors.NewRepository(conn))
	if err != nil {
		return svc, err
	}
	inventorySvc, err := inventory.NewService(inventory.NewRepository(conn), ingredientRepo, lookupSvc)
	if err != nil {
		return svc, err
	}

	return routes.Services{
		Lookups:            lookupSvc,
		Menu:               menuSvc,
		Cart:               cartSvc,
		Orders:             ordersSvc,
		Addresses:          addressSvc,
		AddressMaintenance: maintenanceSvc,
		Users:              usersSvc,
		Ingredients:        ingredientSvc,
		Recipes:            recipeSvc,
		Vendors:            vendorSvc,
		Inventory:          inventorySvc,
	}, nil
}
