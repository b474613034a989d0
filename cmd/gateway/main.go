package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/avidalh/electrostore-gateway/api/routes"
	cartsvc "github.com/avidalh/electrostore-gateway/internal/cart"
	catalogsvc "github.com/avidalh/electrostore-gateway/internal/catalog"
	inventorysvc "github.com/avidalh/electrostore-gateway/internal/inventory"
	requestssvc "github.com/avidalh/electrostore-gateway/internal/servicerequests"
	"github.com/avidalh/electrostore-gateway/internal/session"
	technicianssvc "github.com/avidalh/electrostore-gateway/internal/technicians"
	userssvc "github.com/avidalh/electrostore-gateway/internal/users"
	"github.com/avidalh/electrostore-gateway/pkg/config"
	"github.com/avidalh/electrostore-gateway/pkg/logger"
	"github.com/avidalh/electrostore-gateway/pkg/metrics"
	pkgredis "github.com/avidalh/electrostore-gateway/pkg/redis"
	"github.com/avidalh/electrostore-gateway/pkg/storeapi"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "gateway"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "gateway",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	redisClient, err := pkgredis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	upstream, err := storeapi.NewClient(cfg.Upstream.BaseURL, storeapi.WithTimeout(cfg.Upstream.Timeout))
	if err != nil {
		logg.Error(context.Background(), "failed to build store api client", err)
		os.Exit(1)
	}

	sessions, err := session.NewManager(redisClient, cfg.Session)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	cart, err := cartsvc.NewManager(upstream, logg, cfg.Cart)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart manager", err)
		os.Exit(1)
	}
	sessions.Subscribe(func(identity session.Identity) {
		cart.SetUser(identity.UserID)
	})

	if err := sessions.Restore(context.Background()); err != nil {
		logg.Error(context.Background(), "failed to restore session", err)
		os.Exit(1)
	}

	users, err := userssvc.NewService(upstream, sessions, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}
	catalog, err := catalogsvc.NewService(upstream, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}
	technicians, err := technicianssvc.NewService(upstream)
	if err != nil {
		logg.Error(context.Background(), "failed to create technicians service", err)
		os.Exit(1)
	}
	requests, err := requestssvc.NewService(upstream, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create service requests service", err)
		os.Exit(1)
	}
	inventory, err := inventorysvc.NewService(upstream)
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting gateway")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:      cfg,
			Logger:      logg,
			Redis:       redisClient,
			Upstream:    upstream,
			Sessions:    sessions,
			Cart:        cart,
			Users:       users,
			Catalog:     catalog,
			Technicians: technicians,
			Requests:    requests,
			Inventory:   inventory,
			Metrics:     httpMetrics,
		}),
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logg.Error(ctx, "gateway stopped unexpectedly", err)
		_ = redisClient.Close()
		os.Exit(1)
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := multierr.Combine(server.Shutdown(shutdownCtx), redisClient.Close()); err != nil {
		logg.Error(ctx, "shutdown finished with errors", err)
		os.Exit(1)
	}
	logg.Info(ctx, "shutdown complete")
}
