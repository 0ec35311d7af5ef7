package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "neotech/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"neotech/internal/auth"
	"neotech/internal/authz"
	"neotech/internal/cache"
	"neotech/internal/config"
	"neotech/internal/db"
	"neotech/internal/handler"
	"neotech/internal/logging"
	"neotech/internal/paystack"
	"neotech/internal/repository"
	"neotech/internal/router"
	"neotech/internal/service"
)

// @title NeoTech Storefront API
// @version 1.0
// @description Storefront with catalog, session cart, Paystack checkout and an admin back-office.
// @host localhost:3000
// @BasePath /
// @schemes http
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("load config")
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	gormDB, err := db.Open(cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("database init")
	}

	if cfg.Database.Reset {
		logging.Warn().Msg("database reset requested, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			logging.Fatal().Err(err).Msg("database reset")
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		logging.Fatal().Err(err).Msg("database migrate")
	}

	store, sessionStore, closeStore := openStore(cfg.Redis)
	defer closeStore()

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)
	orderRepo := repository.NewOrderRepository(gormDB)
	eventRepo := repository.NewEventRepository(gormDB)

	// Initialize auth components
	sessions := auth.NewSessions(cfg.Session, auth.NewSessionStore(sessionStore))
	enforcer, err := authz.NewEnforcer()
	if err != nil {
		logging.Fatal().Err(err).Msg("authorization policy")
	}

	// Initialize services
	gateway := paystack.New(cfg.Paystack)
	authService := service.NewAuthService(userRepo)
	catalogService := service.NewCatalogService(productRepo, categoryRepo, eventRepo, store)
	orderService := service.NewOrderService(productRepo, orderRepo, gateway, service.OrderConfig{
		BaseURL:         cfg.BaseURL,
		ReferencePrefix: cfg.Paystack.ReferencePrefix,
	})
	adminService := service.NewAdminService(productRepo, categoryRepo, orderRepo, catalogService)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Register routes
	router.Register(
		e,
		cfg,
		sessions,
		enforcer,
		handler.NewAuthHandler(authService, sessions),
		handler.NewCatalogHandler(catalogService),
		handler.NewCartHandler(catalogService, sessions),
		handler.NewOrderHandler(orderService, sessions),
		handler.NewAdminHandler(adminService),
	)

	if cfg.Paystack.SecretKey == "" {
		logging.Warn().Msg("PAYSTACK_SECRET_KEY is empty, checkout will be rejected by the gateway")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := ":" + cfg.ServerPort
	go func() {
		logging.Info().Str("addr", addr).Str("swagger", cfg.BaseURL+"/swagger/index.html").Msg("server listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("server start")
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("server shutdown")
	}
}

// openStore uses redis when it is configured and reachable, and the in-process store otherwise.
// The first store is the product cache and tolerates outages; the second backs sessions and
// reports them.
func openStore(cfg config.RedisConfig) (cache.Store, cache.Store, func()) {
	if cfg.Addr == "" {
		logging.Info().Msg("REDIS_ADDR not set, using in-memory session and cache store")
		memory := cache.NewMemory()
		return memory, memory, func() {}
	}

	client := cache.New(cfg.Addr, cfg.Password, cfg.DB)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx); err != nil {
		logging.Warn().Err(err).Str("addr", cfg.Addr).Msg("redis unreachable, using in-memory store")
		_ = client.Close()
		memory := cache.NewMemory()
		return memory, memory, func() {}
	}
	logging.Info().Str("addr", cfg.Addr).Msg("connected to redis")
	return client, client.Strict(), func() {
		if err := client.Close(); err != nil {
			logging.Warn().Err(err).Msg("close redis")
		}
	}
}
