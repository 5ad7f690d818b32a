package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/astro-booking/internal/api/http"
	"github.com/spec-kit/astro-booking/internal/api/http/handlers"
	"github.com/spec-kit/astro-booking/internal/auth"
	"github.com/spec-kit/astro-booking/internal/backend"
	"github.com/spec-kit/astro-booking/internal/cache"
	"github.com/spec-kit/astro-booking/internal/config"
	"github.com/spec-kit/astro-booking/internal/events"
	"github.com/spec-kit/astro-booking/internal/observability"
	"github.com/spec-kit/astro-booking/internal/persistence"
	"github.com/spec-kit/astro-booking/internal/preferences"
	"github.com/spec-kit/astro-booking/internal/repository"
	"github.com/spec-kit/astro-booking/internal/service"
	"github.com/spec-kit/astro-booking/internal/site"
	"github.com/spec-kit/astro-booking/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	staffRepo := repository.NewStaffRepository(pool)
	roleRepo := repository.NewRoleRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	roleCache := cache.NewRoleCache(redis.Client, cfg.Admin.PermissionCacheTTL())
	permissions := auth.NewPermissionChecker(staffRepo, roleRepo, roleCache, logger)
	sessions := auth.NewSessionVerifier(cfg.Backend.JWTSecret)
	if cfg.Backend.JWTSecret == "" {
		logger.Warn("BACKEND_JWT_SECRET not provided; bearer sessions are disabled")
	}

	// Admin routes answer SERVER_MISCONFIGURED until the backend is configured.
	var identities backend.IdentityAdmin
	if client, err := backend.NewServiceClient(cfg.Backend); err != nil {
		logger.Warn("backend admin client unavailable", zap.Error(err))
	} else {
		identities = client
	}

	dispatcher := events.NewInMemoryDispatcher(logger)
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))

	catalog := site.DefaultCatalog()
	adminService := service.NewAdminService(cfg.Admin, service.AdminDependencies{
		Identities:  identities,
		StaffRepo:   staffRepo,
		RoleRepo:    roleRepo,
		Permissions: permissions,
		Sessions:    sessions,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	bookingService := service.NewBookingService(bookingRepo, catalog, dispatcher, logger)
	resolver := preferences.NewResolver(cfg.Site.DefaultLanguage, cfg.Site.DefaultTheme)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}, metrics),
		Admin: handlers.NewAdminHandler(adminService),
		Preferences: handlers.NewPreferencesHandler(resolver, handlers.CookieOptions{
			Secure: cfg.Site.CookieSecure,
			MaxAge: cfg.Site.CookieMaxAge(),
		}),
		Site:           handlers.NewSiteHandler(catalog, resolver),
		Bookings:       handlers.NewBookingHandler(bookingService, resolver),
		AuthMiddleware: auth.NewSessionMiddleware(sessions, permissions),
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
