package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/account-service/internal/api/http"
	"github.com/spec-kit/account-service/internal/api/http/handlers"
	"github.com/spec-kit/account-service/internal/auth"
	"github.com/spec-kit/account-service/internal/config"
	"github.com/spec-kit/account-service/internal/events"
	"github.com/spec-kit/account-service/internal/observability"
	"github.com/spec-kit/account-service/internal/persistence"
	"github.com/spec-kit/account-service/internal/repository"
	"github.com/spec-kit/account-service/internal/service"
	"github.com/spec-kit/account-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
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
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	accountRepo := repository.NewAccountRepository(pool)
	authorityRepo := repository.NewAuthorityRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	notifier := service.NewLifecycleNotifier(dispatcher, logger, redis.Client, cfg.Redis)
	notifier.RegisterHandlers()

	hasher := auth.BcryptHasher{Cost: cfg.Auth.BcryptCost}
	registrationService := service.NewRegistrationService(service.RegistrationDependencies{
		AccountRepo:   accountRepo,
		AuthorityRepo: authorityRepo,
		Hasher:        hasher,
		KeyGenerator:  auth.UUIDKeyGenerator{},
		Dispatcher:    dispatcher,
		Logger:        logger,
	})
	activationService := service.NewActivationService(accountRepo, dispatcher, logger)
	profileService := service.NewProfileService(accountRepo, dispatcher, logger)
	credentialService := service.NewCredentialRotationService(accountRepo, hasher, dispatcher, logger)
	adminService := service.NewAccountAdminService(accountRepo, dispatcher, logger)

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authMiddleware := auth.NewAuthMiddleware(tokenManager, accountRepo)

	metrics := observability.NewMetrics()
	sweeper := worker.NewExpirySweeper(accountRepo, dispatcher, logger, metrics, cfg.Sweeper.Retention(), nil)
	if cfg.Sweeper.Enabled {
		go sweeper.Run(ctx, cfg.Sweeper.Interval())
	}

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	accountsHandler := handlers.NewAccountsHandler(registrationService, activationService, profileService, credentialService, adminService)
	adminHandler := handlers.NewAdminHandler(profileService, adminService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         healthHandler,
		Accounts:       accountsHandler,
		Admin:          adminHandler,
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
