package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/eventology/recruiting-service/internal/api/http"
	"github.com/eventology/recruiting-service/internal/api/http/handlers"
	"github.com/eventology/recruiting-service/internal/auth"
	"github.com/eventology/recruiting-service/internal/config"
	"github.com/eventology/recruiting-service/internal/events"
	"github.com/eventology/recruiting-service/internal/observability"
	"github.com/eventology/recruiting-service/internal/persistence"
	"github.com/eventology/recruiting-service/internal/repository"
	"github.com/eventology/recruiting-service/internal/repository/filedb"
	"github.com/eventology/recruiting-service/internal/service"
	"github.com/eventology/recruiting-service/internal/worker"
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

	var (
		pg              *persistence.Postgres
		userRepo        repository.UserRepository
		applicationRepo repository.ApplicationRepository
		inquiryRepo     repository.InquiryRepository
		settingsRepo    repository.SettingsRepository
		maintenanceRepo repository.MaintenanceRepository
	)

	switch cfg.Storage.Backend {
	case config.StorageBackendPostgres:
		pg, err = persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		defer pg.Close()

		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}

		pool := pg.PoolHandle()
		userRepo = repository.NewUserRepository(pool)
		applicationRepo = repository.NewApplicationRepository(pool)
		inquiryRepo = repository.NewInquiryRepository(pool)
		settingsRepo = repository.NewSettingsRepository(pool)
		maintenanceRepo = repository.NewMaintenanceRepository(pool, settingsRepo)
	case config.StorageBackendFile:
		store, err := filedb.Open(cfg.Storage.FilePath)
		if err != nil {
			logger.Fatal("failed to open file store", zap.Error(err))
		}
		logger.Info("using file-backed store", zap.String("path", cfg.Storage.FilePath))
		userRepo = store.Users()
		applicationRepo = store.Applications()
		inquiryRepo = store.Inquiries()
		settingsRepo = store.Settings()
		maintenanceRepo = store.Maintenance()
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	// Readiness only checks redis when it is actually serving traffic; the
	// in-memory fallback keeps the service fully functional without it.
	var (
		verificationRepo repository.VerificationRepository
		healthRedis      *persistence.Redis
	)
	if redis.Available() {
		verificationRepo = repository.NewRedisVerificationRepository(redis.Client)
		healthRedis = redis
	} else {
		logger.Warn("redis unavailable; keeping pending registrations in memory")
		verificationRepo = repository.NewMemoryVerificationRepository()
	}

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:         userRepo,
		VerificationRepo: verificationRepo,
		Dispatcher:       dispatcher,
	})
	if err := authService.EnsureOwner(ctx); err != nil {
		logger.Fatal("failed to seed owner account", zap.Error(err))
	}

	intakeService := service.NewIntakeService(applicationRepo, inquiryRepo, settingsRepo, dispatcher)
	adminService := service.NewAdminService(*cfg, service.AdminDependencies{
		UserRepo:        userRepo,
		ApplicationRepo: applicationRepo,
		InquiryRepo:     inquiryRepo,
		SettingsRepo:    settingsRepo,
		MaintenanceRepo: maintenanceRepo,
		Dispatcher:      dispatcher,
		ReseedOwner:     authService.EnsureOwner,
	})

	authMiddleware := auth.NewMiddleware(authService.TokenManager(), userRepo, cfg.Owner)

	app := fiber.New()
	metrics := observability.NewMetrics()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, healthRedis),
		Auth:           handlers.NewAuthHandler(authService),
		Intake:         handlers.NewIntakeHandler(intakeService),
		Admin:          handlers.NewAdminHandler(adminService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
