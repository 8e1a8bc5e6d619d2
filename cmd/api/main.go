package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/marketplace-service/internal/api/http"
	"github.com/spec-kit/marketplace-service/internal/api/http/handlers"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/config"
	"github.com/spec-kit/marketplace-service/internal/events"
	"github.com/spec-kit/marketplace-service/internal/observability"
	"github.com/spec-kit/marketplace-service/internal/persistence"
	"github.com/spec-kit/marketplace-service/internal/repository"
	"github.com/spec-kit/marketplace-service/internal/service"
	"github.com/spec-kit/marketplace-service/internal/worker"
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
	profileRepo := repository.NewProfileRepository(pool)
	mechanicRepo := repository.NewMechanicRequestRepository(pool)
	bookingRepo := repository.NewCarWashBookingRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)
	applicationRepo := repository.NewJobApplicationRepository(pool)
	historyRepo := repository.NewRequestHistoryRepository(pool)

	limiter := auth.NewLoginLimiter(redis.Client, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginLockout())

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		AccountRepo: accountRepo,
		ProfileRepo: profileRepo,
		Limiter:     limiter,
	})
	profileService := service.NewProfileService(profileRepo)
	mechanicService := service.NewMechanicRequestService(mechanicRepo, dispatcher)
	bookingService := service.NewCarWashBookingService(bookingRepo, dispatcher)
	paymentService := service.NewPaymentService(paymentRepo, dispatcher)
	applicationService := service.NewJobApplicationService(applicationRepo, dispatcher)
	historyService := service.NewRequestHistoryService(historyRepo)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	metrics := observability.NewMetrics()
	if cfg.Metrics.Enabled {
		go func() {
			if err := observability.ServeMetrics(cfg.Metrics.Addr, logger); err != nil {
				logger.Error("metrics listener", zap.Error(err))
			}
		}()
	}

	authMiddleware := auth.NewMiddleware(authService.TokenManager())

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:          handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:           handlers.NewUsersHandler(authService, metrics),
		Profiles:        handlers.NewProfileHandler(profileService, metrics),
		MechanicReqs:    handlers.NewMechanicRequestsHandler(mechanicService, metrics),
		CarWashBookings: handlers.NewCarWashBookingsHandler(bookingService, metrics),
		Payments:        handlers.NewPaymentsHandler(paymentService, metrics),
		JobApplications: handlers.NewJobApplicationsHandler(applicationService),
		RequestHistory:  handlers.NewRequestHistoryHandler(historyService, metrics),
		AuthMiddleware:  authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	logger.Info("server started",
		zap.String("addr", cfg.App.Addr()),
		zap.String("service", cfg.App.Name),
		zap.String("version", cfg.App.Version))

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
