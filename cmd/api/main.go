package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/bloglist/internal/api/http"
	"github.com/spec-kit/bloglist/internal/api/http/handlers"
	"github.com/spec-kit/bloglist/internal/auth"
	"github.com/spec-kit/bloglist/internal/config"
	"github.com/spec-kit/bloglist/internal/events"
	"github.com/spec-kit/bloglist/internal/observability"
	"github.com/spec-kit/bloglist/internal/persistence"
	"github.com/spec-kit/bloglist/internal/service"
	"github.com/spec-kit/bloglist/internal/validation"
	"github.com/spec-kit/bloglist/internal/worker"
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

	store, err := persistence.OpenStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer store.Close(context.Background())

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	dependencies := map[string]handlers.Pinger{}
	for name, dep := range store.Dependencies {
		dependencies[name] = dep
	}
	if redis.Enabled() {
		dependencies["redis"] = redis
	}

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(logger, cfg.Notification)
	notificationWorker := worker.StartNotificationWorker(ctx, dispatcher, notificationService, logger, 0)

	validator := validation.New()
	limiter := service.NewLoginLimiter(redis.Client, cfg.Login, logger)
	authService := service.NewAuthService(cfg.Auth, store.Users, limiter, logger)
	userService := service.NewUserService(service.UserDependencies{
		UserRepo:   store.Users,
		Validator:  validator,
		Dispatcher: dispatcher,
		BcryptCost: cfg.Auth.BcryptCost,
		Logger:     logger,
	})
	blogService := service.NewBlogService(service.BlogDependencies{
		BlogRepo:   store.Blogs,
		UserRepo:   store.Users,
		Validator:  validator,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	metrics := observability.NewMetrics()
	app := httptransport.NewServer(httptransport.ServerConfig{
		AppName:        cfg.App.Name,
		RequestTimeout: cfg.App.RequestTimeout(),
		Logger:         logger,
		Metrics:        metrics,
	}, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, dependencies),
		Login:          handlers.NewLoginHandler(authService),
		Users:          handlers.NewUsersHandler(userService),
		Blogs:          handlers.NewBlogsHandler(blogService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenCodec(), store.Users),
		Metrics:        metrics,
	})

	go func() {
		logger.Info("server listening", zap.String("addr", cfg.App.Addr()), zap.String("store", cfg.Store.Driver))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
	notificationWorker.Stop()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
