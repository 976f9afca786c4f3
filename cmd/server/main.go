package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"

	"github.com/d60-Lab/posting/config"
	"github.com/d60-Lab/posting/internal/api/handler"
	"github.com/d60-Lab/posting/internal/api/router"
	"github.com/d60-Lab/posting/internal/cache"
	"github.com/d60-Lab/posting/internal/repository"
	"github.com/d60-Lab/posting/internal/service"
	"github.com/d60-Lab/posting/pkg/database"
	"github.com/d60-Lab/posting/pkg/logger"
	"github.com/d60-Lab/posting/pkg/tracing"
)

// @title Posting API
// @version 1.0
// @description 发帖、关注、墙与时间线
// @BasePath /
func main() {
	if err := run(); err != nil {
		logger.Error("server exited", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Log); err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Sentry.DSN,
			Environment:      cfg.Sentry.Environment,
			SampleRate:       cfg.Sentry.SampleRate,
			AttachStacktrace: true,
		}); err != nil {
			return err
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx := context.Background()
	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	db, err := database.InitDB(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)
	if cfg.Database.AutoMigrate {
		if err := repository.AutoMigrate(db); err != nil {
			return err
		}
	}

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	store := repository.NewStore(db)
	validator := service.NewValidator(cache.NewUserDirectory(redisClient, cfg.Redis.KeyPrefix))
	postingService := service.NewPostingService(store, validator)
	h := handler.NewHandler(postingService, store)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.New(cfg, h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
