package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"pickup/cmd"
	httpin "pickup/internal/adapters/in/http"
	"pickup/internal/adapters/out/postgres"
	"pickup/internal/jobs"

	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger, err := newLogger(config.LogLevel)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err = run(config, logger); err != nil {
		logger.Fatal("Application terminated with error", zap.Error(err))
	}
}

func run(config cmd.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := gorm.Open(gormpostgres.Open(config.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if err = postgres.Migrate(ctx, gormDB); err != nil {
		return err
	}

	store, closeStore := connectRedis(ctx, config, logger)
	defer closeStore()

	app, err := cmd.NewCompositionRoot(config, gormDB, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.Warn("Failed to close publisher", zap.Error(closeErr))
		}
	}()

	e, err := app.CreateRouter(ctx, store)
	if err != nil {
		return err
	}
	e.Logger.SetLevel(echoLevel(config.LogLevel))

	manager := jobs.NewJobManager(logger, app.CreateJobs()...)
	if err = manager.StartAll(); err != nil {
		return err
	}
	defer manager.StopAll()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		address := fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)
		logger.Info("Starting HTTP server", zap.String("address", address))
		if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// connectRedis returns the idempotency store, or nil when Redis is not
// configured or unreachable at start.
func connectRedis(ctx context.Context, config cmd.Config, logger *zap.Logger) (httpin.IdempotencyStore, func()) {
	if config.RedisAddr == "" {
		logger.Info("Redis is not configured, idempotency keys are disabled")
		return nil, func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
	})
	closeClient := func() {
		if err := client.Close(); err != nil {
			logger.Warn("Failed to close redis client", zap.Error(err))
		}
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("Redis is unreachable, idempotency keys are disabled", zap.Error(err))
		closeClient()
		return nil, func() {}
	}
	return client, closeClient
}

func newLogger(level string) (*zap.Logger, error) {
	if strings.EqualFold(level, "debug") {
		return zap.NewDevelopment()
	}

	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(parsed)
	return cfg.Build()
}

func echoLevel(level string) log.Lvl {
	switch strings.ToLower(level) {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	default:
		return log.INFO
	}
}
