// Package main runs the standalone notification fan-out worker.
//
// The worker consumes fan-out jobs from the Redis queue, writes per-user
// notification rows, and relays live pushes to server instances through
// Redis pub/sub. Run it separately when broadcast volume should not share
// CPU with the HTTP server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vantutor/admin-backend/config"
	"github.com/vantutor/admin-backend/internal/notifications"
	"github.com/vantutor/admin-backend/internal/realtime"
	"github.com/vantutor/admin-backend/internal/worker"
	"github.com/vantutor/admin-backend/pkg/database"
	"github.com/vantutor/admin-backend/pkg/queue"
	"github.com/vantutor/admin-backend/pkg/redis"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	redisPubSub := realtime.NewRedisPubSub(rdb.Client, logger)
	hub := realtime.NewHub(logger, redisPubSub, redisPubSub)
	defer hub.Close()

	jobQueue := queue.NewQueue(rdb.Client, logger)
	notificationRepo := notifications.NewRepository(pool)
	processor := worker.NewNotificationProcessor(notificationRepo, jobQueue, hub, logger)

	runCtx, cancel := context.WithCancel(context.Background())
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		cancel()
	}()

	logger.Info("notification worker started")
	processor.Run(runCtx)
	logger.Info("notification worker stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
