// Package main runs the tutoring platform admin HTTP server with WebSocket and graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vantutor/admin-backend/config"
	"github.com/vantutor/admin-backend/internal/activitylog"
	"github.com/vantutor/admin-backend/internal/analytics"
	"github.com/vantutor/admin-backend/internal/auth"
	"github.com/vantutor/admin-backend/internal/courses"
	"github.com/vantutor/admin-backend/internal/dashboard"
	"github.com/vantutor/admin-backend/internal/leaderboard"
	"github.com/vantutor/admin-backend/internal/middleware"
	"github.com/vantutor/admin-backend/internal/notifications"
	"github.com/vantutor/admin-backend/internal/realtime"
	"github.com/vantutor/admin-backend/internal/users"
	"github.com/vantutor/admin-backend/internal/worker"
	"github.com/vantutor/admin-backend/pkg/database"
	"github.com/vantutor/admin-backend/pkg/queue"
	"github.com/vantutor/admin-backend/pkg/redis"
	"github.com/vantutor/admin-backend/pkg/response"
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

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)
	redisPubSub := realtime.NewRedisPubSub(rdb.Client, logger)
	hub := realtime.NewHub(logger, redisPubSub, redisPubSub)
	defer hub.Close()

	// Auth
	authRepo := auth.NewRepository(pool)
	authHandler := auth.NewHandler(authRepo, jwtService, logger)

	// User management
	userRepo := users.NewRepository(pool)
	userHandler := users.NewHandler(userRepo, logger)

	// Courses
	courseRepo := courses.NewRepository(pool)
	courseHandler := courses.NewHandler(courseRepo)

	// Leaderboards
	leaderboardRepo := leaderboard.NewRepository(pool)

	// Activity events (raw login/session records from the learning apps)
	activityRepo := activitylog.NewRepository(pool)
	activityHandler := activitylog.NewHandler(activityRepo, logger)

	// Analytics (pure aggregation over activity records, Redis-cached)
	analyticsHandler := analytics.NewHandler(activityRepo, rdb.Client,
		time.Duration(cfg.Analytics.CacheTTLSeconds)*time.Second, logger)

	// Dashboard stat cards
	dashboardHandler := dashboard.NewHandler(pool, userRepo, courseRepo, leaderboardRepo)

	// Notifications (central log + fan-out via queue + live push)
	jobQueue := queue.NewQueue(rdb.Client, logger)
	notificationRepo := notifications.NewRepository(pool)
	notificationHandler := notifications.NewHandler(notificationRepo, jobQueue, hub, logger)
	fanoutProcessor := worker.NewNotificationProcessor(notificationRepo, jobQueue, hub, logger)

	jwtValidate := func(token string) (userID, role string, err error) {
		claims, err := jwtService.Validate(token)
		if err != nil {
			return "", "", err
		}
		return claims.UserID.String(), claims.Role, nil
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Auth (public)
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/register", authHandler.Register)
	}

	// Protected API (JWT required)
	api := router.Group("")
	api.Use(middleware.JWT(jwtService))
	{
		// Dashboard
		api.GET("/dashboard/stats", middleware.RequireRole("admin"), dashboardHandler.GetStats)
		api.GET("/dashboard/leaderboard", middleware.RequireRole("admin", "tutor"), dashboardHandler.GetLeaderboard)

		// Platform analytics and per-user activity views
		api.GET("/analytics/platform", middleware.RequireRole("admin"), analyticsHandler.GetPlatformMetrics)
		api.GET("/users/:id/activity", middleware.RequireRole("admin"), analyticsHandler.GetUserActivity)

		// User management (admin console)
		api.GET("/users", middleware.RequireRole("admin"), userHandler.List)
		api.PATCH("/users/:id", middleware.RequireRole("admin"), userHandler.Update)
		api.DELETE("/users/:id", middleware.RequireRole("admin"), userHandler.Delete)
		api.POST("/users/promote", middleware.RequireRole("admin"), userHandler.Promote)

		// Courses
		api.GET("/courses", courseHandler.List)
		api.POST("/courses", middleware.RequireRole("admin"), courseHandler.Create)
		api.GET("/courses/:id", courseHandler.GetByID)
		api.PATCH("/courses/:id", middleware.RequireRole("admin"), courseHandler.Update)
		api.DELETE("/courses/:id", middleware.RequireRole("admin"), courseHandler.Delete)
		api.POST("/courses/:id/subjects", middleware.RequireRole("admin"), courseHandler.AddSubject)
		api.PUT("/courses/:id/subjects/:subjectId", middleware.RequireRole("admin"), courseHandler.UpdateSubject)
		api.DELETE("/courses/:id/subjects/:subjectId", middleware.RequireRole("admin"), courseHandler.RemoveSubject)
		api.POST("/courses/:id/subjects/import", middleware.RequireRole("admin"), courseHandler.ImportSubjects)

		// Notifications
		api.POST("/notifications", middleware.RequireRole("admin"), notificationHandler.Send)
		api.GET("/notifications", middleware.RequireRole("admin"), notificationHandler.ListRecent)

		// Activity event ingestion (learning apps report through an admin token)
		api.POST("/events/login", middleware.RequireRole("admin"), activityHandler.RecordLogin)
		api.POST("/events/session", middleware.RequireRole("admin"), activityHandler.RecordSession)
	}

	// WebSocket (token in query; no Authorization header required)
	router.GET("/ws", realtime.ServeWs(hub, logger, jwtValidate))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// In-process fan-out worker; cmd/worker runs the same loop standalone.
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	go fanoutProcessor.Run(workerCtx)

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	workerCancel()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
