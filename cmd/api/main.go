package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-jobtrack-backend/config"
	_ "go-jobtrack-backend/docs" // Important for Swagger
	v1 "go-jobtrack-backend/internal/delivery/http/v1"
	"go-jobtrack-backend/internal/repository/postgres"
	"go-jobtrack-backend/internal/repository/redisstore"
	"go-jobtrack-backend/internal/usecase"
	"go-jobtrack-backend/pkg/database"
	"go-jobtrack-backend/pkg/logger"
	"go-jobtrack-backend/pkg/redis"

	"github.com/go-playground/validator/v10"
)

// @title           Job Application Tracker API
// @version         1.0
// @description     Backend for tracking job applications using Clean Architecture.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting job tracker backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (share links, rate limiting)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, share links disabled", "error", err)
	}
	defer redis.Close()

	// 5. Setup Repositories
	applicationRepo := postgres.NewApplicationRepository(dbPool)
	userRepo := postgres.NewUserRepository(dbPool)
	shareLinkRepo := redisstore.NewShareLinkRepository(redis.Client())

	// 6. Setup UseCases
	validate := validator.New()
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, validate)
	analyticsUC := usecase.NewAnalyticsUsecase(applicationRepo)
	exportUC := usecase.NewExportUsecase(applicationRepo, userRepo)
	shareUC := usecase.NewShareLinkUsecase(shareLinkRepo, applicationRepo, userRepo)
	userUC := usecase.NewUserUsecase(userRepo, validate, cfg.UploadDir)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ApplicationUC: applicationUC,
		AnalyticsUC:   analyticsUC,
		ExportUC:      exportUC,
		ShareUC:       shareUC,
		UserUC:        userUC,
		Config:        cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
